package web

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillhost/quill/domain"
)

// Likes have no table of their own; like objects are projected on demand
// from the membership sets, addressed by an opaque token that encodes kind,
// object and liker.

const (
	entryLikesPageSize   = 5
	commentLikesPageSize = 5
	authorLikedPageSize  = 10
)

func (s *Server) likeURL(ref domain.LikeRef) string {
	return fmt.Sprintf("%s/liked/%s", s.conf.APIBase(), ref.Encode())
}

func (s *Server) entryLikeObject(entry *domain.Entry, liker *domain.Author) gin.H {
	ref := domain.LikeRef{Kind: domain.LikeKindEntry, ObjectID: entry.ID, AuthorID: liker.ID}
	target := entry.Title
	if target == "" {
		target = "an entry"
	}
	return gin.H{
		"type":    "Like",
		"id":      s.likeURL(ref),
		"summary": fmt.Sprintf("%s likes %s", liker.Name(), target),
		"author":  s.authorRepr(liker),
		"object":  s.entryURL(entry),
	}
}

func (s *Server) commentLikeObject(comment *domain.Comment, liker *domain.Author) gin.H {
	ref := domain.LikeRef{Kind: domain.LikeKindComment, ObjectID: comment.ID, AuthorID: liker.ID}
	target := "a comment"
	if comment.Entry.Title != "" {
		target = "a comment on " + comment.Entry.Title
	}
	return gin.H{
		"type":    "Like",
		"id":      s.likeURL(ref),
		"summary": fmt.Sprintf("%s likes %s", liker.Name(), target),
		"author":  s.authorRepr(liker),
		"object":  s.commentURL(comment),
	}
}

func (s *Server) likesEnvelope(web, id string, page, size, count int, src []gin.H) gin.H {
	if src == nil {
		src = []gin.H{}
	}
	return gin.H{
		"type":        "likes",
		"web":         web,
		"id":          id,
		"page_number": page,
		"size":        size,
		"count":       count,
		"src":         src,
	}
}

// handleEntryLikes lists who liked an entry, paginated. The listing is
// gated by the entry's own visibility.
func (s *Server) handleEntryLikes(c *gin.Context) {
	entry, err := s.store.VisibleEntry(c.Param("id"), currentAuthor(c))
	if err != nil {
		notFound(c)
		return
	}

	page, size := pageParams(c, entryLikesPageSize)
	likers, err := s.store.EntryLikers(entry.ID)
	if err != nil {
		internalError(c, err)
		return
	}

	objects := make([]gin.H, 0, len(likers))
	for i := range likers {
		objects = append(objects, s.entryLikeObject(entry, &likers[i]))
	}

	url := s.entryURL(entry) + "/likes"
	c.JSON(http.StatusOK, s.likesEnvelope(url, url, page, size, len(objects), pageSlice(objects, page, size)))
}

// handleLikeEntry records a like by the authenticated local author.
// Liking twice is a no-op and reports the existing like.
func (s *Server) handleLikeEntry(c *gin.Context) {
	liker := currentAuthor(c)
	entry, err := s.store.VisibleEntry(c.Param("id"), liker)
	if err != nil {
		notFound(c)
		return
	}

	status := http.StatusCreated
	if s.store.HasLikedEntry(entry.ID, liker.ID) {
		status = http.StatusOK
	} else if err := s.store.AddEntryLike(entry.ID, liker); err != nil {
		internalError(c, err)
		return
	}

	c.JSON(status, s.entryLikeObject(entry, liker))
}

// handleCommentLikes lists who liked a comment, gated by the parent
// entry's visibility.
func (s *Server) handleCommentLikes(c *gin.Context) {
	comment, ok := s.visibleComment(c)
	if !ok {
		return
	}

	page, size := pageParams(c, commentLikesPageSize)
	likers, err := s.store.CommentLikers(comment.ID)
	if err != nil {
		internalError(c, err)
		return
	}

	objects := make([]gin.H, 0, len(likers))
	for i := range likers {
		objects = append(objects, s.commentLikeObject(comment, &likers[i]))
	}

	url := s.commentURL(comment) + "/likes"
	c.JSON(http.StatusOK, s.likesEnvelope(url, url, page, size, len(objects), pageSlice(objects, page, size)))
}

func (s *Server) handleLikeComment(c *gin.Context) {
	liker := currentAuthor(c)
	comment, ok := s.visibleComment(c)
	if !ok {
		return
	}

	status := http.StatusCreated
	if s.store.HasLikedComment(comment.ID, liker.ID) {
		status = http.StatusOK
	} else if err := s.store.AddCommentLike(comment.ID, liker); err != nil {
		internalError(c, err)
		return
	}

	c.JSON(status, s.commentLikeObject(comment, liker))
}

// handleAuthorLiked lists everything an author has liked: entry likes
// first, newest entry first, then comment likes, newest first. The two
// groups are concatenated before paging so a page can straddle them.
func (s *Server) handleAuthorLiked(c *gin.Context) {
	author, err := s.store.AuthorByRef(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}

	objects, err := s.likedObjects(author)
	if err != nil {
		internalError(c, err)
		return
	}

	page, size := pageParams(c, authorLikedPageSize)
	url := s.authorURL(author) + "/liked"
	c.JSON(http.StatusOK, s.likesEnvelope(url, url, page, size, len(objects), pageSlice(objects, page, size)))
}

func (s *Server) likedObjects(author *domain.Author) ([]gin.H, error) {
	entries, err := s.store.EntriesLikedBy(author.ID)
	if err != nil {
		return nil, err
	}
	comments, err := s.store.CommentsLikedBy(author.ID)
	if err != nil {
		return nil, err
	}

	objects := make([]gin.H, 0, len(entries)+len(comments))
	for i := range entries {
		objects = append(objects, s.entryLikeObject(&entries[i], author))
	}
	for i := range comments {
		objects = append(objects, s.commentLikeObject(&comments[i], author))
	}
	return objects, nil
}

// handleLikeDetail resolves a single like token.
func (s *Server) handleLikeDetail(c *gin.Context) {
	object, err := s.likeObjectFromToken(c.Param("token"), "")
	if err != nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, object)
}

// handleAuthorLikeDetail resolves a like token scoped to one author. A
// token minted for a different author is reported as missing, not as
// someone else's like.
func (s *Server) handleAuthorLikeDetail(c *gin.Context) {
	author, err := s.store.AuthorByRef(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}
	object, err := s.likeObjectFromToken(c.Param("token"), author.ID)
	if err != nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, object)
}

// likeObjectFromToken decodes a like token and re-derives the like object
// from the membership sets. Every defect, a malformed token, an unknown
// author or object, or a membership that does not exist, collapses into
// ErrNotFound.
func (s *Server) likeObjectFromToken(token, expectAuthorID string) (gin.H, error) {
	ref, err := domain.DecodeLikeID(token)
	if err != nil {
		return nil, err
	}
	if expectAuthorID != "" && ref.AuthorID != expectAuthorID {
		return nil, domain.ErrNotFound
	}

	liker, err := s.store.AuthorByRef(ref.AuthorID)
	if err != nil {
		return nil, err
	}

	switch ref.Kind {
	case domain.LikeKindEntry:
		entry, err := s.store.EntryByID(ref.ObjectID)
		if err != nil {
			return nil, err
		}
		if !s.store.HasLikedEntry(entry.ID, liker.ID) {
			return nil, domain.ErrNotFound
		}
		return s.entryLikeObject(entry, liker), nil
	case domain.LikeKindComment:
		comment, err := s.store.CommentByID(ref.ObjectID)
		if err != nil {
			return nil, err
		}
		if !s.store.HasLikedComment(comment.ID, liker.ID) {
			return nil, domain.ErrNotFound
		}
		return s.commentLikeObject(comment, liker), nil
	}
	return nil, domain.ErrNotFound
}
