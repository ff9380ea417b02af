package web

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quillhost/quill/domain"
)

// Canonical API URLs. Local authors live under this node's API base;
// remote shadow authors keep their home URL as identifier.

func (s *Server) authorURL(a *domain.Author) string {
	if a.IsLocal() {
		return fmt.Sprintf("%s/authors/%s", s.conf.APIBase(), a.ID)
	}
	return a.ID
}

func (s *Server) entryURL(e *domain.Entry) string {
	return fmt.Sprintf("%s/entries/%s", s.conf.APIBase(), e.ID)
}

func (s *Server) commentURL(cm *domain.Comment) string {
	return fmt.Sprintf("%s/comments/%s", s.conf.APIBase(), cm.ID)
}

func (s *Server) authorRepr(a *domain.Author) gin.H {
	host := a.Host
	web := a.ID
	if a.IsLocal() {
		host = s.conf.APIBase() + "/"
		web = fmt.Sprintf("%s/authors/%s", s.conf.BaseURL(), a.ID)
	}
	return gin.H{
		"type":         "author",
		"id":           s.authorURL(a),
		"host":         host,
		"displayName":  a.Name(),
		"github":       a.Github,
		"profileImage": a.ProfileImage,
		"web":          web,
	}
}

func (s *Server) commentRepr(cm *domain.Comment) gin.H {
	author := cm.Author
	return gin.H{
		"type":        "comment",
		"id":          s.commentURL(cm),
		"author":      s.authorRepr(&author),
		"comment":     cm.Content,
		"contentType": string(cm.ContentType),
		"published":   cm.CreatedAt.UTC().Format(time.RFC3339),
		"entry":       fmt.Sprintf("%s/entries/%s", s.conf.APIBase(), cm.EntryID),
	}
}

// entryRepr renders an entry with its comments and the first page of its
// likes inlined. The comments shown respect the listing narrowing for the
// given requester.
func (s *Server) entryRepr(entry *domain.Entry, requester *domain.Author) gin.H {
	author := entry.Author

	comments, err := s.store.CommentsForEntry(entry, requester)
	if err != nil {
		s.log.Errorw("could not load comments", "entry", entry.ID, "err", err)
	}
	commentReprs := make([]gin.H, 0, len(comments))
	for i := range comments {
		commentReprs = append(commentReprs, s.commentRepr(&comments[i]))
	}

	likers, err := s.store.EntryLikers(entry.ID)
	if err != nil {
		s.log.Errorw("could not load likers", "entry", entry.ID, "err", err)
	}
	likeObjects := make([]gin.H, 0, len(likers))
	for i := range likers {
		likeObjects = append(likeObjects, s.entryLikeObject(entry, &likers[i]))
	}

	entryURL := s.entryURL(entry)
	return gin.H{
		"type":        "entry",
		"id":          entryURL,
		"web":         fmt.Sprintf("%s/entries/%s", s.conf.BaseURL(), entry.ID),
		"title":       entry.Title,
		"description": entry.Description,
		"contentType": string(entry.ContentType),
		"content":     entry.Content,
		"author":      s.authorRepr(&author),
		"visibility":  string(entry.Visibility),
		"published":   entry.Published.UTC().Format(time.RFC3339),
		"comments": gin.H{
			"type":        "comments",
			"id":          entryURL + "/comments",
			"page_number": 1,
			"size":        len(commentReprs),
			"count":       len(commentReprs),
			"src":         commentReprs,
		},
		"likes": s.likesEnvelope(entryURL+"/likes", entryURL+"/likes", 1, entryLikesPageSize, len(likeObjects), pageSlice(likeObjects, 1, entryLikesPageSize)),
	}
}

// pageParams reads page and size query parameters, clamping both to a
// minimum of 1. Unparseable values fall back to the defaults.
func pageParams(c *gin.Context, defaultSize int) (page, size int) {
	page = intQuery(c, "page", 1)
	size = intQuery(c, "size", defaultSize)
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}
	return page, size
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// pageSlice cuts one page out of items. Pages past the end are empty, not
// an error.
func pageSlice[T any](items []T, page, size int) []T {
	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
