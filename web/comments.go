package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillhost/quill/domain"
)

// visibleComment loads the comment named in the route and gates it on the
// parent entry's visibility. Writes the 404 itself when the comment is out
// of reach.
func (s *Server) visibleComment(c *gin.Context) (*domain.Comment, bool) {
	comment, err := s.store.CommentByID(c.Param("id"))
	if err != nil {
		notFound(c)
		return nil, false
	}
	if !s.store.CanViewEntry(&comment.Entry, currentAuthor(c)) {
		notFound(c)
		return nil, false
	}
	return comment, true
}

// handleEntryComments lists an entry's comments, oldest first. On FRIENDS
// entries a requester who is not the owner only sees their own comments
// and the owner's.
func (s *Server) handleEntryComments(c *gin.Context) {
	requester := currentAuthor(c)
	entry, err := s.store.VisibleEntry(c.Param("id"), requester)
	if err != nil {
		notFound(c)
		return
	}

	comments, err := s.store.CommentsForEntry(entry, requester)
	if err != nil {
		internalError(c, err)
		return
	}

	reprs := make([]gin.H, 0, len(comments))
	for i := range comments {
		reprs = append(reprs, s.commentRepr(&comments[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"type":  "comments",
		"id":    s.entryURL(entry) + "/comments",
		"count": len(reprs),
		"src":   reprs,
	})
}

type createCommentRequest struct {
	Comment     string `json:"comment" binding:"required"`
	ContentType string `json:"contentType"`
}

// handleCreateComment adds a comment under an entry the caller can see.
func (s *Server) handleCreateComment(c *gin.Context) {
	author := currentAuthor(c)
	entry, err := s.store.VisibleEntry(c.Param("id"), author)
	if err != nil {
		notFound(c)
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "comment is required"})
		return
	}

	comment, err := s.store.CreateComment(entry, author, req.Comment, req.ContentType)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		internalError(c, err)
		return
	}

	s.log.Infow("comment created", "comment", comment.ID, "entry", entry.ID, "author", author.Username)
	c.JSON(http.StatusCreated, s.commentRepr(comment))
}

// handleCommentDetail returns one comment, gated by its entry.
func (s *Server) handleCommentDetail(c *gin.Context) {
	comment, ok := s.visibleComment(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.commentRepr(comment))
}
