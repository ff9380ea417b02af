package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillhost/quill/domain"
)

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

func internalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// handleListEntries returns the public stream, newest first. Open to
// anonymous callers; FRIENDS entries never appear here regardless of who
// asks.
func (s *Server) handleListEntries(c *gin.Context) {
	entries, err := s.store.ListPublicEntries()
	if err != nil {
		internalError(c, err)
		return
	}

	requester := currentAuthor(c)
	reprs := make([]gin.H, 0, len(entries))
	for i := range entries {
		reprs = append(reprs, s.entryRepr(&entries[i], requester))
	}
	c.JSON(http.StatusOK, gin.H{
		"type":  "entries",
		"count": len(reprs),
		"src":   reprs,
	})
}

type createEntryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content" binding:"required"`
	ContentType string `json:"contentType"`
	Visibility  string `json:"visibility"`
}

// handleCreateEntry publishes a new entry for the authenticated author.
func (s *Server) handleCreateEntry(c *gin.Context) {
	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	author := currentAuthor(c)
	entry, err := s.store.CreateEntry(author, req.Title, req.Description, req.Content, req.ContentType, req.Visibility)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		internalError(c, err)
		return
	}

	s.log.Infow("entry created", "entry", entry.ID, "author", author.Username, "visibility", entry.Visibility)
	c.JSON(http.StatusCreated, s.entryRepr(entry, author))
}

// handleEntryDetail returns one entry if the caller may see it. Denied and
// missing are indistinguishable.
func (s *Server) handleEntryDetail(c *gin.Context) {
	entry, err := s.store.VisibleEntry(c.Param("id"), currentAuthor(c))
	if err != nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, s.entryRepr(entry, currentAuthor(c)))
}

// handleDeleteEntry tombstones an entry. Only the owner may delete; for
// anyone else the entry simply does not exist.
func (s *Server) handleDeleteEntry(c *gin.Context) {
	author := currentAuthor(c)
	entry, err := s.store.EntryByID(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}
	if entry.AuthorID != author.ID {
		notFound(c)
		return
	}
	if err := s.store.SoftDeleteEntry(entry.ID); err != nil {
		notFound(c)
		return
	}
	s.log.Infow("entry deleted", "entry", entry.ID, "author", author.Username)
	c.Status(http.StatusNoContent)
}

// handleAuthorEntries lists the requester's own entries, drafts of any
// visibility included. Owner only.
func (s *Server) handleAuthorEntries(c *gin.Context) {
	author := currentAuthor(c)
	target, err := s.store.AuthorByRef(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}
	if target.ID != author.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only list your own entries"})
		return
	}

	entries, err := s.store.ListEntriesByAuthor(author.ID)
	if err != nil {
		internalError(c, err)
		return
	}

	reprs := make([]gin.H, 0, len(entries))
	for i := range entries {
		reprs = append(reprs, s.entryRepr(&entries[i], author))
	}
	c.JSON(http.StatusOK, gin.H{
		"type":  "entries",
		"count": len(reprs),
		"src":   reprs,
	})
}
