package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillhost/quill/federation"
)

const authorsPageSize = 10

// handleListAuthors lists this node's local authors. Peers get the flat
// federation document; local sessions get a paginated listing.
func (s *Server) handleListAuthors(c *gin.Context) {
	authors, err := s.store.ListLocalAuthors()
	if err != nil {
		internalError(c, err)
		return
	}

	reprs := make([]gin.H, 0, len(authors))
	for i := range authors {
		reprs = append(reprs, s.authorRepr(&authors[i]))
	}

	if currentNode(c) != nil {
		c.JSON(http.StatusOK, gin.H{
			"type":    "authors",
			"authors": reprs,
		})
		return
	}

	page, size := pageParams(c, authorsPageSize)
	c.JSON(http.StatusOK, gin.H{
		"type":        "authors",
		"page_number": page,
		"size":        size,
		"count":       len(reprs),
		"results":     pageSlice(reprs, page, size),
	})
}

// handleAuthorDetail resolves one author by serial, full URL or
// percent-encoded URL.
func (s *Server) handleAuthorDetail(c *gin.Context) {
	author, err := s.store.AuthorByRef(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, s.authorRepr(author))
}

// handleFollowers lists the authors holding an APPROVED edge toward the
// named author. Pending and denied requests never show here.
func (s *Server) handleFollowers(c *gin.Context) {
	author, err := s.store.AuthorByRef(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}
	followers, err := s.store.ListFollowers(author.ID)
	if err != nil {
		internalError(c, err)
		return
	}

	reprs := make([]gin.H, 0, len(followers))
	for i := range followers {
		reprs = append(reprs, s.authorRepr(&followers[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"type":      "followers",
		"followers": reprs,
	})
}

// handleFollowing lists the authors the named author has an APPROVED edge
// toward.
func (s *Server) handleFollowing(c *gin.Context) {
	author, err := s.store.AuthorByRef(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}
	following, err := s.store.ListFollowing(author.ID)
	if err != nil {
		internalError(c, err)
		return
	}

	reprs := make([]gin.H, 0, len(following))
	for i := range following {
		reprs = append(reprs, s.authorRepr(&following[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"type":      "following",
		"following": reprs,
	})
}

// handleFollowStatus reports the state of the requester's own outbound
// edge toward the named author: PENDING, APPROVED, DENIED or NONE.
func (s *Server) handleFollowStatus(c *gin.Context) {
	actor := currentAuthor(c)
	target, err := s.store.AuthorByRef(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}

	status := "NONE"
	if fr, err := s.store.FollowRequestFor(actor.ID, target.ID); err == nil {
		status = string(fr.Status)
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// handleUnfollow removes the requester's edge toward the named author,
// whatever state it was in. No edge means nothing to remove.
func (s *Server) handleUnfollow(c *gin.Context) {
	actor := currentAuthor(c)
	target, err := s.store.AuthorByRef(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}
	if err := s.store.RemoveFollow(actor.ID, target.ID); err != nil {
		notFound(c)
		return
	}
	s.log.Infow("unfollow", "follower", actor.Username, "followee", target.ID)
	c.Status(http.StatusNoContent)
}

// handleExplore fans out to the configured peers and returns their
// authors. Local users only; this node never proxies a peer's explore.
func (s *Server) handleExplore(c *gin.Context) {
	authors := s.fed.ExploreRemoteAuthors()
	if authors == nil {
		authors = []federation.RemoteAuthor{}
	}
	c.JSON(http.StatusOK, gin.H{
		"type":    "authors",
		"authors": authors,
	})
}

type followRequestBody struct {
	AuthorID string `json:"author_id"`
	Target   string `json:"target"`
}

func (b followRequestBody) target() string {
	if b.AuthorID != "" {
		return b.AuthorID
	}
	return b.Target
}

// handleFollow routes a follow from the authenticated author toward a
// local or remote target, named by UUID or full URL.
func (s *Server) handleFollow(c *gin.Context) {
	var req followRequestBody
	if err := c.ShouldBindJSON(&req); err != nil || req.target() == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "author_id is required"})
		return
	}

	actor := currentAuthor(c)
	result := s.fed.RequestFollow(actor, req.target())

	body := gin.H{"outcome": result.Outcome.String()}
	if result.Reason != "" {
		body["reason"] = result.Reason
	}
	if result.Request != nil {
		body["status"] = string(result.Request.Status)
	}

	c.JSON(followStatusCode(result), body)
}

func followStatusCode(result federation.FollowResult) int {
	switch result.Outcome {
	case federation.OutcomeLocalCreated, federation.OutcomeRemoteAccepted:
		return http.StatusCreated
	case federation.OutcomeLocalExisting:
		return http.StatusOK
	case federation.OutcomeRemoteRejected:
		return http.StatusBadGateway
	case federation.OutcomeRemoteUnreachable:
		return http.StatusServiceUnavailable
	}
	// InvalidTarget covers both unusable input and a target that does not
	// resolve to any author.
	if result.Reason == "author not found" {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
