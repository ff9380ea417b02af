package web

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/quillhost/quill/domain"
	"github.com/quillhost/quill/util"
)

// Gin context keys for the resolved request identity. A request carries at
// most one of the two: node credentials arrive via Basic auth, local
// sessions via a Bearer token.
const (
	ctxAuthorKey = "currentAuthor"
	ctxNodeKey   = "peerNode"
)

const tokenLifetime = 24 * time.Hour

// identify resolves the Authorization header into either a local author or
// a peer node and stores it on the context. Requests without the header
// pass through anonymous; requests with bad credentials are rejected here.
func (s *Server) identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		switch {
		case strings.HasPrefix(header, "Basic "):
			user, pass, ok := c.Request.BasicAuth()
			if !ok {
				abortUnauthorized(c)
				return
			}
			node, err := s.store.RemoteNodeByCredentials(user, pass)
			if err != nil {
				abortUnauthorized(c)
				return
			}
			c.Set(ctxNodeKey, node)
		case strings.HasPrefix(header, "Bearer "):
			author, err := s.parseToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				abortUnauthorized(c)
				return
			}
			c.Set(ctxAuthorKey, author)
		default:
			abortUnauthorized(c)
			return
		}
		c.Next()
	}
}

func currentAuthor(c *gin.Context) *domain.Author {
	if v, ok := c.Get(ctxAuthorKey); ok {
		return v.(*domain.Author)
	}
	return nil
}

func currentNode(c *gin.Context) *domain.RemoteNode {
	if v, ok := c.Get(ctxNodeKey); ok {
		return v.(*domain.RemoteNode)
	}
	return nil
}

// requireIdentity admits any authenticated caller, local or peer.
func (s *Server) requireIdentity(c *gin.Context) {
	if currentAuthor(c) == nil && currentNode(c) == nil {
		abortUnauthorized(c)
	}
}

// requireLocalUser admits only local authors. Peers knocking on a
// local-only endpoint get a 403, anonymous callers a 401.
func (s *Server) requireLocalUser(c *gin.Context) {
	if currentNode(c) != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "node credentials cannot act as a local user",
		})
		return
	}
	if currentAuthor(c) == nil {
		abortUnauthorized(c)
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
}

func (s *Server) issueToken(author *domain.Author) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   author.ID,
		Issuer:    util.Name,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.conf.Conf.JwtSecret))
}

func (s *Server) parseToken(raw string) (*domain.Author, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.conf.Conf.JwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrNotFound
	}

	author, err := s.store.AuthorByRef(claims.Subject)
	if err != nil {
		return nil, err
	}
	if !author.IsLocal() {
		return nil, domain.ErrNotFound
	}
	return author, nil
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// handleLogin exchanges username and password for a bearer token.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	author, err := s.store.CheckPassword(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if !author.Approved {
		c.JSON(http.StatusForbidden, gin.H{"error": "account awaiting approval"})
		return
	}

	token, err := s.issueToken(author)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	s.log.Infow("login", "username", author.Username)
	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"author": s.authorRepr(author),
	})
}
