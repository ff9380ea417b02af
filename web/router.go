package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/quillhost/quill/db"
	"github.com/quillhost/quill/federation"
	"github.com/quillhost/quill/util"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Server carries the shared dependencies of every HTTP handler.
type Server struct {
	store   *db.Store
	conf    *util.AppConfig
	fed     *federation.Router
	log     *zap.SugaredLogger
	limiter *RateLimiter
}

func NewServer(store *db.Store, conf *util.AppConfig, fed *federation.Router, log *zap.SugaredLogger) *Server {
	return &Server{
		store: store,
		conf:  conf,
		fed:   fed,
		log:   log,
		// Global rate limiter: 10 requests per second per IP, burst of 20
		limiter: NewRateLimiter(rate.Limit(10), 20, log),
	}
}

// Close releases the server's background resources.
func (s *Server) Close() {
	s.limiter.Stop()
}

// Engine builds the gin engine with all routes attached.
func (s *Server) Engine() *gin.Engine {
	g := gin.New()
	g.Use(gin.Recovery())
	g.Use(gzip.Gzip(gzip.DefaultCompression))

	// Author identifiers may be full percent-encoded URLs; keep the raw
	// path segment so the resolver can decode it itself.
	g.UseRawPath = true
	g.UnescapePathValues = false

	g.Use(RateLimitMiddleware(s.limiter))
	g.Use(MaxBytesMiddleware(1 * 1024 * 1024))

	g.Use(s.identify())

	g.GET("/feed", s.handleFeed)

	api := g.Group("/api")
	{
		api.POST("/auth/login", s.handleLogin)

		api.GET("/authors", s.requireIdentity, s.handleListAuthors)
		api.GET("/authors/:id", s.requireIdentity, s.handleAuthorDetail)
		api.GET("/authors/:id/followers", s.requireIdentity, s.handleFollowers)
		api.GET("/authors/:id/following", s.requireIdentity, s.handleFollowing)
		api.GET("/authors/:id/follow-status", s.requireLocalUser, s.handleFollowStatus)
		api.POST("/authors/:id/unfollow", s.requireLocalUser, s.handleUnfollow)
		api.GET("/authors/:id/entries", s.requireLocalUser, s.handleAuthorEntries)
		api.GET("/authors/:id/liked", s.requireIdentity, s.handleAuthorLiked)
		api.GET("/authors/:id/liked/:token", s.requireIdentity, s.handleAuthorLikeDetail)

		api.GET("/explore", s.requireLocalUser, s.handleExplore)
		api.POST("/follow", s.requireLocalUser, s.handleFollow)

		api.GET("/entries", s.handleListEntries)
		api.POST("/entries", s.requireLocalUser, s.handleCreateEntry)
		api.GET("/entries/:id", s.handleEntryDetail)
		api.DELETE("/entries/:id", s.requireLocalUser, s.handleDeleteEntry)
		api.GET("/entries/:id/comments", s.handleEntryComments)
		api.POST("/entries/:id/comments", s.requireLocalUser, s.handleCreateComment)
		api.GET("/entries/:id/likes", s.handleEntryLikes)
		api.POST("/entries/:id/likes", s.requireLocalUser, s.handleLikeEntry)

		api.GET("/comments/:id", s.handleCommentDetail)
		api.GET("/comments/:id/likes", s.handleCommentLikes)
		api.POST("/comments/:id/likes", s.requireLocalUser, s.handleLikeComment)

		api.GET("/liked/:token", s.handleLikeDetail)
	}

	return g
}

// Run blocks serving HTTP on the configured port until SIGINT or SIGTERM,
// then drains in-flight requests before returning.
func (s *Server) Run() error {
	defer s.Close()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.conf.Conf.HttpPort),
		Handler: s.Engine(),
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.Infow("starting http server",
		"host", s.conf.Conf.Host,
		"port", s.conf.Conf.HttpPort,
		"base", s.conf.BaseURL())

	select {
	case err := <-errCh:
		return err
	case <-done:
	}

	s.log.Info("stopping http server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
