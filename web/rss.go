package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/gorilla/feeds"
	"github.com/quillhost/quill/util"
)

// handleFeed serves the public stream as RSS. Only PUBLIC entries appear;
// the feed needs no authentication.
func (s *Server) handleFeed(c *gin.Context) {
	c.Header("Content-Type", "application/xml; charset=utf-8")

	rss, err := s.publicFeed()
	if err != nil {
		s.log.Errorw("could not build feed", "err", err)
		c.Render(http.StatusNotFound, render.String{Format: ""})
		return
	}
	c.Render(http.StatusOK, render.String{Format: rss})
}

func (s *Server) publicFeed() (string, error) {
	entries, err := s.store.ListPublicEntries()
	if err != nil {
		return "", err
	}

	feed := &feeds.Feed{
		Title:       fmt.Sprintf("%s - public entries", s.conf.Conf.NodeName),
		Link:        &feeds.Link{Href: s.conf.BaseURL() + "/feed"},
		Description: fmt.Sprintf("public entries published on %s", s.conf.Conf.NodeName),
		Created:     time.Now(),
	}

	var items []*feeds.Item
	for i := range entries {
		entry := &entries[i]
		author := entry.Author
		title := entry.Title
		if title == "" {
			title = entry.Published.Format(util.DateTimeFormat())
		}
		items = append(items, &feeds.Item{
			Id:      entry.ID,
			Title:   title,
			Link:    &feeds.Link{Href: fmt.Sprintf("%s/entries/%s", s.conf.BaseURL(), entry.ID)},
			Content: entry.Content,
			Author:  &feeds.Author{Name: author.Name()},
			Created: entry.Published,
		})
	}

	feed.Items = items
	return feed.ToRss()
}
