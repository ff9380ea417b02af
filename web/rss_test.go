package web

import (
	"net/http"
	"testing"

	"github.com/quillhost/quill/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicFeed(t *testing.T) {
	env := newTestEnv(t)
	alice := env.newAuthor(t, "alice")

	_, err := env.store.CreateEntry(alice, "Open Letter", "", "to everyone", "text/plain", "PUBLIC")
	require.NoError(t, err)
	_, err = env.store.CreateEntry(alice, "Inner Circle", "", "to friends", "text/plain", "FRIENDS")
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/feed", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")

	body := w.Body.String()
	assert.Contains(t, body, "<rss")
	assert.Contains(t, body, "Open Letter")
	assert.NotContains(t, body, "Inner Circle")
}

func TestFeedUntitledEntryGetsTimestampTitle(t *testing.T) {
	env := newTestEnv(t)
	alice := env.newAuthor(t, "alice")

	entry, err := env.store.CreateEntry(alice, "", "", "untitled body", "text/plain", "PUBLIC")
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/feed", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), entry.Published.Format(util.DateTimeFormat()))
}
