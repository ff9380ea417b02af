package federation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExploreRemoteAuthors(t *testing.T) {
	router, store := newTestRouter(t)

	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, pass, ok := r.BasicAuth(); !ok || user != "peeruser" || pass != "peerpass" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		doc := remoteAuthorsDoc{
			Type: "authors",
			Authors: []RemoteAuthor{
				{Type: "author", ID: "https://healthy.example.com/api/authors/1", DisplayName: "Remote One"},
				{Type: "author", ID: "https://healthy.example.com/api/authors/2", DisplayName: "Remote Two"},
			},
		}
		_ = json.NewEncoder(w).Encode(doc)
	}))
	defer healthy.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer broken.Close()

	_, err := store.UpsertRemoteNode("healthy", healthy.URL+"/api/", "peeruser", "peerpass", true)
	require.NoError(t, err)
	_, err = store.UpsertRemoteNode("broken", broken.URL+"/api/", "x", "y", true)
	require.NoError(t, err)
	// Down peer, nothing listens there
	_, err = store.UpsertRemoteNode("down", "http://127.0.0.1:9/api/", "", "", true)
	require.NoError(t, err)

	authors := router.ExploreRemoteAuthors()

	// One peer's failure never blanks the rest of the federation
	require.Len(t, authors, 2)
	assert.Equal(t, "Remote One", authors[0].DisplayName)
	assert.Equal(t, "Remote Two", authors[1].DisplayName)
}

func TestExploreRemoteAuthorsNoPeers(t *testing.T) {
	router, _ := newTestRouter(t)
	assert.Empty(t, router.ExploreRemoteAuthors())
}
