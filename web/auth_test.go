package web

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.newAuthor(t, "alice")

	w := env.do(t, http.MethodPost, "/api/auth/login",
		map[string]string{"username": "alice", "password": "pass123"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	// The issued token opens an authenticated endpoint
	w = env.do(t, http.MethodGet, "/api/authors", nil, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginBadPassword(t *testing.T) {
	env := newTestEnv(t)
	env.newAuthor(t, "alice")

	w := env.do(t, http.MethodPost, "/api/auth/login",
		map[string]string{"username": "alice", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnapprovedAuthor(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.store.CreateAuthor("pending", "pass123", "Pending", env.server.conf.BaseURL())
	require.NoError(t, err)

	w := env.do(t, http.MethodPost, "/api/auth/login",
		map[string]string{"username": "pending", "password": "pass123"}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGarbageBearerToken(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/authors", nil, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAnonymousOnProtectedEndpoint(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/authors", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPeerBasicAuth(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.store.UpsertRemoteNode("peer", "https://peer.example.com/api/", "peeruser", "peerpass", true)
	require.NoError(t, err)
	env.newAuthor(t, "alice")

	w := env.do(t, http.MethodGet, "/api/authors", nil, basicAuth("peeruser", "peerpass"))
	require.Equal(t, http.StatusOK, w.Code)

	// Peers get the flat federation document, not the paginated listing
	body := decodeBody(t, w)
	assert.Equal(t, "authors", body["type"])
	assert.Contains(t, body, "authors")
	assert.NotContains(t, body, "results")

	w = env.do(t, http.MethodGet, "/api/authors", nil, basicAuth("peeruser", "wrong"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPeerBlockedFromLocalOnlyEndpoints(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.store.UpsertRemoteNode("peer", "https://peer.example.com/api/", "peeruser", "peerpass", true)
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/api/explore", nil, basicAuth("peeruser", "peerpass"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPost, "/api/follow",
		map[string]string{"author_id": "whatever"}, basicAuth("peeruser", "peerpass"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
