package web

import (
	"net/http"
	"testing"

	"github.com/quillhost/quill/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEntryAndPublicList(t *testing.T) {
	env := newTestEnv(t)
	alice := env.newAuthor(t, "alice")

	w := env.do(t, http.MethodPost, "/api/entries", map[string]string{
		"title":      "Hello",
		"content":    "first entry",
		"visibility": "PUBLIC",
	}, env.bearer(t, alice))
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "entry", body["type"])
	assert.Equal(t, "Hello", body["title"])
	assert.Equal(t, "text/plain", body["contentType"])

	// A FRIENDS entry never shows on the public stream
	w = env.do(t, http.MethodPost, "/api/entries", map[string]string{
		"title":      "Secret",
		"content":    "for friends",
		"visibility": "FRIENDS",
	}, env.bearer(t, alice))
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/entries", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.EqualValues(t, 1, body["count"])
}

func TestCreateEntryRejectsBadContentType(t *testing.T) {
	env := newTestEnv(t)
	alice := env.newAuthor(t, "alice")

	w := env.do(t, http.MethodPost, "/api/entries", map[string]string{
		"content":     "payload",
		"contentType": "application/xml",
	}, env.bearer(t, alice))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateEntryRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/entries", map[string]string{"content": "x"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFriendsEntryVisibility(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newAuthor(t, "owner")
	viewer := env.newAuthor(t, "viewer")

	entry, err := env.store.CreateEntry(owner, "Secret", "", "friends only", "text/plain", "FRIENDS")
	require.NoError(t, err)
	path := "/api/entries/" + entry.ID

	// Owner always sees their own entry
	w := env.do(t, http.MethodGet, path, nil, env.bearer(t, owner))
	assert.Equal(t, http.StatusOK, w.Code)

	// A stranger and an anonymous caller cannot tell it exists
	w = env.do(t, http.MethodGet, path, nil, env.bearer(t, viewer))
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = env.do(t, http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The owner approving their outbound follow toward viewer opens it up
	_, _, err = env.store.GetOrCreateFollowRequest(owner.ID, viewer.ID)
	require.NoError(t, err)
	require.NoError(t, env.store.SetFollowStatus(owner.ID, viewer.ID, domain.FollowApproved))

	w = env.do(t, http.MethodGet, path, nil, env.bearer(t, viewer))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteEntry(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newAuthor(t, "owner")
	other := env.newAuthor(t, "other")

	entry, err := env.store.CreateEntry(owner, "Doomed", "", "soon gone", "text/plain", "PUBLIC")
	require.NoError(t, err)
	path := "/api/entries/" + entry.ID

	// Only the owner may delete
	w := env.do(t, http.MethodDelete, path, nil, env.bearer(t, other))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, path, nil, env.bearer(t, owner))
	require.Equal(t, http.StatusNoContent, w.Code)

	// The tombstone is invisible to everyone, the owner included
	w = env.do(t, http.MethodGet, path, nil, env.bearer(t, owner))
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = env.do(t, http.MethodDelete, path, nil, env.bearer(t, owner))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthorEntriesOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newAuthor(t, "owner")
	other := env.newAuthor(t, "other")

	_, err := env.store.CreateEntry(owner, "Pub", "", "a", "text/plain", "PUBLIC")
	require.NoError(t, err)
	_, err = env.store.CreateEntry(owner, "Priv", "", "b", "text/plain", "FRIENDS")
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/api/authors/"+owner.ID+"/entries", nil, env.bearer(t, owner))
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 2, body["count"])

	w = env.do(t, http.MethodGet, "/api/authors/"+owner.ID+"/entries", nil, env.bearer(t, other))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
