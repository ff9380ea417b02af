package web

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/quillhost/quill/db"
	"github.com/quillhost/quill/domain"
	"github.com/quillhost/quill/federation"
	"github.com/quillhost/quill/util"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	server *Server
	store  *db.Store
	engine *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := db.OpenInMemory()
	require.NoError(t, err)
	require.NoError(t, store.Migrate())

	conf := &util.AppConfig{}
	conf.Conf.Scheme = "http"
	conf.Conf.Domain = "localhost:8000"
	conf.Conf.NodeName = "quill-test"
	conf.Conf.JwtSecret = "test-secret"

	log := zap.NewNop().Sugar()
	server := NewServer(store, conf, federation.NewRouter(store, conf, log), log)
	t.Cleanup(server.Close)
	return &testEnv{server: server, store: store, engine: server.Engine()}
}

func (e *testEnv) newAuthor(t *testing.T, username string) *domain.Author {
	t.Helper()
	author, err := e.store.CreateAuthor(username, "pass123", username, e.server.conf.BaseURL())
	require.NoError(t, err)
	require.NoError(t, e.store.ApproveAuthor(author.ID))
	author.Approved = true
	return author
}

func (e *testEnv) bearer(t *testing.T, author *domain.Author) string {
	t.Helper()
	token, err := e.server.issueToken(author)
	require.NoError(t, err)
	return "Bearer " + token
}

func basicAuth(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

// do runs one request through the engine. body may be nil; auth is the full
// Authorization header value or empty.
func (e *testEnv) do(t *testing.T, method, path string, body any, auth string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), "body: %s", w.Body.String())
	return m
}
