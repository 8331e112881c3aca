package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"neonmap/internal/apperr"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/api/", "secret", 5*time.Second, zap.NewNop())
}

func TestHTTPClient_Load(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/mindmaps/maps/12/", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		io.WriteString(w, `{"id": 12, "title": "remote", "owner": 3, "nodes": [], "edges": [], "is_personal": true}`)
	})

	rec, err := c.Load(context.Background(), "12")

	require.NoError(t, err)
	assert.Equal(t, ID("12"), rec.ID)
	assert.Equal(t, "remote", rec.Title)
	assert.Equal(t, int64(3), rec.Owner)
}

func TestHTTPClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		body   string
		check  func(error) bool
		msg    string
	}{
		{http.StatusNotFound, `{"detail": "Not found."}`, apperr.IsNotFound, "Not found."},
		{http.StatusForbidden, `{"error": true, "message": "no access", "code": 403}`, apperr.IsForbidden, "no access"},
		{http.StatusUnauthorized, ``, apperr.IsForbidden, "Unauthorized"},
		{http.StatusBadRequest, `{"message": "title is required"}`, apperr.IsValidation, "title is required"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			_, err := c.Update(context.Background(), "1", TitlePatch("x"))

			require.Error(t, err)
			assert.True(t, tt.check(err), err.Error())
			assert.Equal(t, tt.msg, apperr.MessageOf(err))
		})
	}
}

func TestHTTPClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c := NewHTTPClient(url, "", time.Second, zap.NewNop())

	_, err := c.Load(context.Background(), "1")

	assert.True(t, apperr.IsNetwork(err))
}

func TestHTTPClient_CreateSendsNormalizedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/mindmaps/maps/", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, DefaultTitle, body["title"])
		assert.Equal(t, true, body["is_personal"])
		assert.Equal(t, []any{}, body["nodes"])
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id": 99, "title": "New map", "nodes": [], "edges": []}`)
	})

	rec, err := c.Create(context.Background(), NewRecord{})

	require.NoError(t, err)
	assert.Equal(t, ID("99"), rec.ID)
}

func TestHTTPClient_ListShapes(t *testing.T) {
	bodies := map[string]string{
		"paginated": `{"count": 1, "results": [{"id": 1, "title": "a", "nodes": [{}, {}], "edges": []}]}`,
		"bare":      `[{"id": 1, "title": "a", "nodes": [{}, {}], "edges": []}]`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "7", r.URL.Query().Get("project"))
				io.WriteString(w, body)
			})

			list, err := c.List(context.Background(), Filter{Project: ptr(int64(7))})

			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, "a", list[0].Title)
			assert.Equal(t, 2, list[0].Nodes)
		})
	}
}

func TestHTTPClient_ValidatesBeforeSending(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := c.Update(context.Background(), "1", Patch{})

	assert.True(t, apperr.IsValidation(err))
	assert.False(t, called)
}
