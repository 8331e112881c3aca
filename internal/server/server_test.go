package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"neonmap/internal/apperr"
	"neonmap/internal/config"
	"neonmap/internal/graph"
	"neonmap/internal/store"
)

func newTestServer(t *testing.T, cfg config.ServerConfig, p store.Principal) (*httptest.Server, *store.BadgerStore) {
	t.Helper()
	backend, err := store.OpenBadger(store.BadgerConfig{InMemory: true, Principal: p}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	srv := httptest.NewServer(New(backend, cfg, p, zap.NewNop()).Handler())
	t.Cleanup(srv.Close)
	return srv, backend
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, config.ServerConfig{AllowedOrigins: []string{"*"}}, store.Principal{User: 1})

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestClientAgainstServer(t *testing.T) {
	srv, _ := newTestServer(t, config.ServerConfig{AllowedOrigins: []string{"*"}, Token: "t0k"}, store.Principal{User: 1})
	client := store.NewHTTPClient(srv.URL+"/api", "t0k", 5*time.Second, zap.NewNop())
	ctx := context.Background()

	m := graph.NewMap("")
	m.AddNode(graph.NewNode("c", graph.Point{X: 250, Y: 300}, "child"))
	m.AddEdge(graph.NewEdge("e", "1", "c"))
	in, err := store.NewRecordFromMap(m, store.OwnerContext{})
	require.NoError(t, err)

	created, err := client.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, store.DefaultTitle, created.Title)
	assert.True(t, created.IsPersonal)

	renamed, err := client.Update(ctx, created.ID, store.TitlePatch("renamed"))
	require.NoError(t, err)
	assert.Equal(t, "renamed", renamed.Title)

	loaded, err := client.Load(ctx, created.ID)
	require.NoError(t, err)
	got, err := loaded.Map()
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, m.Nodes, got.Nodes)
	assert.Equal(t, m.Edges, got.Edges)

	list, err := client.List(ctx, store.Filter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Nodes)

	require.NoError(t, client.Delete(ctx, created.ID))
	_, err = client.Load(ctx, created.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestTokenRequired(t *testing.T) {
	srv, _ := newTestServer(t, config.ServerConfig{Token: "t0k"}, store.Principal{User: 1})
	client := store.NewHTTPClient(srv.URL+"/api", "wrong", 5*time.Second, zap.NewNop())

	_, err := client.List(context.Background(), store.Filter{})

	assert.True(t, apperr.IsForbidden(err))
}

func TestForbiddenForeignMap(t *testing.T) {
	srv, backend := newTestServer(t, config.ServerConfig{}, store.Principal{User: 1})
	ctx := store.WithPrincipal(context.Background(), store.Principal{User: 2})
	rec, err := backend.Create(ctx, store.NewRecord{Title: "someone else's"})
	require.NoError(t, err)

	client := store.NewHTTPClient(srv.URL+"/api", "", 5*time.Second, zap.NewNop())
	_, err = client.Load(context.Background(), rec.ID)

	assert.True(t, apperr.IsForbidden(err))
}

func TestErrorBody(t *testing.T) {
	srv, _ := newTestServer(t, config.ServerConfig{}, store.Principal{User: 1})

	resp, err := http.Post(srv.URL+"/api/mindmaps/maps/", "application/json", strings.NewReader(`{"title": 5}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
		Code    int    `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Error)
	assert.Equal(t, http.StatusBadRequest, body.Code)
	assert.Contains(t, body.Message, "invalid JSON body")
}

func TestListFilterValidation(t *testing.T) {
	srv, _ := newTestServer(t, config.ServerConfig{}, store.Principal{User: 1})

	resp, err := http.Get(srv.URL + "/api/mindmaps/maps?project=abc")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListEmptyIsArray(t *testing.T) {
	srv, _ := newTestServer(t, config.ServerConfig{}, store.Principal{User: 1})

	resp, err := http.Get(srv.URL + "/api/mindmaps/maps/")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body []json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotNil(t, body)
	assert.Empty(t, body)
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t, config.ServerConfig{AllowedOrigins: []string{"http://localhost:3000"}}, store.Principal{User: 1})

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/mindmaps/maps/", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "PATCH")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}
