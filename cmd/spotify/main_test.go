package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catalogServer records request URIs and answers each with a fixed body.
type catalogServer struct {
	mu     sync.Mutex
	uris   []string
	status int
}

func (s *catalogServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.uris = append(s.uris, r.URL.RequestURI())
	s.mu.Unlock()
	if s.status != 0 {
		w.WriteHeader(s.status)
	}
	w.Write([]byte(`{"ok":true}`))
}

func (s *catalogServer) requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.uris...)
}

func newCatalog(t *testing.T, status int) (*catalogServer, func(string) string) {
	t.Helper()
	cs := &catalogServer{status: status}
	srv := httptest.NewServer(cs)
	t.Cleanup(srv.Close)
	getenv := func(k string) string {
		if k == "SPOTIFY_API_BASE" {
			return srv.URL + "/v1"
		}
		return ""
	}
	return cs, getenv
}

func TestRunAlbum(t *testing.T) {
	cs, getenv := newCatalog(t, 0)
	var out, errOut bytes.Buffer

	err := run(context.Background(), []string{"album", "4aawyAB9vmqN3uQ7FjRGTy"}, getenv, &out, &errOut)
	require.NoError(t, err)
	assert.Equal(t, []string{"/v1/albums/4aawyAB9vmqN3uQ7FjRGTy"}, cs.requests())
	assert.Equal(t, "{\"ok\":true}\n", out.String())
}

func TestRunSearch(t *testing.T) {
	cs, getenv := newCatalog(t, 0)
	var out, errOut bytes.Buffer

	err := run(context.Background(), []string{"search", "Incubus", "artist,album"}, getenv, &out, &errOut)
	require.NoError(t, err)
	assert.Equal(t, []string{"/v1/search?q=Incubus&type=artist,album"}, cs.requests())
}

// TestRunMultipleQueries checks one request is sent per query.
func TestRunMultipleQueries(t *testing.T) {
	cs, getenv := newCatalog(t, 0)
	var out, errOut bytes.Buffer

	err := run(context.Background(), []string{"tracks", "Incubus", "Muse"}, getenv, &out, &errOut)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"/v1/search?q=Incubus&type=track",
		"/v1/search?q=Muse&type=track",
	}, cs.requests())
	assert.Equal(t, "{\"ok\":true}\n{\"ok\":true}\n", out.String())
}

func TestRunErrorStatus(t *testing.T) {
	_, getenv := newCatalog(t, http.StatusUnauthorized)
	var out, errOut bytes.Buffer

	err := run(context.Background(), []string{"artist", "x"}, getenv, &out, &errOut)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, out.String(), `{"ok":true}`)
}

func TestRunUsage(t *testing.T) {
	cs, getenv := newCatalog(t, 0)
	var out, errOut bytes.Buffer

	assert.ErrorIs(t, run(context.Background(), nil, getenv, &out, &errOut), errUsage)
	assert.ErrorIs(t, run(context.Background(), []string{"album"}, getenv, &out, &errOut), errUsage)
	assert.ErrorIs(t, run(context.Background(), []string{"search", "Incubus"}, getenv, &out, &errOut), errUsage)
	assert.Error(t, run(context.Background(), []string{"lyrics", "x"}, getenv, &out, &errOut))
	assert.Empty(t, cs.requests())
}

func TestRunMissingID(t *testing.T) {
	cs, getenv := newCatalog(t, 0)
	var out, errOut bytes.Buffer

	err := run(context.Background(), []string{"album", ""}, getenv, &out, &errOut)
	assert.Error(t, err)
	assert.Empty(t, cs.requests())
}

func TestRunMetrics(t *testing.T) {
	_, getenv := newCatalog(t, 0)
	var out, errOut bytes.Buffer

	err := run(context.Background(), []string{"-metrics", "playlist", "p1"}, getenv, &out, &errOut)
	require.NoError(t, err)
	assert.Contains(t, errOut.String(), `spotify_requests_total{operation="playlist",outcome="ok"} 1`)
}
