package tvmaze

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTVMaze creates a test server that routes by path.
func mockTVMaze(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.URL.Path]; ok {
			handler(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic("test: failed to encode JSON: " + err.Error())
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_SingleSearch(t *testing.T) {
	srv := mockTVMaze(t, map[string]http.HandlerFunc{
		"/singlesearch/shows": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "the bear", r.URL.Query().Get("q"))
			writeJSON(w, Show{ID: 61252, Name: "The Bear", Status: "Running", Premiered: "2022-06-23"})
		},
	})

	client := New(WithBaseURL(srv.URL), WithLogger(testLogger()))
	show, err := client.SingleSearch(context.Background(), "the bear")
	require.NoError(t, err)
	assert.Equal(t, 61252, show.ID)
	assert.Equal(t, "The Bear", show.Name)
}

func TestClient_SingleSearch_NotFound(t *testing.T) {
	srv := mockTVMaze(t, nil)

	client := New(WithBaseURL(srv.URL))
	show, err := client.SingleSearch(context.Background(), "no such show")
	assert.Nil(t, show)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Episodes(t *testing.T) {
	srv := mockTVMaze(t, map[string]http.HandlerFunc{
		"/shows/61252/episodes": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[
				{"id": 1, "name": "System", "season": 1, "number": 1, "airdate": "2022-06-23", "runtime": 30},
				{"id": 2, "name": "Hands", "season": 1, "number": 2, "airdate": "2022-06-23", "runtime": 30},
				{"id": 3, "name": "TBA", "season": 4, "number": 1, "airdate": "", "runtime": null}
			]`))
		},
	})

	client := New(WithBaseURL(srv.URL))
	episodes, err := client.Episodes(context.Background(), 61252)
	require.NoError(t, err)
	require.Len(t, episodes, 3)
	assert.Equal(t, "Hands", episodes[1].Name)
	assert.Equal(t, 2, episodes[1].Number)
	assert.Empty(t, episodes[2].Airdate)
}

func TestClient_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"not found", http.StatusNotFound, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := mockTVMaze(t, map[string]http.HandlerFunc{
				"/shows/1/episodes": func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
				},
			})
			_, err := New(WithBaseURL(srv.URL)).Episodes(context.Background(), 1)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("server error", func(t *testing.T) {
		srv := mockTVMaze(t, map[string]http.HandlerFunc{
			"/shows/1/episodes": func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		})
		_, err := New(WithBaseURL(srv.URL)).Episodes(context.Background(), 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})
}
