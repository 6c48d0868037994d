package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/briefing/server/mocks"
)

func testConfig() *mocks.ConfigProviderMock {
	return &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return ":8080", 30 * time.Second
		},
		GetMaxDaysFunc: func() int { return 31 },
	}
}

func testDB() *mocks.DatabaseMock {
	return &mocks.DatabaseMock{
		PingFunc: func(ctx context.Context) error { return nil },
		DaysFunc: func(ctx context.Context) ([]string, error) { return []string{"2024-03-09", "2024-03-10"}, nil },
	}
}

func TestServer_New(t *testing.T) {
	srv := New(testConfig(), testDB(), &mocks.BrieferMock{}, "1.0.0", true)
	require.NotNil(t, srv)
	assert.Equal(t, "1.0.0", srv.version)
	assert.True(t, srv.debug)
	assert.NotNil(t, srv.router)
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return fmt.Sprintf("127.0.0.1:%d", port), 30 * time.Second
		},
		GetMaxDaysFunc: func() int { return 31 },
	}
	srv := New(cfg, testDB(), &mocks.BrieferMock{}, "1.0.0", false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	// wait for server to start
	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "pong"
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/health", port))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "briefing", resp.Header.Get("App-Name"))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_healthHandler(t *testing.T) {
	srv := New(testConfig(), testDB(), &mocks.BrieferMock{}, "1.2.3", false)

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var status map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, map[string]string{"status": "ok", "version": "1.2.3"}, status)

	t.Run("database down", func(t *testing.T) {
		db := &mocks.DatabaseMock{PingFunc: func(ctx context.Context) error { return errors.New("database is closed") }}
		srv := New(testConfig(), db, &mocks.BrieferMock{}, "1.2.3", false)

		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/health", http.NoBody))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"unavailable","version":"1.2.3","error":"database is closed"}`, w.Body.String())
		assert.Len(t, db.PingCalls(), 1)
	})
}

func TestRenderJSON(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", http.NoBody)

	renderJSON(w, r, http.StatusCreated, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"key":"value"}`, w.Body.String())
}

func TestRenderError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "with error", err: errors.New("boom"), want: `{"error":"boom"}`},
		{name: "nil error", err: nil, want: `{"error":"unknown error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("GET", "/", http.NoBody)
			renderError(w, r, tt.err, http.StatusBadRequest)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}
