package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hekevintran/kinetophone/internal/clock"
	"github.com/hekevintran/kinetophone/internal/config"
	"github.com/hekevintran/kinetophone/internal/engine"
	"github.com/hekevintran/kinetophone/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:         8080,
			Host:         "127.0.0.1",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
		Logging: config.LoggingConfig{Level: "info"},
		Engine: config.EngineConfig{
			TickResolution: 33,
			FrameInterval:  16 * time.Millisecond,
			PlaybackRate:   1,
		},
	}
}

func TestServerRoutes(t *testing.T) {
	eng, err := engine.New(clock.NewManual(), 1000, []models.Channel{{Name: "captions"}})
	require.NoError(t, err)

	srv := New(testConfig(), eng)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/health", http.StatusOK},
		{http.MethodGet, "/api/channels", http.StatusOK},
		{http.MethodGet, "/api/playback", http.StatusOK},
		{http.MethodGet, "/api/timings?at=0", http.StatusOK},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestServerCORS(t *testing.T) {
	eng, err := engine.New(clock.NewManual(), 1000, nil)
	require.NoError(t, err)

	srv := New(testConfig(), eng)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestShutdownPausesPlayback(t *testing.T) {
	eng, err := engine.New(clock.NewManual(), 1000, nil)
	require.NoError(t, err)

	srv := New(testConfig(), eng)
	eng.Play()
	require.True(t, eng.Playing())

	require.NoError(t, srv.Shutdown(context.Background()))
	assert.False(t, eng.Playing())
}
