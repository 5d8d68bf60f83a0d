package bootstrap

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"glint/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		QueryAPIPort: 18090,
		OTLPHTTPPort: 18091,
		OTLPGRPCPort: 18092,
		DBPath:       filepath.Join(t.TempDir(), "glint.db"),
		LogLevel:     "error",
		LogFormat:    "text",
	}
}

func TestAppRunAndShutdown(t *testing.T) {
	app, err := New(testConfig(t))
	require.NoError(t, err)

	runErr := make(chan error, 1)
	go func() { runErr <- app.Run() }()
	time.Sleep(100 * time.Millisecond)

	resp, err := http.Get("http://127.0.0.1:18090/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, app.Shutdown(ctx))

	select {
	case err := <-runErr:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}

func TestNewResolvesConfiguredDBPath(t *testing.T) {
	cfg := testConfig(t)
	app, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = app.Shutdown(ctx)
	})

	require.Equal(t, cfg.DBPath, app.DBPath())
}
