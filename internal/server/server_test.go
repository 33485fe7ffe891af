package server

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skilltreedocs/skilltreedocs/consts"
	"github.com/skilltreedocs/skilltreedocs/internal/api/router"
	"github.com/skilltreedocs/skilltreedocs/internal/config"
	"github.com/skilltreedocs/skilltreedocs/internal/registry"
	"github.com/skilltreedocs/skilltreedocs/internal/render"
	"github.com/skilltreedocs/skilltreedocs/internal/store"
	"github.com/skilltreedocs/skilltreedocs/pkg/logger"
)

func init() {
	logger.Init(logger.Config{
		Level:  "error",
		Format: "text",
	})
}

func testDeps(t *testing.T) router.Deps {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Content.StaticDir = ""

	engine, err := render.New()
	require.NoError(t, err)

	s, cleanup := store.SetupTestDB(t)
	t.Cleanup(cleanup)

	return router.Deps{
		Config:   cfg,
		Registry: registry.New(nil, nil, nil),
		Engine:   engine,
		Store:    s,
	}
}

func TestServer_New(t *testing.T) {
	deps := testDeps(t)
	srv := New(deps)
	require.NotNil(t, srv)
	assert.NotNil(t, srv.Router())
	assert.NotNil(t, srv.cleanup)
	assert.Equal(t, deps.Config.Sessions.RetentionDays, srv.cleanup.RetentionDays())
	assert.Nil(t, srv.Addr())
}

func TestServer_SetupRoutes(t *testing.T) {
	srv := New(testDeps(t))
	srv.SetupRoutes()

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestServer_StartStop(t *testing.T) {
	srv := New(testDeps(t))
	srv.SetupRoutes()
	require.NoError(t, srv.Start())
	require.NotNil(t, srv.Addr())
	assert.False(t, consts.GetStartedAt().IsZero())

	resp, err := http.Get(fmt.Sprintf("http://%s/health", srv.Addr()))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	require.NoError(t, srv.Stop())
	_, err = http.Get(fmt.Sprintf("http://%s/health", srv.Addr()))
	assert.Error(t, err)
}

func TestServer_StartAddressInUse(t *testing.T) {
	deps := testDeps(t)
	first := New(deps)
	require.NoError(t, first.Start())
	defer first.Stop()

	cfg := *deps.Config
	cfg.Server.Port = first.Addr().(*net.TCPAddr).Port
	deps.Config = &cfg
	second := New(deps)
	assert.Error(t, second.Start())
}

func TestServer_StopBeforeStart(t *testing.T) {
	srv := New(testDeps(t))
	assert.NoError(t, srv.Stop())
}
