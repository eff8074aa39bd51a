package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/taiwoajasa245/verbum-dei-api/pkg/config"
)

func testConfig(t *testing.T, driver string) *config.Config {
	return &config.Config{
		AppEnv:             "test",
		Port:               "0",
		StorageDriver:      driver,
		StoragePath:        filepath.Join(t.TempDir(), "verbum.db"),
		JWTSecret:          "test-secret",
		SessionTTL:         time.Hour,
		SessionIdleTimeout: time.Minute,
		JanitorInterval:    time.Minute,
		DefaultTranslation: "AVE_MARIA",
	}
}

func TestNewServerRequiresSecret(t *testing.T) {
	cfg := testConfig(t, "memory")
	cfg.JWTSecret = ""
	_, err := NewServer(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestNewServerRejectsUnknownDriver(t *testing.T) {
	_, err := NewServer(context.Background(), testConfig(t, "redis"), zap.NewNop())
	assert.Error(t, err)
}

func TestRoutes(t *testing.T) {
	for _, driver := range []string{"memory", "file", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			s, err := NewServer(context.Background(), testConfig(t, driver), zap.NewNop())
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })

			ts := httptest.NewServer(s.HTTPServer().Handler)
			t.Cleanup(ts.Close)

			resp, err := http.Get(ts.URL + "/verbum-dei/v1/health")
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var body struct {
				Data map[string]string `json:"data"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, driver, body.Data["storage"])

			resp2, err := http.Post(ts.URL+"/verbum-dei/v1/sessions", "application/json", nil)
			require.NoError(t, err)
			defer resp2.Body.Close()
			assert.Equal(t, http.StatusCreated, resp2.StatusCode)

			resp3, err := http.Get(ts.URL + "/verbum-dei/v1/saved")
			require.NoError(t, err)
			defer resp3.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp3.StatusCode)
		})
	}
}

func TestBackgroundJobsStop(t *testing.T) {
	s, err := NewServer(context.Background(), testConfig(t, "memory"), zap.NewNop())
	require.NoError(t, err)
	s.StartBackgroundJobs()
	s.StopBackgroundJobs()
	require.NoError(t, s.Close())
}
