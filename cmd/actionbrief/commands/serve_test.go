// ABOUTME: Tests for serve command wiring
// ABOUTME: Listen planning and app assembly without opening a socket
package commands

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harper/actionbrief/internal/config"
	"github.com/harper/actionbrief/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanListen(t *testing.T) {
	t.Run("plain http", func(t *testing.T) {
		plan := planListen("", t.TempDir())
		assert.Equal(t, ":5001", plan.Addr)
		assert.False(t, plan.TLS())
	})

	t.Run("tls when cert and key exist", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "cert.pem"), []byte("c"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "key.pem"), []byte("k"), 0o600))

		plan := planListen("", dir)
		assert.Equal(t, ":443", plan.Addr)
		assert.True(t, plan.TLS())
		assert.Equal(t, filepath.Join(dir, "cert.pem"), plan.CertFile)
		assert.Equal(t, filepath.Join(dir, "key.pem"), plan.KeyFile)
	})

	t.Run("cert without key stays plain", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "cert.pem"), []byte("c"), 0o600))

		plan := planListen("", dir)
		assert.False(t, plan.TLS())
	})

	t.Run("addr override", func(t *testing.T) {
		plan := planListen("127.0.0.1:8080", t.TempDir())
		assert.Equal(t, "127.0.0.1:8080", plan.Addr)
	})
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Defaults()
	cfg.SecretKey = "test-secret"
	cfg.DataDir = dir
	cfg.DatabasePath = filepath.Join(dir, "app_logs.db")
	cfg.TokenFile = filepath.Join(dir, "token.json")
	cfg.CredentialsFile = filepath.Join(dir, "credentials.json")
	return cfg
}

func TestNewApp_RequiresSecretKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.SecretKey = ""

	_, err := newApp(cfg, logging.Nop())
	assert.Error(t, err)
}

func TestNewApp_WithoutModelStillServes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)

	a, err := newApp(cfg, logging.Nop())
	require.NoError(t, err)
	a.start()
	defer func() { require.NoError(t, a.close(time.Second)) }()

	w := httptest.NewRecorder()
	a.server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	entries, err := a.logs.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Message, "Failed to load model/tokenizer:"))
}

func TestBuildService_WithKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.OpenAIKey = "sk-test"

	svc, err := buildService(cfg, logging.Nop())
	require.NoError(t, err)
	assert.True(t, svc.Available())
}
