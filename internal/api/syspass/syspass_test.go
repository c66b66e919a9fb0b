package syspass

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vaultops/syspass-cli/internal/api"
	"github.com/vaultops/syspass-cli/internal/config"
	"github.com/vaultops/syspass-cli/internal/logging"
)

// capturedRequest is the decoded JSON-RPC envelope a test server received.
type capturedRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	Method  string            `json:"method"`
	Params  map[string]string `json:"params"`
	ID      int               `json:"id"`
}

// rpcServer starts a backend stand-in that decodes each request and lets
// the test choose status and body per call.
func rpcServer(t *testing.T, handle func(req capturedRequest) (int, string)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var req capturedRequest
		require.NoError(t, json.Unmarshal(body, &req), "request must be JSON-RPC")
		require.Equal(t, "2.0", req.JSONRPC)

		status, resp := handle(req)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// mapUsage is a map-backed UsageSource for tests.
type mapUsage map[int]int

func (m mapUsage) Counts() map[int]int { return m }

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, slog.LevelError)
}

// noPrompt fails the test if the interactive secret prompt fires.
func noPrompt(t *testing.T) SecretPrompt {
	return func() (string, error) {
		t.Fatal("secret prompt must not fire")
		return "", nil
	}
}

func newClient(t *testing.T, version string, host string, usage UsageSource, prompt SecretPrompt) api.Client {
	t.Helper()
	cfg := &config.Config{
		Host:       host,
		Token:      "test-token",
		Password:   "vault-pass",
		VerifyHost: true,
		APIVersion: version,
	}
	if prompt == nil {
		prompt = noPrompt(t)
	}
	client, err := New(cfg, usage, prompt, testLogger())
	require.NoError(t, err)
	return client
}

func TestNewRejectsUnknownVersion(t *testing.T) {
	cfg := &config.Config{APIVersion: "SyspassV9"}
	_, err := New(cfg, NoUsage(), nil, testLogger())
	require.Error(t, err)
}

func TestNewSelectsAdapterOnce(t *testing.T) {
	for version, want := range map[string]any{
		"":          &clientV3{},
		"SyspassV3": &clientV3{},
		"SyspassV2": &clientV2{},
	} {
		cfg := &config.Config{APIVersion: version}
		client, err := New(cfg, NoUsage(), nil, testLogger())
		require.NoError(t, err)
		require.IsType(t, want, client, "version %q", version)
	}
}
