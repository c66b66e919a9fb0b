// Package syspass implements the api.Client operation set against the
// sysPass JSON-RPC API, in both the current (v3) and the legacy (v2) wire
// dialect. Both adapters share one transport: a single synchronous HTTP
// POST per operation, a strictly sequential request-id counter, and
// uniform failure classification.
package syspass

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vaultops/syspass-cli/internal/api"
	"github.com/vaultops/syspass-cli/internal/api/apierr"
	"github.com/vaultops/syspass-cli/internal/config"
	"github.com/vaultops/syspass-cli/internal/logging"
)

// request is the JSON-RPC 2.0 envelope sent to the backend.
type request struct {
	JSONRPC string            `json:"jsonrpc"`
	Method  string            `json:"method"`
	Params  map[string]string `json:"params"`
	ID      uint8             `json:"id"`
}

// rpcError is the JSON-RPC error object shared by both dialects.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// transport issues JSON-RPC calls against one configured endpoint.
//
// The request id is only used for correlation within a single exchange.
// Calls are never issued concurrently, so the counter needs no locking and
// uint8 wraparound is harmless. No timeout is set: a stalled exchange
// blocks until the server answers or the connection drops.
type transport struct {
	httpClient *http.Client
	host       string
	token      string
	secrets    *SecretCache
	nextID     uint8
	log        logging.Logger
}

func newTransport(cfg *config.Config, secrets *SecretCache, log logging.Logger) *transport {
	return &transport{
		httpClient: &http.Client{
			Transport: &http.Transport{
				// Self-signed vault servers are common; verification is
				// a config toggle.
				TLSClientConfig: &tls.Config{InsecureSkipVerify: !cfg.VerifyHost},
			},
		},
		host:    cfg.Host,
		token:   cfg.Token,
		secrets: secrets,
		nextID:  1,
		log:     log,
	}
}

// call sends one JSON-RPC request and returns the raw response body.
// Every request carries the auth token; needsPassword additionally injects
// the vault password (from config, or prompted once per process). Args with
// an empty key or value are dropped. Non-2xx statuses and unreadable bodies
// are classified as transport errors; the body is not decoded on failure.
func (t *transport) call(ctx context.Context, method string, args []api.Param, needsPassword bool) ([]byte, error) {
	defer func() { t.nextID++ }()

	params := map[string]string{"authToken": t.token}
	if needsPassword {
		pass, err := t.secrets.Get()
		if err != nil {
			return nil, fmt.Errorf("obtain vault password: %w", err)
		}
		params["tokenPass"] = pass
	}
	for _, a := range args {
		if a.Key != "" && a.Value != "" {
			params[a.Key] = a.Value
		}
	}

	payload, err := json.Marshal(request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      t.nextID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	t.log.Debug(ctx, "sending request", "method", method, "id", t.nextID, "url", t.host)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.host, bytes.NewReader(payload))
	if err != nil {
		return nil, &apierr.TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, &apierr.TransportError{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &apierr.TransportError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apierr.TransportError{Err: fmt.Errorf("read response body: %w", err)}
	}

	t.log.Debug(ctx, "received response", "method", method, "bytes", len(body))

	return body, nil
}

// decodeErr wraps a JSON decoding failure as a transport error carrying the
// decode diagnostic.
func decodeErr(err error) error {
	return &apierr.TransportError{Err: fmt.Errorf("decode response: %w", err)}
}
