// Package rpc implements the single-shot JSON-RPC client used to talk
// to peers of the storage network. Every call is one HTTP POST to the
// peer's /rpc endpoint, raced against a per-call timeout. The client
// never retries; retry policy, if any, belongs to callers.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/xandnet/peerwatch/internal/logger"
	"github.com/xandnet/peerwatch/models"
)

var zlog = logger.New("rpc")

// Method names accepted by peer RPC endpoints. Hyphenated, not
// underscored.
const (
	MethodListPeers              = "list-peers"
	MethodGetTelemetry           = "get-telemetry"
	MethodListPeersWithTelemetry = "list-peers-with-telemetry"
)

const (
	// DefaultPort is the well-known RPC port peers listen on.
	DefaultPort = 6000

	// DefaultTimeout applies when the caller configures none.
	DefaultTimeout = 8 * time.Second

	// MaxTimeout is the hard ceiling any configured timeout is
	// clamped to.
	MaxTimeout = 30 * time.Second
)

// Client issues single request/response RPC calls to peer endpoints.
type Client struct {
	port    int
	timeout time.Duration
	debug   bool
	http    *http.Client
}

// NewClient returns a client bound to the given default port and
// per-call timeout. A non-positive timeout falls back to
// DefaultTimeout; anything above MaxTimeout is clamped down.
func NewClient(port int, timeout time.Duration, debug bool) *Client {
	if port <= 0 {
		port = DefaultPort
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if timeout > MaxTimeout {
		timeout = MaxTimeout
	}
	return &Client{
		port:    port,
		timeout: timeout,
		debug:   debug,
		http:    &http.Client{},
	}
}

// Timeout reports the effective per-call timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Call executes one JSON-RPC call against host:port and returns the raw
// result payload. Failures are reported as *NetworkError,
// *TimeoutError or *RPCError; payload validation is the caller's
// concern (the typed wrappers below apply it).
func (c *Client) Call(ctx context.Context, host string, port int, method string) (json.RawMessage, error) {
	if port <= 0 {
		port = c.port
	}
	target := fmt.Sprintf("%s:%d", host, port)
	endpoint := fmt.Sprintf("http://%s/rpc", target)

	body, err := json.Marshal(models.RPCRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  []any{},
	})
	if err != nil {
		return nil, &NetworkError{Target: target, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, &NetworkError{Target: target, Err: err}
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json")

	if c.debug {
		zlog.Sugar().Debugf("rpc request %s -> %s: %s", method, target, body)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{Target: target, Timeout: c.timeout}
		}
		return nil, &NetworkError{Target: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{
			Target: target,
			Err:    fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{Target: target, Timeout: c.timeout}
		}
		return nil, &NetworkError{Target: target, Err: err}
	}

	if c.debug {
		zlog.Sugar().Debugf("rpc response %s <- %s: %s", method, target, raw)
	}

	var envelope models.RPCResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &ValidationError{
			Target: target,
			Method: method,
			Issues: []FieldIssue{{Field: "(envelope)", Message: err.Error()}},
		}
	}

	if envelope.Error != nil {
		return nil, &RPCError{
			Target:  target,
			Method:  method,
			Code:    envelope.Error.Code,
			Message: envelope.Error.Message,
			Data:    envelope.Error.Data,
		}
	}

	return envelope.Result, nil
}

// ListPeers calls list-peers on a bootstrap address and returns its
// validated peer list. The address is a bare host on the well-known
// port, or host:port.
func (c *Client) ListPeers(ctx context.Context, addr string) (*models.ListPeersResult, error) {
	host, port := splitAddr(addr)
	raw, err := c.Call(ctx, host, port, MethodListPeers)
	if err != nil {
		return nil, err
	}
	if port <= 0 {
		port = c.port
	}
	return validateListPeers(fmt.Sprintf("%s:%d", host, port), raw)
}

// GetTelemetry calls get-telemetry directly on one peer and returns its
// validated telemetry.
func (c *Client) GetTelemetry(ctx context.Context, host string, port int) (*models.Telemetry, error) {
	raw, err := c.Call(ctx, host, port, MethodGetTelemetry)
	if err != nil {
		return nil, err
	}
	if port <= 0 {
		port = c.port
	}
	target := fmt.Sprintf("%s:%d", host, port)
	return validateTelemetry(target, raw)
}

// ListPeersWithTelemetry calls the combined discovery+telemetry method.
// The core collection path does not use it, but it is part of the
// protocol surface and exposed for callers that want a one-shot view
// from a single source.
func (c *Client) ListPeersWithTelemetry(ctx context.Context, addr string) (*models.ListPeersWithTelemetryResult, error) {
	host, port := splitAddr(addr)
	raw, err := c.Call(ctx, host, port, MethodListPeersWithTelemetry)
	if err != nil {
		return nil, err
	}
	if port <= 0 {
		port = c.port
	}
	return validateListPeersWithTelemetry(fmt.Sprintf("%s:%d", host, port), raw)
}

// splitAddr splits an optional trailing :port off a seed address.
// Returns port 0 when the address is a bare host.
func splitAddr(addr string) (string, int) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, 0
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return addr, 0
	}
	return host, port
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var timeoutErr interface{ Timeout() bool }
	return errors.As(err, &timeoutErr) && timeoutErr.Timeout()
}
