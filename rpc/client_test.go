package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xandnet/peerwatch/models"
)

// mockRPCServer answers /rpc with the given handler and returns the
// server plus its host:port address.
func mockRPCServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, string) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/rpc", handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, strings.TrimPrefix(server.URL, "http://")
}

func rpcResult(t *testing.T, result any) []byte {
	t.Helper()
	raw, err := json.Marshal(result)
	require.NoError(t, err)
	body, err := json.Marshal(models.RPCResponse{JSONRPC: "2.0", ID: 1, Result: raw})
	require.NoError(t, err)
	return body
}

func TestClientTimeoutClamping(t *testing.T) {
	assert.Equal(t, DefaultTimeout, NewClient(0, 0, false).Timeout())
	assert.Equal(t, DefaultTimeout, NewClient(0, -5*time.Second, false).Timeout())
	assert.Equal(t, MaxTimeout, NewClient(0, 2*time.Minute, false).Timeout())
	assert.Equal(t, 3*time.Second, NewClient(0, 3*time.Second, false).Timeout())
}

func TestListPeersSuccess(t *testing.T) {
	_, addr := mockRPCServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req models.RPCRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2.0", req.JSONRPC)
		assert.Equal(t, MethodListPeers, req.Method)

		w.Write(rpcResult(t, models.ListPeersResult{
			Peers: []models.Peer{
				{Pubkey: "peer-a", Address: "10.0.0.1:6000", LastSeenTimestamp: 1700000000, Version: "1.2.0"},
			},
			TotalCount: 1,
		}))
	})

	client := NewClient(0, 2*time.Second, false)
	result, err := client.ListPeers(context.Background(), addr)

	require.NoError(t, err)
	require.Len(t, result.Peers, 1)
	assert.Equal(t, "peer-a", result.Peers[0].Pubkey)
	assert.Equal(t, 1, result.TotalCount)
}

func TestCallRPCError(t *testing.T) {
	_, addr := mockRPCServer(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(models.RPCResponse{
			JSONRPC: "2.0",
			ID:      1,
			Error:   &models.RPCErrorBody{Code: -32601, Message: "method not found"},
		})
		w.Write(body)
	})

	client := NewClient(0, 2*time.Second, false)
	_, err := client.ListPeers(context.Background(), addr)

	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, -32601, rpcErr.Code)
	assert.Equal(t, "method not found", rpcErr.Message)
	assert.Equal(t, MethodListPeers, rpcErr.Method)
}

func TestCallNetworkErrorOnBadStatus(t *testing.T) {
	_, addr := mockRPCServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	client := NewClient(0, 2*time.Second, false)
	_, err := client.ListPeers(context.Background(), addr)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Contains(t, netErr.Error(), "502")
}

func TestCallNetworkErrorOnRefusedConnection(t *testing.T) {
	server, addr := mockRPCServer(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	client := NewClient(0, 2*time.Second, false)
	_, err := client.ListPeers(context.Background(), addr)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestCallTimeout(t *testing.T) {
	_, addr := mockRPCServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write(rpcResult(t, models.ListPeersResult{Peers: []models.Peer{}}))
	})

	client := NewClient(0, 50*time.Millisecond, false)
	_, err := client.ListPeers(context.Background(), addr)

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, 50*time.Millisecond, timeoutErr.Timeout)
}

func TestListPeersValidationError(t *testing.T) {
	tests := []struct {
		name   string
		result any
		field  string
	}{
		{
			name:   "missing peer list",
			result: map[string]any{"total_count": 3},
			field:  "peers",
		},
		{
			name: "empty pubkey",
			result: models.ListPeersResult{
				Peers: []models.Peer{{Address: "10.0.0.1:6000", LastSeenTimestamp: 1}},
			},
			field: "peers[0].pubkey",
		},
		{
			name: "negative timestamp",
			result: models.ListPeersResult{
				Peers: []models.Peer{{Pubkey: "peer-a", Address: "10.0.0.1:6000", LastSeenTimestamp: -7}},
			},
			field: "peers[0].last_seen_timestamp",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, addr := mockRPCServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write(rpcResult(t, tc.result))
			})

			client := NewClient(0, 2*time.Second, false)
			_, err := client.ListPeers(context.Background(), addr)

			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)

			fields := make([]string, 0, len(valErr.Issues))
			for _, issue := range valErr.Issues {
				fields = append(fields, issue.Field)
			}
			assert.Contains(t, fields, tc.field)
		})
	}
}

func TestGetTelemetrySuccess(t *testing.T) {
	_, addr := mockRPCServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req models.RPCRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, MethodGetTelemetry, req.Method)

		w.Write(rpcResult(t, models.Telemetry{
			ActiveConnections: 4,
			CPUPercent:        37.5,
			RAMUsed:           2048,
			RAMTotal:          8192,
			UptimeSeconds:     86400,
		}))
	})

	host, port := splitAddr(addr)
	client := NewClient(0, 2*time.Second, false)
	telemetry, err := client.GetTelemetry(context.Background(), host, port)

	require.NoError(t, err)
	assert.Equal(t, 4, telemetry.ActiveConnections)
	assert.Equal(t, 37.5, telemetry.CPUPercent)
}

func TestGetTelemetryRejectsNegativeCounters(t *testing.T) {
	_, addr := mockRPCServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(rpcResult(t, models.Telemetry{RAMTotal: -1, UptimeSeconds: -300}))
	})

	host, port := splitAddr(addr)
	client := NewClient(0, 2*time.Second, false)
	_, err := client.GetTelemetry(context.Background(), host, port)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Len(t, valErr.Issues, 2)
}

func TestGetTelemetryKeepsImplausibleCPU(t *testing.T) {
	// Out-of-range CPU from a misbehaving peer is kept as-is, not
	// rejected.
	_, addr := mockRPCServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(rpcResult(t, models.Telemetry{CPUPercent: 412.7}))
	})

	host, port := splitAddr(addr)
	client := NewClient(0, 2*time.Second, false)
	telemetry, err := client.GetTelemetry(context.Background(), host, port)

	require.NoError(t, err)
	assert.Equal(t, 412.7, telemetry.CPUPercent)
}

func TestListPeersWithTelemetry(t *testing.T) {
	_, addr := mockRPCServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req models.RPCRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, MethodListPeersWithTelemetry, req.Method)

		w.Write(rpcResult(t, models.ListPeersWithTelemetryResult{
			Peers: []models.PeerWithTelemetry{
				{
					Peer:      models.Peer{Pubkey: "peer-a", Address: "10.0.0.1:6000", LastSeenTimestamp: 1},
					Telemetry: &models.Telemetry{CPUPercent: 12},
				},
			},
			TotalCount: 1,
		}))
	})

	client := NewClient(0, 2*time.Second, false)
	result, err := client.ListPeersWithTelemetry(context.Background(), addr)

	require.NoError(t, err)
	require.Len(t, result.Peers, 1)
	require.NotNil(t, result.Peers[0].Telemetry)
	assert.Equal(t, float64(12), result.Peers[0].Telemetry.CPUPercent)
}

func TestSplitAddr(t *testing.T) {
	host, port := splitAddr("seed1.xandnet.io")
	assert.Equal(t, "seed1.xandnet.io", host)
	assert.Equal(t, 0, port)

	host, port = splitAddr("127.0.0.1:39201")
	assert.Equal(t, "127.0.0.1", host)
	assert.Equal(t, 39201, port)
}

func TestCallHitsWellKnownPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"result":{"peers":[],"total_count":0}}`)
	}))
	t.Cleanup(server.Close)

	client := NewClient(0, 2*time.Second, false)
	_, err := client.ListPeers(context.Background(), strings.TrimPrefix(server.URL, "http://"))

	require.NoError(t, err)
	assert.Equal(t, "/rpc", gotPath)
}
