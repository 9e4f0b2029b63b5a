package models

import "encoding/json"

// RPCRequest is the JSON-RPC 2.0 envelope accepted by every peer's
// /rpc endpoint.
type RPCRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

// RPCResponse is the JSON-RPC 2.0 response envelope. Exactly one of
// Result and Error is set on a well-formed response.
type RPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCErrorBody   `json:"error,omitempty"`
}

// RPCErrorBody is the application-level error a peer reports inside the
// envelope. Distinct from transport failures: the peer was reachable
// and answered, the method itself failed.
type RPCErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ListPeersResult is the result payload of the list-peers method.
type ListPeersResult struct {
	Peers      []Peer `json:"peers"`
	TotalCount int    `json:"total_count"`
}

// PeerWithTelemetry pairs a peer with its telemetry as returned by the
// combined list-peers-with-telemetry method. The core collector does
// not use this method but it is part of the protocol surface.
type PeerWithTelemetry struct {
	Peer
	Telemetry *Telemetry `json:"telemetry,omitempty"`
}

// ListPeersWithTelemetryResult is the result payload of the combined
// list-peers-with-telemetry method.
type ListPeersWithTelemetryResult struct {
	Peers      []PeerWithTelemetry `json:"peers"`
	TotalCount int                 `json:"total_count"`
}
