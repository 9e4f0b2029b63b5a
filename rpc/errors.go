package rpc

import (
	"fmt"
	"time"
)

// NetworkError is a transport-level failure reaching a host: connection
// refused, DNS failure, or a non-success HTTP status.
type NetworkError struct {
	Target string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling %s: %v", e.Target, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// TimeoutError is a call that exceeded its configured duration.
type TimeoutError struct {
	Target  string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("call to %s timed out after %s", e.Target, e.Timeout)
}

// RPCError is an application-level error reported by a peer inside the
// response envelope. The peer was reachable; the method failed. Callers
// that add retry policy treat this differently from transport failures.
type RPCError struct {
	Target  string
	Method  string
	Code    int
	Message string
	Data    any
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("%s on %s returned rpc error %d: %s", e.Method, e.Target, e.Code, e.Message)
}

// FieldIssue is one structured problem found while validating a result
// payload against the expected shape for its method.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a response that parsed as the envelope but carried
// a result payload that fails schema validation for its method.
type ValidationError struct {
	Target string
	Method string
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return fmt.Sprintf("invalid %s result from %s", e.Method, e.Target)
	}
	return fmt.Sprintf("invalid %s result from %s: %s: %s",
		e.Method, e.Target, e.Issues[0].Field, e.Issues[0].Message)
}
