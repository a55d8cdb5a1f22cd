package apiclient

// Kind tags a CallResult.
type Kind int

const (
	KindTransportFailure Kind = iota + 1
	KindDecodeFailure
	KindSuccess
)

func (k Kind) String() string {
	switch k {
	case KindTransportFailure:
		return "transport_failure"
	case KindDecodeFailure:
		return "decode_failure"
	case KindSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// CallResult is the normalized outcome of one call. Exactly one variant is
// populated: a failure reason, or a decoded payload.
type CallResult struct {
	kind    Kind
	reason  string
	payload Value

	// StatusCode is the HTTP status, or 0 when no response was received.
	// Normalization never inspects it.
	StatusCode int
}

// TransportFailure builds a transport failure result.
func TransportFailure(reason string) CallResult {
	return CallResult{kind: KindTransportFailure, reason: reason}
}

// DecodeFailure builds a decode failure result.
func DecodeFailure(reason string) CallResult {
	return CallResult{kind: KindDecodeFailure, reason: reason}
}

// Success builds a success result carrying payload.
func Success(payload Value) CallResult {
	return CallResult{kind: KindSuccess, payload: payload}
}

// Kind returns the variant tag.
func (r CallResult) Kind() Kind { return r.kind }

// OK reports whether r is a Success.
func (r CallResult) OK() bool { return r.kind == KindSuccess }

// Reason returns the failure reason, or "" for Success.
func (r CallResult) Reason() string { return r.reason }

// Payload returns the decoded payload, or null for failures.
func (r CallResult) Payload() Value { return r.payload }

// Err returns a *CallError for failures and nil for Success.
func (r CallResult) Err() error {
	if r.kind == KindSuccess {
		return nil
	}
	return &CallError{Kind: r.kind, Reason: r.reason, StatusCode: r.StatusCode}
}
