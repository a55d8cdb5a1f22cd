package apiclient

// Normalize converts a raw Outcome into a CallResult.
//
// A transport error becomes TransportFailure carrying the error text. A body
// that is not exactly one JSON value becomes DecodeFailure. Anything else is
// Success, whatever the HTTP status; StatusCode is copied for callers that
// want it.
func Normalize(o Outcome) CallResult {
	if o.Err != nil {
		return TransportFailure(o.Err.Error())
	}

	payload, err := ParseValue(o.Body)
	if err != nil {
		r := DecodeFailure(ReasonInvalidJSON)
		r.StatusCode = o.StatusCode
		return r
	}

	r := Success(payload)
	r.StatusCode = o.StatusCode
	return r
}
