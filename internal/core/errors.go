package core

// Error codes for domain errors.
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeEmptyMessage   = "empty_message"
	ErrCodeInvalidMessage = "invalid_message"
)

// CoreError wraps a code and human-readable message. It is only ever
// delivered to the connection that caused it; stale-room references are
// handled as silent no-ops and never produce one.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}
