package runner

import (
	"context"
	"errors"
)

var (
	// ErrUnsupportedLanguage is returned for languages the backend has no
	// runtime for. It maps to a 400 at the REST boundary.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrTimeout is returned when the backend did not answer within the
	// configured deadline.
	ErrTimeout = errors.New("execution timed out")
	// ErrUnavailable is returned when the backend cannot be reached or
	// answers with a server error.
	ErrUnavailable = errors.New("execution service unavailable")
)

// Result is the structured outcome of a run. A non-empty CompileOutput
// with an empty Stdout/Stderr usually means the program never started.
type Result struct {
	Stdout        string
	Stderr        string
	CompileOutput string
	Status        string
}

// Runner abstracts the sandboxed execution backend. Implementations must
// honor the context deadline; the result goes only to the requesting
// connection and is never broadcast into a room.
type Runner interface {
	Execute(ctx context.Context, language, code, stdin string) (*Result, error)
}
