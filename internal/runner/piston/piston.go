// Package piston implements runner.Runner against a Piston-compatible
// execute API (https://github.com/engineer-man/piston). Piston runs the
// submitted program in its own sandbox, which is why no local process
// execution variant exists here.
package piston

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/wecode-dev/wecode-server/internal/runner"
)

// DefaultURL is the public Piston instance used by the original client.
const DefaultURL = "https://emkc.org/api/v2/piston/execute"

type languageSpec struct {
	Language string
	Version  string
}

// runtimes maps the editor's language tags to Piston runtimes.
var runtimes = map[string]languageSpec{
	"javascript": {Language: "javascript", Version: "18.15.0"},
	"python":     {Language: "python", Version: "3.10.0"},
	"java":       {Language: "java", Version: "15.0.2"},
	"cpp":        {Language: "c++", Version: "10.2.0"},
}

// Client talks to a Piston-compatible execute endpoint.
type Client struct {
	url     string
	timeout time.Duration
	http    *http.Client
	log     *zerolog.Logger
}

// New creates a client. An empty url selects DefaultURL; timeout <= 0
// selects 15 seconds.
func New(url string, timeout time.Duration, logger *zerolog.Logger) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Client{
		url:     url,
		timeout: timeout,
		http:    &http.Client{},
		log:     logger,
	}
}

// Supported reports whether a language tag has a runtime.
func Supported(language string) bool {
	_, ok := runtimes[language]
	return ok
}

type executeRequest struct {
	Language string        `json:"language"`
	Version  string        `json:"version"`
	Files    []executeFile `json:"files"`
	Stdin    string        `json:"stdin,omitempty"`
}

type executeFile struct {
	Content string `json:"content"`
}

type executeResponse struct {
	Run     stageResult `json:"run"`
	Compile stageResult `json:"compile"`
	Message string      `json:"message"`
}

type stageResult struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
	Output string `json:"output"`
	Code   *int   `json:"code"`
	Signal string `json:"signal"`
}

// Execute submits the program and waits for the run result within the
// configured deadline.
func (c *Client) Execute(ctx context.Context, language, code, stdin string) (*runner.Result, error) {
	spec, ok := runtimes[language]
	if !ok {
		return nil, fmt.Errorf("%w: %q", runner.ErrUnsupportedLanguage, language)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(executeRequest{
		Language: spec.Language,
		Version:  spec.Version,
		Files:    []executeFile{{Content: code}},
		Stdin:    stdin,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal execute request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build execute request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", runner.ErrTimeout, c.timeout)
		}
		c.log.Warn().Err(err).Str("url", c.url).Msg("piston request failed")
		return nil, fmt.Errorf("%w: %v", runner.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: status %d", runner.ErrUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", runner.ErrUnsupportedLanguage, resp.StatusCode)
	}

	var out executeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", runner.ErrUnavailable, err)
	}

	return &runner.Result{
		Stdout:        out.Run.Stdout,
		Stderr:        out.Run.Stderr,
		CompileOutput: out.Compile.Output,
		Status:        status(out),
	}, nil
}

// status distinguishes compile failure, runtime failure, and success.
func status(r executeResponse) string {
	if r.Compile.Code != nil && *r.Compile.Code != 0 {
		return "compile_error"
	}
	if r.Run.Code != nil && *r.Run.Code != 0 {
		return "runtime_error"
	}
	if r.Run.Signal != "" {
		return "killed"
	}
	return "ok"
}
