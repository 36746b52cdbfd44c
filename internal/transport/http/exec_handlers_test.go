package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/wecode-dev/wecode-server/internal/runner"
)

func postExecute(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := http.Post(url+"/api/execute", "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestExecuteSuccess(t *testing.T) {
	ts := startTestServer(t, &fakeRunner{result: &runner.Result{
		Stdout: "42\n",
		Status: "ok",
	}})

	resp := postExecute(t, ts.URL, ExecuteRequest{Language: "python", Code: "print(42)"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	var out ExecuteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Stdout != "42\n" || out.Status != "ok" {
		t.Fatalf("unexpected response: %+v", out)
	}
}

func TestExecuteMissingFieldsRejected(t *testing.T) {
	ts := startTestServer(t, &fakeRunner{})

	resp := postExecute(t, ts.URL, map[string]string{"code": "print(42)"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestExecuteErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unsupported language", runner.ErrUnsupportedLanguage, http.StatusBadRequest},
		{"timeout", runner.ErrTimeout, http.StatusGatewayTimeout},
		{"unavailable", runner.ErrUnavailable, http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := startTestServer(t, &fakeRunner{err: tc.err})
			resp := postExecute(t, ts.URL, ExecuteRequest{Language: "brainfuck", Code: "x"})
			if resp.StatusCode != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, resp.StatusCode)
			}
		})
	}
}
