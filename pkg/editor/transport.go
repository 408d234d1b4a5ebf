package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lobo-bot/lobo/pkg/logging"
)

// Transport sends JSON request bodies to named dashboard endpoints. Every
// network call in the editor goes through here; it makes at most one
// attempt per call and leaves retry policy to the caller.
type Transport struct {
	// l is the logger.
	l *slog.Logger

	// baseURL is the dashboard root, without a trailing slash.
	baseURL string

	// client is the HTTP client.
	client *http.Client
}

// NewTransport creates a new Transport against the dashboard root URL.
func NewTransport(l *slog.Logger, baseURL string) *Transport {
	return &Transport{
		l:       l,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  http.DefaultClient,
	}
}

// Send POSTs body as JSON to the named endpoint and returns the parsed
// response object. A non-JSON response body is wrapped as {"raw": text}
// rather than failing, so an unexpected error page still surfaces to the
// caller. Any failure is returned as a *TransportError so callers have a
// single failure branch.
func (t *Transport) Send(ctx context.Context, endpoint string, body any) (map[string]any, error) {
	if body == nil {
		body = map[string]any{}
	}

	buf, err := json.Marshal(body)
	if err != nil {
		return nil, &TransportError{Msg: "encoding request: " + err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/"+strings.TrimLeft(endpoint, "/"), bytes.NewReader(buf))
	if err != nil {
		return nil, &TransportError{Msg: "building request: " + err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		t.l.Error("Request failed",
			slog.String(logging.KeyEndpoint, endpoint),
			slog.String(logging.KeyError, err.Error()),
		)
		return nil, &TransportError{Msg: err.Error()}
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Status: resp.StatusCode, Msg: "reading response: " + err.Error()}
	}

	parsed := parseLenient(text)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := extractMessage(parsed)
		if msg == "" {
			msg = resp.Status
		}
		t.l.Error("Request rejected",
			slog.String(logging.KeyEndpoint, endpoint),
			slog.String(logging.KeyError, msg),
		)
		return nil, &TransportError{Status: resp.StatusCode, Msg: msg}
	}

	return parsed, nil
}

// parseLenient parses a response body as a JSON object, degrading to a
// raw text wrapper instead of propagating a decode failure.
func parseLenient(text []byte) map[string]any {
	if len(bytes.TrimSpace(text)) == 0 {
		return map[string]any{}
	}
	parsed := make(map[string]any)
	if err := json.Unmarshal(text, &parsed); err != nil {
		return map[string]any{"raw": string(text)}
	}
	return parsed
}

// extractMessage pulls a human readable message out of an error response
// body, preferring the "error" field over "message".
func extractMessage(body map[string]any) string {
	for _, key := range []string{"error", "message", "Message"} {
		if v, ok := body[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
