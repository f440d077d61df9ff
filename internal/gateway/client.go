// Package gateway holds the HTTP clients for the five remote services the
// booking flow depends on. Each client normalizes its service's response
// shapes at this boundary; the rest of the codebase only sees clean models.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

type bearerKey struct{}

// WithBearer returns a context carrying the upstream gateway bearer token.
// Every request issued through this package attaches it as an Authorization
// header; contexts without a token produce unauthenticated requests.
func WithBearer(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, bearerKey{}, token)
}

// BearerFrom extracts the upstream bearer token from a context, if any.
func BearerFrom(ctx context.Context) string {
	token, _ := ctx.Value(bearerKey{}).(string)
	return token
}

// doJSON issues a request with an optional JSON body and decodes the JSON
// response into out (skipped when out is nil). Non-2xx statuses are errors
// carrying the response body for diagnosis.
func doJSON(ctx context.Context, client *http.Client, method, url string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := BearerFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Body: string(raw)}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", url, err)
	}
	return nil
}

// StatusError is a non-2xx remote response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote returned status %d: %s", e.Code, e.Body)
}

// decodeValueWrapped accepts either a bare JSON array or an OData-style
// {"value": [...]} envelope and unmarshals the array into out. Any other
// shape is rejected rather than defaulted away.
func decodeValueWrapped(raw json.RawMessage, out interface{}) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty response body")
	}

	if trimmed[0] == '{' {
		var envelope struct {
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return fmt.Errorf("failed to parse envelope: %w", err)
		}
		if envelope.Value == nil {
			return fmt.Errorf("object response missing value array")
		}
		trimmed = envelope.Value
	}

	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("failed to parse array: %w", err)
	}
	return nil
}

// pickRaw returns the first of the given keys present in the object. The
// upstream services disagree on casing (camelCase, PascalCase, snake_case),
// so DTOs enumerate the variants they have actually observed.
func pickRaw(obj map[string]json.RawMessage, keys ...string) (json.RawMessage, bool) {
	for _, k := range keys {
		if v, ok := obj[k]; ok && len(v) > 0 && string(v) != "null" {
			return v, true
		}
	}
	return nil, false
}

func pickString(obj map[string]json.RawMessage, keys ...string) string {
	raw, ok := pickRaw(obj, keys...)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func pickInt(obj map[string]json.RawMessage, keys ...string) (int, bool) {
	raw, ok := pickRaw(obj, keys...)
	if !ok {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		// Some upstreams serialize numeric ids as strings.
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		var parsed int
		if _, err := fmt.Sscanf(s, "%d", &parsed); err != nil {
			return 0, false
		}
		return parsed, true
	}
	return n, true
}

func pickFloat(obj map[string]json.RawMessage, keys ...string) float64 {
	raw, ok := pickRaw(obj, keys...)
	if !ok {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0
	}
	return f
}

func pickBool(obj map[string]json.RawMessage, fallback bool, keys ...string) bool {
	raw, ok := pickRaw(obj, keys...)
	if !ok {
		return fallback
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return fallback
	}
	return b
}
