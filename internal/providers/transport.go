package providers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultHTTPTimeout bounds a single upstream request when no client is supplied.
const DefaultHTTPTimeout = 10 * time.Second

const errorBodyLimit = 512

// HTTPDoer is the part of *http.Client the sources depend on.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ResolveHTTPClient returns client, or a default client with the given timeout.
func ResolveHTTPClient(client HTTPDoer, timeout time.Duration) HTTPDoer {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

// NormalizeBaseURL trims trailing slashes, falling back when raw is empty.
func NormalizeBaseURL(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = fallback
	}
	return strings.TrimRight(raw, "/")
}

// DoJSON sends req and decodes a 2xx JSON body into out. Transport failures,
// non-success statuses and undecodable bodies come back as *FetchError.
func DoJSON(doer HTTPDoer, req *http.Request, source string, kind Kind, out any) error {
	resp, err := doer.Do(req)
	if err != nil {
		return NewNetworkError(source, kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		fe := NewStatusError(source, kind, resp.StatusCode, strings.TrimSpace(string(body)))
		if resp.StatusCode == http.StatusTooManyRequests {
			fe.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
		}
		return fe
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if req.Context().Err() != nil {
			return NewNetworkError(source, kind, req.Context().Err())
		}
		return NewDecodeError(source, kind, err)
	}
	return nil
}

func parseRetryAfter(value string) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}

// UserAgent identifies this service to upstreams.
func UserAgent(version string) string {
	if version == "" {
		version = "dev"
	}
	return fmt.Sprintf("dashboard-service/%s", version)
}
