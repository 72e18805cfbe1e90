package providers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func clientReturning(status int, body string, header http.Header) *http.Client {
	return &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		if header == nil {
			header = http.Header{}
		}
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     header,
			Request:    r,
		}, nil
	})}
}

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://upstream/api/orders", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	return req
}

func TestDoJSONDecodesSuccess(t *testing.T) {
	var out []map[string]any
	err := DoJSON(clientReturning(http.StatusOK, `[{"id":1}]`, nil), newRequest(t), "rest", KindOrders, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one record, got %d", len(out))
	}
}

func TestDoJSONClassifiesStatus(t *testing.T) {
	header := http.Header{"Retry-After": []string{"7"}}
	err := DoJSON(clientReturning(http.StatusTooManyRequests, "slow down", header), newRequest(t), "rest", KindOrders, nil)
	fe, ok := AsFetchError(err)
	if !ok || fe.Kind != ErrorKindHTTPStatus || fe.Status != http.StatusTooManyRequests {
		t.Fatalf("expected http status error, got %v", err)
	}
	if fe.RetryAfter != 7*time.Second {
		t.Fatalf("expected retry-after 7s, got %s", fe.RetryAfter)
	}
}

func TestDoJSONClassifiesDecode(t *testing.T) {
	var out []map[string]any
	err := DoJSON(clientReturning(http.StatusOK, `{not json`, nil), newRequest(t), "rest", KindOrders, &out)
	if fe, ok := AsFetchError(err); !ok || fe.Kind != ErrorKindDecode {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestDoJSONClassifiesNetwork(t *testing.T) {
	boom := errors.New("connection refused")
	client := &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, boom
	})}
	err := DoJSON(client, newRequest(t), "rest", KindOrders, nil)
	if fe, ok := AsFetchError(err); !ok || fe.Kind != ErrorKindNetwork {
		t.Fatalf("expected network error, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected cause to be preserved")
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	if got := NormalizeBaseURL("http://bff:8080//", "x"); got != "http://bff:8080" {
		t.Fatalf("unexpected base %q", got)
	}
	if got := NormalizeBaseURL("  ", "http://fallback/"); got != "http://fallback" {
		t.Fatalf("unexpected fallback %q", got)
	}
}

func TestResolveHTTPClientDefaultsTimeout(t *testing.T) {
	c, ok := ResolveHTTPClient(nil, 0).(*http.Client)
	if !ok || c.Timeout != DefaultHTTPTimeout {
		t.Fatalf("expected default client with timeout, got %#v", c)
	}
}
