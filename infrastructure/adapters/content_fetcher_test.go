package adapters

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestFetchContentRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("payload"))
	}))
	defer server.Close()

	fetcher := NewRetryingContentFetcher(NewZerologWrapper(), server.Client(), fastRetryConfig())

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	payload, err := fetcher.FetchContent(req)
	if err != nil {
		t.Fatal("FetchContent failed:", err)
	}
	if string(payload) != "payload" {
		t.Errorf("payload = %q", payload)
	}
	if hits.Load() != 3 {
		t.Errorf("server hit %d times, want 3", hits.Load())
	}
}

func TestFetchContentRetriesReplayRequestBody(t *testing.T) {
	var hits atomic.Int32
	var lastBody atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := new(bytes.Buffer)
		_, _ = body.ReadFrom(r.Body)
		lastBody.Store(body.String())
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	fetcher := NewRetryingContentFetcher(NewZerologWrapper(), server.Client(), fastRetryConfig())

	req, _ := http.NewRequest(http.MethodPost, server.URL, strings.NewReader(`{"prompt":"sunset"}`))
	if _, err := fetcher.FetchContent(req); err != nil {
		t.Fatal("FetchContent failed:", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("server hit %d times, want 2", hits.Load())
	}
	if got := lastBody.Load().(string); got != `{"prompt":"sunset"}` {
		t.Errorf("retried body = %q", got)
	}
}

func TestFetchContentDoesNotRetryClientErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("invalid prompt"))
	}))
	defer server.Close()

	fetcher := NewRetryingContentFetcher(NewZerologWrapper(), server.Client(), fastRetryConfig())

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	_, err := fetcher.FetchContent(req)
	if err == nil {
		t.Fatal("expected an error for a 400 response")
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}
	if !strings.Contains(err.Error(), "invalid prompt") {
		t.Errorf("error should carry the response body: %v", err)
	}
}

func TestFetchContentGivesUpAfterMaxRetries(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded: quota exceeded"))
	}))
	defer server.Close()

	fetcher := NewRetryingContentFetcher(NewZerologWrapper(), server.Client(), fastRetryConfig())

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	_, err := fetcher.FetchContent(req)
	if err == nil {
		t.Fatal("expected an error after exhausting retries")
	}
	if hits.Load() != 4 {
		t.Errorf("server hit %d times, want 4", hits.Load())
	}
	// The final upstream status and body must survive the retry loop.
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error should carry the upstream status: %v", err)
	}
	if !strings.Contains(err.Error(), "upstream exploded: quota exceeded") {
		t.Errorf("error should carry the upstream body: %v", err)
	}
}
