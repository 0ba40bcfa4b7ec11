package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sagarghai/growth-tools-api/config"
	"github.com/sagarghai/growth-tools-api/domain"
)

func testReplicateConfig(apiURL string) *config.ReplicateConfig {
	return &config.ReplicateConfig{
		ApiUrl:       apiURL,
		ApiToken:     "r8_test",
		Model:        "black-forest-labs/flux-schnell",
		AspectRatio:  "16:9",
		OutputFormat: "jpg",
		Timeout:      5 * time.Second,
		PollInterval: time.Millisecond,
	}
}

func newTestGenerator(server *httptest.Server) *replicateImageGenerator {
	logger := NewZerologWrapper()
	fetcher := NewRetryingContentFetcher(logger, server.Client(), fastRetryConfig())
	return NewReplicateImageGenerator(fetcher, testReplicateConfig(server.URL), logger).(*replicateImageGenerator)
}

func TestGenerateCreatesPollsAndDownloads(t *testing.T) {
	var polls atomic.Int32
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/models/black-forest-labs/flux-schnell/predictions":
			if got := r.Header.Get("Authorization"); got != "Bearer r8_test" {
				t.Errorf("Authorization = %q", got)
			}
			if got := r.Header.Get("Prefer"); got != "wait" {
				t.Errorf("Prefer = %q", got)
			}
			var body struct {
				Input struct {
					Prompt      string `json:"prompt"`
					AspectRatio string `json:"aspect_ratio"`
				} `json:"input"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("bad prediction request body: %v", err)
			}
			if body.Input.Prompt != "sunset over mountains" {
				t.Errorf("prompt = %q", body.Input.Prompt)
			}
			fmt.Fprintf(w, `{"id":"p1","status":"processing","urls":{"get":"%s/predictions/p1"}}`, server.URL)

		case r.Method == http.MethodGet && r.URL.Path == "/predictions/p1":
			if polls.Add(1) < 2 {
				fmt.Fprintf(w, `{"id":"p1","status":"processing","urls":{"get":"%s/predictions/p1"}}`, server.URL)
				return
			}
			fmt.Fprintf(w, `{"id":"p1","status":"succeeded","output":["%s/images/out.jpg"]}`, server.URL)

		case r.Method == http.MethodGet && r.URL.Path == "/images/out.jpg":
			_, _ = w.Write([]byte("jpeg-bytes"))

		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	content, err := newTestGenerator(server).Generate(context.Background(), "sunset over mountains")
	if err != nil {
		t.Fatal("Generate failed:", err)
	}
	if string(content) != "jpeg-bytes" {
		t.Errorf("content = %q", content)
	}
	if polls.Load() < 2 {
		t.Errorf("polled %d times, want at least 2", polls.Load())
	}
}

func TestGenerateFailedPrediction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"p1","status":"failed","error":"NSFW content detected"}`)
	}))
	defer server.Close()

	_, err := newTestGenerator(server).Generate(context.Background(), "bad prompt")
	if err == nil {
		t.Fatal("expected an error for a failed prediction")
	}

	pErr, ok := domain.AsPipelineError(err)
	if !ok || pErr.Kind != domain.GenerationError {
		t.Fatalf("expected a generation error, got %v", err)
	}
	if pErr.Timeout {
		t.Error("a failed prediction is not a timeout")
	}
}

func TestGenerateTimeout(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"id":"p1","status":"processing","urls":{"get":"%s/predictions/p1"}}`, server.URL)
	}))
	defer server.Close()

	generator := newTestGenerator(server)
	generator.replicateConfig.Timeout = 50 * time.Millisecond

	_, err := generator.Generate(context.Background(), "slow prompt")
	if err == nil {
		t.Fatal("expected a timeout error")
	}

	pErr, ok := domain.AsPipelineError(err)
	if !ok || pErr.Kind != domain.GenerationError {
		t.Fatalf("expected a generation error, got %v", err)
	}
	if !pErr.Timeout {
		t.Errorf("Timeout flag not set: %+v", pErr)
	}
}

func TestGenerateStringOutputShape(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/images/out.jpg" {
			_, _ = w.Write([]byte("jpeg-bytes"))
			return
		}
		fmt.Fprintf(w, `{"id":"p1","status":"succeeded","output":"%s/images/out.jpg"}`, server.URL)
	}))
	defer server.Close()

	content, err := newTestGenerator(server).Generate(context.Background(), "sunset")
	if err != nil {
		t.Fatal("Generate failed:", err)
	}
	if string(content) != "jpeg-bytes" {
		t.Errorf("content = %q", content)
	}
}

func TestFirstOutputURL(t *testing.T) {
	if _, err := firstOutputURL(nil); err == nil {
		t.Error("expected an error for empty output")
	}
	if _, err := firstOutputURL(json.RawMessage(`null`)); err == nil {
		t.Error("expected an error for null output")
	}
	if _, err := firstOutputURL(json.RawMessage(`[]`)); err == nil {
		t.Error("expected an error for an empty list")
	}
	if url, err := firstOutputURL(json.RawMessage(`["https://a/1.jpg","https://a/2.jpg"]`)); err != nil || url != "https://a/1.jpg" {
		t.Errorf("list shape: url = %q, err = %v", url, err)
	}
	if url, err := firstOutputURL(json.RawMessage(`"https://a/1.jpg"`)); err != nil || url != "https://a/1.jpg" {
		t.Errorf("string shape: url = %q, err = %v", url, err)
	}
}
