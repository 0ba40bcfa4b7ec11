package adapters

import (
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/sagarghai/growth-tools-api/application/ports/outbound"
)

type ContentFetcher interface {
	FetchContent(req *http.Request) ([]byte, error)
}

// RetryConfig bounds the backoff applied to retryable upstream failures
// (429, 5xx, network timeouts). Other failures surface immediately.
type RetryConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
	}
}

type contentFetcher struct {
	logger outbound.LoggerPort
	client *http.Client
	config RetryConfig
}

func NewContentFetcher(logger outbound.LoggerPort) ContentFetcher {
	return NewRetryingContentFetcher(logger, &http.Client{}, DefaultRetryConfig())
}

func NewRetryingContentFetcher(logger outbound.LoggerPort, client *http.Client, config RetryConfig) ContentFetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &contentFetcher{
		logger: logger,
		client: client,
		config: config,
	}
}

func (c *contentFetcher) FetchContent(req *http.Request) ([]byte, error) {
	var res *http.Response
	var err error
	delay := c.config.InitialDelay

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			if req.GetBody != nil {
				body, bodyErr := req.GetBody()
				if bodyErr != nil {
					return nil, bodyErr
				}
				req.Body = body
			}

			select {
			case <-time.After(applyJitter(delay)):
			case <-req.Context().Done():
				return nil, req.Context().Err()
			}
			delay = min(time.Duration(float64(delay)*c.config.Multiplier), c.config.MaxDelay)

			c.logger.InfoWithFields("Retrying HTTP request", map[string]interface{}{
				"method":  req.Method,
				"URL":     req.URL.String(),
				"attempt": attempt,
			})
		}

		res, err = c.client.Do(req)
		if !shouldRetry(res, err) || attempt == c.config.MaxRetries {
			// The last response's body stays open so the status handling
			// below can report what the upstream actually said.
			break
		}
		if res != nil {
			_ = res.Body.Close()
		}
	}

	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to send the HTTP request", map[string]interface{}{
			"method": req.Method,
			"URL":    req.URL.String(),
		})
		return nil, err
	}

	defer func(body io.ReadCloser) {
		if closeErr := body.Close(); closeErr != nil {
			c.logger.Error(closeErr, "Failed to close the response body")
		}
	}(res.Body)

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to read the response body", map[string]interface{}{
			"method": req.Method,
			"URL":    req.URL.String(),
		})
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		c.logger.ErrorWithFields(nil, "HTTP request returned non-OK status code", map[string]interface{}{
			"method":  req.Method,
			"URL":     req.URL.String(),
			"status":  res.StatusCode,
			"message": string(payload),
		})
		return nil, fmt.Errorf("HTTP request returned status %d: %s", res.StatusCode, string(payload))
	}

	return payload, nil
}

func shouldRetry(res *http.Response, err error) bool {
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return true
		}
		if _, ok := err.(*net.OpError); ok {
			return true
		}
		if _, ok := err.(*net.DNSError); ok {
			return true
		}
		return false
	}

	if res.StatusCode == http.StatusTooManyRequests {
		return true
	}

	return res.StatusCode >= 500 && res.StatusCode < 600
}

func applyJitter(delay time.Duration) time.Duration {
	jitterFactor := 0.9 + rand.Float64()*0.2
	return time.Duration(float64(delay) * jitterFactor)
}
