package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sagarghai/growth-tools-api/application/ports/outbound"
	"github.com/sagarghai/growth-tools-api/config"
	"github.com/sagarghai/growth-tools-api/domain"
)

type predictionInput struct {
	Prompt       string `json:"prompt"`
	GoFast       bool   `json:"go_fast"`
	Megapixels   string `json:"megapixels"`
	AspectRatio  string `json:"aspect_ratio"`
	OutputFormat string `json:"output_format"`
}

type predictionRequest struct {
	Input predictionInput `json:"input"`
}

type prediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error"`
	URLs   struct {
		Get string `json:"get"`
	} `json:"urls"`
}

type replicateImageGenerator struct {
	ContentFetcher
	logger          outbound.LoggerPort
	replicateConfig *config.ReplicateConfig
}

func NewReplicateImageGenerator(contentFetcher ContentFetcher, replicateConfig *config.ReplicateConfig,
	logger outbound.LoggerPort) outbound.ImageGeneratorPort {
	return &replicateImageGenerator{
		ContentFetcher:  contentFetcher,
		logger:          logger,
		replicateConfig: replicateConfig,
	}
}

// Generate creates a prediction for the prompt, waits for it to reach a
// terminal status and downloads the first output image.
func (r *replicateImageGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	newCtx, cancel := context.WithTimeout(ctx, r.replicateConfig.Timeout)
	defer cancel()

	pred, err := r.createPrediction(newCtx, prompt)
	if err != nil {
		return nil, r.classify(newCtx, "image generation request failed", err)
	}

	pred, err = r.awaitPrediction(newCtx, pred)
	if err != nil {
		return nil, r.classify(newCtx, "image generation did not complete", err)
	}

	imageURL, err := firstOutputURL(pred.Output)
	if err != nil {
		return nil, domain.NewGenerationError("image generation returned no output", string(pred.Output), err)
	}

	imageReq, err := http.NewRequestWithContext(newCtx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, domain.NewGenerationError("failed to build image download request", "", err)
	}

	content, err := r.FetchContent(imageReq)
	if err != nil {
		return nil, r.classify(newCtx, "failed to download generated image", err)
	}

	return content, nil
}

func (r *replicateImageGenerator) createPrediction(ctx context.Context, prompt string) (*prediction, error) {
	reqBody := predictionRequest{
		Input: predictionInput{
			Prompt:       prompt,
			GoFast:       true,
			Megapixels:   "1",
			AspectRatio:  r.replicateConfig.AspectRatio,
			OutputFormat: r.replicateConfig.OutputFormat,
		},
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s/predictions", r.replicateConfig.ApiUrl, r.replicateConfig.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonPayload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+r.replicateConfig.ApiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "wait")

	rawRes, err := r.FetchContent(req)
	if err != nil {
		return nil, err
	}

	var pred prediction
	if err := json.Unmarshal(rawRes, &pred); err != nil {
		return nil, err
	}

	return &pred, nil
}

func (r *replicateImageGenerator) awaitPrediction(ctx context.Context, pred *prediction) (*prediction, error) {
	for {
		switch pred.Status {
		case "succeeded":
			return pred, nil
		case "failed", "canceled":
			return nil, fmt.Errorf("prediction %s %s: %s", pred.ID, pred.Status, pred.Error)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.replicateConfig.PollInterval):
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pred.URLs.Get, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+r.replicateConfig.ApiToken)

		rawRes, err := r.FetchContent(req)
		if err != nil {
			return nil, err
		}

		var next prediction
		if err := json.Unmarshal(rawRes, &next); err != nil {
			return nil, err
		}
		pred = &next
	}
}

func (r *replicateImageGenerator) classify(ctx context.Context, message string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.NewGenerationTimeout(message, err)
	}
	return domain.NewGenerationError(message, err.Error(), err)
}

// firstOutputURL handles both output shapes Replicate returns: a single URL
// string or a list of URL strings.
func firstOutputURL(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", fmt.Errorf("empty prediction output")
	}

	var urls []string
	if err := json.Unmarshal(raw, &urls); err == nil {
		if len(urls) == 0 {
			return "", fmt.Errorf("empty prediction output list")
		}
		return urls[0], nil
	}

	var url string
	if err := json.Unmarshal(raw, &url); err != nil {
		return "", fmt.Errorf("unexpected prediction output shape: %w", err)
	}
	return url, nil
}
