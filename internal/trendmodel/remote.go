package trendmodel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/wlplease/dashboard/internal/domain"
)

const (
	remoteTimeout    = 15 * time.Second
	remoteMaxRetries = 3
	remoteRetryDelay = 2 * time.Second
)

// Remote calls an HTTP inference endpoint that scores the feature vector.
type Remote struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
}

// NewRemote creates a client for the configured inference endpoint.
func NewRemote(apiURL, apiKey string) *Remote {
	return &Remote{
		apiURL:     apiURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: remoteTimeout},
		maxRetries: remoteMaxRetries,
		retryDelay: remoteRetryDelay,
	}
}

type inferenceRequest struct {
	Features [4]float64 `json:"features"`
}

type inferenceResponse struct {
	TrendStrength float64 `json:"trend_strength"`
	Error         string  `json:"error,omitempty"`
}

// Estimate sends the features to the inference endpoint with retries.
func (r *Remote) Estimate(ctx context.Context, features Features) (float64, error) {
	var lastErr error
	for attempt := 0; attempt < r.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return 0, errors.Wrap(ctx.Err(), "trend model request cancelled")
			case <-time.After(r.retryDelay):
			}
		}

		strength, err := r.sendRequest(ctx, features)
		if err != nil {
			lastErr = err
			continue
		}

		return strength, nil
	}

	return 0, errors.Wrapf(domain.ErrUpstream, "trend model failed after %d attempts: %v", r.maxRetries, lastErr)
}

func (r *Remote) sendRequest(ctx context.Context, features Features) (float64, error) {
	payload, err := json.Marshal(inferenceRequest{Features: features.Vector()})
	if err != nil {
		return 0, errors.Wrap(err, "failed to marshal inference request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.apiURL, bytes.NewReader(payload))
	if err != nil {
		return 0, errors.Wrap(err, "failed to create inference request")
	}

	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return 0, errors.Wrap(err, "failed to send inference request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read inference response")
	}

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("inference endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed inferenceResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, errors.Wrap(err, "failed to parse inference response")
	}

	if parsed.Error != "" {
		return 0, fmt.Errorf("inference endpoint error: %s", parsed.Error)
	}

	if math.IsNaN(parsed.TrendStrength) || math.IsInf(parsed.TrendStrength, 0) {
		return 0, fmt.Errorf("inference endpoint returned non-finite strength")
	}

	return parsed.TrendStrength, nil
}
