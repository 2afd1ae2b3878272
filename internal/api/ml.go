package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// MLClient talks to the price-prediction service. The service is opaque; the
// console only relays its answers. Calls are unauthenticated and carry a much
// longer timeout than the store backend because training is slow.
type MLClient struct {
	baseURL    string
	httpClient *http.Client
}

// MLOption configures an MLClient.
type MLOption func(*MLClient)

// WithMLTimeout sets the transport timeout.
func WithMLTimeout(d time.Duration) MLOption {
	return func(c *MLClient) { c.httpClient.Timeout = d }
}

// WithMLHTTPClient replaces the underlying *http.Client.
func WithMLHTTPClient(hc *http.Client) MLOption {
	return func(c *MLClient) { c.httpClient = hc }
}

// NewML creates an ML-service client.
func NewML(baseURL string, opts ...MLOption) *MLClient {
	c := &MLClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// PredictRequest is the body for POST /api/predict.
type PredictRequest struct {
	Category string `json:"category"`
	Product  string `json:"product"`
	Month    int    `json:"month"`
	Year     int    `json:"year"`
}

// Prediction is the answer to a price prediction.
type Prediction struct {
	PredictedPrice float64 `json:"predicted_price"`
}

// TrainResult reports the outcome of a training run.
type TrainResult struct {
	Status string `json:"status"`
}

func (c *MLClient) do(ctx context.Context, method, path string, body, out any, fallback string) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Status: 0, Message: fallback}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp, fallback)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Train calls GET /api/train.
func (c *MLClient) Train(ctx context.Context) (*TrainResult, error) {
	var out TrainResult
	if err := c.do(ctx, http.MethodGet, "/api/train", nil, &out, "failed to train model"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Predict calls POST /api/predict.
func (c *MLClient) Predict(ctx context.Context, req PredictRequest) (*Prediction, error) {
	var out Prediction
	if err := c.do(ctx, http.MethodPost, "/api/predict", req, &out, "failed to generate prediction"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dashboard calls GET /api/dashboard and relays the payload verbatim.
func (c *MLClient) Dashboard(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, &out, "failed to load dashboard data"); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats calls GET /api/stats and relays the payload verbatim.
func (c *MLClient) Stats(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, &out, "failed to load stats"); err != nil {
		return nil, err
	}
	return out, nil
}
