package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vkuzmin/visudoc/internal/core/domain"
	"github.com/vkuzmin/visudoc/internal/infrastructure/resilience"
)

// DefaultBaseURL is the hosted inference endpoint.
const DefaultBaseURL = "https://api-inference.huggingface.co"

const (
	DefaultQAModel       = "deepset/roberta-base-squad2"
	DefaultSummaryModel  = "facebook/bart-large-cnn"
	DefaultZeroShotModel = "facebook/bart-large-mnli"
)

// Client talks to hosted dedicated models (extractive QA, abstractive
// summarization, zero-shot classification). Every call runs under the shared
// retry executor; a 503 from the endpoint means the model is still loading
// and is retried with growing backoff.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	exec       *resilience.Executor
}

func New(baseURL, apiKey string, exec *resilience.Executor) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, domain.WrapError(domain.ErrConfiguration, "huggingface client",
			errors.New("api key is not configured"))
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 90 * time.Second},
		exec:       exec,
	}, nil
}

// call posts a payload to a model endpoint under the retry policy and decodes
// the response into out.
func (c *Client) call(ctx context.Context, operation, model string, payload any, out any) error {
	return c.exec.Execute(ctx, operation, func(ctx context.Context) error {
		return c.postJSON(ctx, "/models/"+model, payload, out, operation)
	}, classifyInferenceError)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any, operation string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("huggingface %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &HTTPStatusError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(raw),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}
