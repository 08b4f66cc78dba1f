package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"quality-analyzer/src/ast"
	"quality-analyzer/src/config"
	"quality-analyzer/src/util"
)

// ParseRequest is the body sent to a parser service
type ParseRequest struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	Source   string `json:"source"`
}

// HTTPParser asks a parser service for trees. The response is either the
// tree itself or an object with the tree under "ast".
type HTTPParser struct {
	url        string
	httpClient *http.Client
	retryConf  config.RetryConfig
}

// NewHTTPParser creates a parser service client
func NewHTTPParser(cfg config.ParserConfig) *HTTPParser {
	return &HTTPParser{
		url: cfg.URL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		retryConf: cfg.Retry,
	}
}

// Parse posts the source and decodes the returned tree
func (p *HTTPParser) Parse(ctx context.Context, path string, content []byte) (*ast.Node, error) {
	req := ParseRequest{
		Path:     path,
		Language: util.LanguageFor(path),
		Source:   string(content),
	}

	body, err := p.post(ctx, req)
	if err != nil {
		return nil, deadlineErr(ctx, path, err)
	}

	if tree := gjson.GetBytes(body, "ast"); tree.IsObject() {
		body = []byte(tree.Raw)
	}

	node, err := ast.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return node, nil
}

func (p *HTTPParser) post(ctx context.Context, body any) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= p.retryConf.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := p.calculateBackoff(attempt)
			util.Warn("Retrying parse request (attempt %d/%d) after %v", attempt+1, p.retryConf.MaxAttempts+1, delay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		resp, err := p.doPost(ctx, body)
		if err == nil {
			return resp, nil
		}

		lastErr = err
		if !p.shouldRetry(err) {
			break
		}
	}

	return nil, lastErr
}

func (p *HTTPParser) doPost(ctx context.Context, body any) ([]byte, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

func (p *HTTPParser) calculateBackoff(attempt int) time.Duration {
	delay := float64(p.retryConf.InitialDelay)
	for i := 1; i < attempt; i++ {
		delay *= p.retryConf.BackoffFactor
	}
	if p.retryConf.MaxDelay > 0 && delay > float64(p.retryConf.MaxDelay) {
		delay = float64(p.retryConf.MaxDelay)
	}
	return time.Duration(delay)
}

func (p *HTTPParser) shouldRetry(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		for _, code := range p.retryConf.RetryOnStatus {
			if apiErr.StatusCode == code {
				return true
			}
		}
	}
	return false
}

// APIError represents an error response from the parser service
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("parser service error (status %d): %s", e.StatusCode, e.Body)
}
