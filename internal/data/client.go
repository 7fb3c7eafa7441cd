package data

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"minion-profit/internal/model"

	"github.com/andybalholm/brotli"
)

// APIError represents a non-success answer from a price service.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // For rate limit errors
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap classifies every API error as a fetch failure.
func (e *APIError) Unwrap() error { return model.ErrFetch }

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

type brotliReadCloser struct {
	br *brotli.Reader
	rc io.ReadCloser
}

func (b *brotliReadCloser) Read(p []byte) (int, error) { return b.br.Read(p) }

func (b *brotliReadCloser) Close() error { return b.rc.Close() }

// get performs a GET and returns the decoded body. component prefixes the log lines.
func get(ctx context.Context, client *http.Client, component, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "br, identity")

	log.Printf("[%s] Request: GET %s", component, url)
	start := time.Now()
	resp, err := client.Do(req)
	duration := time.Since(start)
	if err != nil {
		log.Printf("[%s] Request failed: %v (duration: %v)", component, err, duration)
		return nil, fmt.Errorf("%w: %w", model.ErrFetch, err)
	}
	defer resp.Body.Close()
	log.Printf("[%s] Response: %s (duration: %v)", component, resp.Status, duration)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       "NOT_FOUND",
			Message:    fmt.Sprintf("%s: no data at %s", component, url),
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		log.Printf("[%s] Error: 429 Rate Limit Exceeded - Retry after: %s", component, retryAfter)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("%s returned status %d: %s", component, resp.StatusCode, resp.Status),
		}
	}

	body := resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "br") {
		body = &brotliReadCloser{br: brotli.NewReader(resp.Body), rc: resp.Body}
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", model.ErrFetch, err)
	}
	return raw, nil
}
