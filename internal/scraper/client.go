// Package scraper provides a shared HTTP client for the ingestion
// pipeline with retries, exponential backoff and User-Agent rotation.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/corpix/uarand"
	"github.com/klauspost/compress/gzip"

	"github.com/abitbot/abit-advisor-go/internal/config"
	domerrors "github.com/abitbot/abit-advisor-go/internal/errors"
)

// Client is an HTTP client for fetching program pages and documents.
type Client struct {
	httpClient *http.Client
	maxRetries int
}

// NewClient creates a new scraper client.
func NewClient(timeout time.Duration, maxRetries int) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		maxRetries: maxRetries,
	}
}

// Get performs a GET request with retries.
// Caller is responsible for closing the response body.
func (c *Client) Get(ctx context.Context, url string, accept string) (*http.Response, error) {
	var resp *http.Response
	var lastErr error

	err := RetryWithBackoff(ctx, c.maxRetries, config.ScraperRetryInitial, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("User-Agent", uarand.GetRandom())
		if accept != "" {
			req.Header.Set("Accept", accept)
		}
		req.Header.Set("Accept-Encoding", "gzip")

		resp, err = c.httpClient.Do(req)
		if err != nil {
			lastErr = domerrors.NewFetchError(url, 0, err)
			return lastErr
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			// Close body for non-success responses since we won't return it
			_ = resp.Body.Close()

			fetchErr := domerrors.NewFetchError(url, resp.StatusCode, fmt.Errorf("unexpected status"))
			switch resp.StatusCode {
			case http.StatusTooManyRequests,
				http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
				lastErr = fetchErr
				return lastErr // retried with backoff
			default:
				// Client errors are not transient; stop retrying.
				return permanent(fetchErr)
			}
		}

		// Success - caller must close response body
		return nil
	})

	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetBytes performs a GET request and returns the full decoded body along
// with the response headers.
func (c *Client) GetBytes(ctx context.Context, url string, accept string) ([]byte, http.Header, error) {
	resp, err := c.Get(ctx, url, accept)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	reader, err := decodeBody(resp)
	if err != nil {
		return nil, nil, domerrors.NewFetchError(url, resp.StatusCode, err)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, domerrors.NewFetchError(url, resp.StatusCode, fmt.Errorf("read body: %w", err))
	}
	return body, resp.Header, nil
}

// GetDocument performs a GET request and parses the response as HTML.
func (c *Client) GetDocument(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := c.Get(ctx, url, "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	reader, err := decodeBody(resp)
	if err != nil {
		return nil, domerrors.NewFetchError(url, resp.StatusCode, err)
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// decodeBody returns a reader over the response body, transparently
// handling gzip content encoding.
func decodeBody(resp *http.Response) (io.Reader, error) {
	if resp.Header.Get("Content-Encoding") != "gzip" {
		return resp.Body, nil
	}
	gzipReader, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress gzip: %w", err)
	}
	return gzipReader, nil
}
