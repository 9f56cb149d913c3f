package checker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"vanityscan/pkg/config"
	errs "vanityscan/pkg/errors"
	"vanityscan/pkg/logger"
)

// maxBodyBytes caps how much of a lookup response is read; the markers we
// classify on appear near the top of the payload.
const maxBodyBytes = 1 << 20

// LookupResponse is the raw result of one lookup request
type LookupResponse struct {
	StatusCode int
	Body       string
}

// LookupClient performs one lookup request for an identifier
type LookupClient interface {
	Lookup(ctx context.Context, identifier string) (*LookupResponse, error)
}

// Client is the HTTP lookup client for the profile endpoint
type Client struct {
	httpClient *http.Client
	baseURL    string
	headers    map[string]string
	logger     logger.Logger
}

// NewClient creates a lookup client from the transport configuration
func NewClient(cfg *config.TransportConfig, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		headers: map[string]string{
			"User-Agent": cfg.UserAgent,
			"Accept":     "text/xml,application/xml;q=0.9,*/*;q=0.8",
		},
		logger: log,
	}
}

// SetHeader sets a custom header for the client
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// Lookup performs one GET against the profile endpoint and returns the
// status code and body. Transport failures come back as typed network
// errors; non-2xx statuses are returned to the caller for classification.
func (c *Client) Lookup(ctx context.Context, identifier string) (*LookupResponse, error) {
	url := ProfileURL(c.baseURL, identifier)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.New(errs.ErrorTypeUnknown, fmt.Sprintf("failed to create request: %v", err), 0)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.logger.DebugWithFields("sending lookup request", map[string]interface{}{
		"identifier": identifier,
		"url":        url,
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.WarnWithFields("lookup request failed", map[string]interface{}{
			"identifier": identifier,
			"error":      err.Error(),
			"duration":   duration,
		})
		return nil, errs.New(errs.ErrorTypeNetwork, fmt.Sprintf("network error: %v", err), 0)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errs.New(errs.ErrorTypeNetwork, fmt.Sprintf("failed to read response body: %v", err), resp.StatusCode)
	}

	c.logger.DebugWithFields("lookup request completed", map[string]interface{}{
		"identifier": identifier,
		"status":     resp.StatusCode,
		"duration":   duration,
	})

	return &LookupResponse{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}, nil
}
