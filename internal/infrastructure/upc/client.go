package upc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/stocklens/backend/internal/domain"
)

const (
	maxAttempts              = 3
	defaultRequestsPerMinute = 6
	defaultBurst             = 2
	defaultTimeout           = 10 * time.Second
)

// Config holds barcode provider settings
type Config struct {
	APIKey            string
	BaseURL           string
	RequestsPerMinute int
	Burst             int
	Timeout           time.Duration
}

// Client handles communication with a UPCitemdb-compatible lookup API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	backoff     func(attempt int) time.Duration
	logger      *zap.Logger
}

// NewClient creates a new barcode lookup client
func NewClient(config Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	perMinute := config.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = defaultRequestsPerMinute
	}
	burst := config.Burst
	if burst <= 0 {
		burst = defaultBurst
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	// rate.Limit is requests per second
	limiter := rate.NewLimiter(rate.Limit(float64(perMinute)/60), burst)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		apiKey:      config.APIKey,
		baseURL:     strings.TrimSuffix(config.BaseURL, "/"),
		rateLimiter: limiter,
		backoff:     exponentialBackoff,
		logger:      logger.Named("upc_client"),
	}
}

// exponentialBackoff returns 500ms, 1s, 2s... for attempts 1, 2, 3...
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "StockLens/1.0")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("user_key", c.apiKey)
		req.Header.Set("key_type", "3scale")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLookupFailure, err)
	}

	return resp, nil
}

// Lookup resolves a barcode into a scanned record
func (c *Client) Lookup(ctx context.Context, barcode string) (*domain.ScannedRecord, error) {
	if barcode == "" {
		return nil, domain.ErrInvalidRequest
	}

	params := url.Values{}
	params.Add("upc", barcode)
	reqURL := fmt.Sprintf("%s/lookup?%s", c.baseURL, params.Encode())

	log := c.logger.With(zap.String("barcode", barcode))

	// Retry transport errors, 429 and 5xx
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, c.backoff(attempt-1)); err != nil {
				return nil, err
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			log.Warn("rate limiter wait failed", zap.Error(err))
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn("lookup request failed", zap.Int("attempt", attempt), zap.Error(err))
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("%w: reading body: %v", domain.ErrLookupFailure, err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return c.decode(barcode, body)
		case resp.StatusCode == http.StatusNotFound:
			return nil, domain.ErrProductNotFound
		case resp.StatusCode == http.StatusTooManyRequests:
			log.Warn("provider rate limited", zap.Int("attempt", attempt))
			lastErr = fmt.Errorf("%w: provider returned status 429", domain.ErrRateLimited)
		case resp.StatusCode >= 500:
			log.Warn("provider error", zap.Int("attempt", attempt), zap.Int("status", resp.StatusCode))
			lastErr = fmt.Errorf("%w: status %d", domain.ErrLookupFailure, resp.StatusCode)
		default:
			log.Warn("provider rejected request",
				zap.Int("status", resp.StatusCode),
				zap.ByteString("body", body),
			)
			return nil, fmt.Errorf("%w: status %d", domain.ErrLookupFailure, resp.StatusCode)
		}
	}

	log.Error("all lookup attempts failed", zap.Error(lastErr))
	return nil, lastErr
}

// decode parses a successful response body into a scanned record
func (c *Client) decode(barcode string, body []byte) (*domain.ScannedRecord, error) {
	var lookupResp LookupResponse
	if err := json.Unmarshal(body, &lookupResp); err != nil {
		c.logger.Warn("undecodable provider response", zap.String("barcode", barcode), zap.Error(err))
		return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrLookupFailure, err)
	}

	if len(lookupResp.Items) == 0 {
		c.logger.Debug("no items for barcode", zap.String("barcode", barcode))
		return nil, domain.ErrProductNotFound
	}

	c.logger.Debug("barcode resolved",
		zap.String("barcode", barcode),
		zap.Int("items", len(lookupResp.Items)),
	)
	return MapToScannedRecord(barcode, &lookupResp.Items[0]), nil
}

func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
