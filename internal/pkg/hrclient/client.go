package hrclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/clockin-console/internal/config"
	"github.com/cmlabs-hris/clockin-console/internal/domain/attendance"
	"github.com/codeGROOVE-dev/retry"
)

const monthlyPath = "/attendance/monthly"

// maxBodySize caps a monthly payload; a month is a few kilobytes.
const maxBodySize = 4 << 20

// Client fetches attendance payloads from the upstream HR backend
type Client struct {
	httpClient *http.Client
	baseURL    string
	unitCode   string
	userAgent  string
	attempts   uint
	retryDelay time.Duration
}

// NewClient creates a client from the HR API configuration
func NewClient(cfg config.HRAPIConfig) *Client {
	attempts := cfg.RetryAttempts
	if attempts == 0 {
		attempts = 1
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		unitCode:   cfg.UnitCode,
		userAgent:  cfg.UserAgent,
		attempts:   attempts,
		retryDelay: cfg.RetryDelay,
	}
}

// StatusError is returned when the upstream answers with a non-200 status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HR API returned status %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return attendance.ErrUpstreamUnavailable
}

// FetchMonthly implements attendance.PayloadSource.
func (c *Client) FetchMonthly(ctx context.Context, userID string, year int, month int) ([]byte, error) {
	params := url.Values{}
	params.Set("user_id", userID)
	params.Set("year", strconv.Itoa(year))
	params.Set("month", strconv.Itoa(month))
	if c.unitCode != "" {
		params.Set("unit_code", c.unitCode)
	}
	apiURL := c.baseURL + monthlyPath + "?" + params.Encode()

	var body []byte
	err := retry.Do(
		func() error {
			var doErr error
			body, doErr = c.get(ctx, apiURL)
			return doErr
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.MaxDelay(30*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Debug("Retrying HR API fetch", "attempt", n+1, "user_id", userID, "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("fetching monthly attendance after retries: %w", err)
	}

	return body, nil
}

// get performs one request. Client errors other than 429 are not retried.
func (c *Client) get(ctx context.Context, apiURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, http.NoBody)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", attendance.ErrUpstreamUnavailable, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Debug("Failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(snippet)}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return nil, statusErr
		}
		return nil, retry.Unrecoverable(statusErr)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", attendance.ErrUpstreamUnavailable, err)
	}

	return body, nil
}
