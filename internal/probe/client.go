package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/logger"
)

// Result is the decoded outcome of a signup or cancel call.
type Result struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
	Code    string `json:"code"`
}

// Client talks to the activities API.
type Client struct {
	baseURL string
	http    *http.Client
	stats   *Stats
	verbose bool
	log     logger.Logger
}

// NewClient creates a client for baseURL.
func NewClient(baseURL string, timeout time.Duration, stats *Stats, verbose bool) *Client {
	if stats == nil {
		stats = &Stats{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		stats:   stats,
		verbose: verbose,
		log:     logger.Named("probe-client"),
	}
}

// Health checks that the metrics endpoint answers 200.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, c.baseURL+"/healthz")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: healthz returned %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}

// List fetches every activity.
func (c *Client) List(ctx context.Context) (map[string]model.Activity, error) {
	resp, err := c.do(ctx, http.MethodGet, c.baseURL+"/activities")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: list returned %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	var out map[string]model.Activity
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode activities: %w", ErrRequest, err)
	}
	return out, nil
}

// Signup posts a sign-up and returns the decoded result whatever the status.
func (c *Client) Signup(ctx context.Context, activity, email string) (Result, error) {
	return c.roster(ctx, http.MethodPost, activity, email)
}

// Cancel deletes a sign-up and returns the decoded result whatever the status.
func (c *Client) Cancel(ctx context.Context, activity, email string) (Result, error) {
	return c.roster(ctx, http.MethodDelete, activity, email)
}

func (c *Client) roster(ctx context.Context, method, activity, email string) (Result, error) {
	target := c.baseURL + "/activities/" + url.PathEscape(activity) + "/signup?email=" + url.QueryEscape(email)
	resp, err := c.do(ctx, method, target)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	res := Result{Status: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return res, fmt.Errorf("%w: decode %s response: %w", ErrRequest, method, err)
	}
	if resp.StatusCode != http.StatusOK {
		atomic.AddInt64(&c.stats.Rejections, 1)
	}
	return res, nil
}

func (c *Client) do(ctx context.Context, method, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrRequest, err)
	}
	atomic.AddInt64(&c.stats.Requests, 1)
	if c.verbose {
		c.log.Debug(ctx, "request", logger.String("method", method), logger.String("url", target))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrRequest, method, target, err)
	}
	return resp, nil
}
