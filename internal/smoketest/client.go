package smoketest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/mergington/activities/pkg/logger"
	"golang.org/x/time/rate"
)

// Client talks to the activities API. Requests share one token bucket.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a client with the given request timeout. A non-positive
// rps leaves requests unthrottled.
func NewClient(baseURL string, timeout time.Duration, rps float64) *Client {
	limit, burst := rate.Inf, 1
	if rps > 0 {
		limit = rate.Limit(rps)
		burst = max(1, int(rps))
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Health returns nil when GET /healthz answers 200.
func (c *Client) Health(ctx context.Context) error {
	status, _, err := c.do(ctx, http.MethodGet, "/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, status)
	}
	return nil
}

// Activities fetches the full directory.
func (c *Client) Activities(ctx context.Context) (map[string]Activity, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/activities")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: GET /activities returned %d", ErrUnexpectedStatus, status)
	}
	var out map[string]Activity
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}
	return out, nil
}

// Signup posts a signup and returns the status code and raw body.
func (c *Client) Signup(ctx context.Context, activity, email string) (int, []byte, error) {
	return c.do(ctx, http.MethodPost, rosterPath(activity, "signup", email))
}

// Remove deletes a participant and returns the status code and raw body.
func (c *Client) Remove(ctx context.Context, activity, email string) (int, []byte, error) {
	return c.do(ctx, http.MethodDelete, rosterPath(activity, "participants", email))
}

func (c *Client) do(ctx context.Context, method, path string) (int, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, fmt.Errorf("rate limiter: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}

func rosterPath(activity, action, email string) string {
	return "/activities/" + url.PathEscape(activity) + "/" + action + "?email=" + url.QueryEscape(email)
}

// NewEmail returns a unique student address.
func NewEmail() string {
	return "smoke-" + uuid.NewString() + "@" + EmailDomain
}
