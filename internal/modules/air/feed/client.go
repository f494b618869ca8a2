package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Source is one remote CSV feed: a published read-only sheet export.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Client fetches feed payloads. A non-2xx status or transport failure is a
// hard error for that feed; the poll cycle decides whether the other feed can
// still carry the cycle.
type Client struct {
	http *resty.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &Client{http: c}
}

// Fetch downloads one feed's raw CSV body.
func (c *Client) Fetch(ctx context.Context, src Source) (string, error) {
	resp, err := c.http.R().SetContext(ctx).Get(src.URL)
	if err != nil {
		return "", fmt.Errorf("fetch feed %s: %w", src.Name, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("fetch feed %s: unexpected status %d", src.Name, resp.StatusCode())
	}
	// resp.String() trims surrounding whitespace; the parser wants the payload
	// byte-for-byte.
	return string(resp.Body()), nil
}
