package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/metar-board/internal/domain"
	"github.com/sony/gobreaker"
)

// backoffConfig controls retry behaviour within a single fetch. Retries stay
// well inside one poll interval so a slow backend cannot pile up requests.
type backoffConfig struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
}

// get performs a GET through the circuit breaker with bounded retries and
// exponential backoff. Transport errors, 429s, and 5xx responses are retried;
// other non-2xx responses fail immediately with an HTTPError.
func (c *Client) get(ctx context.Context, fullURL string) ([]byte, error) {
	var attempt int
	var lastErr error

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, err := c.getOnce(ctx, fullURL)
		if err == nil {
			return body, nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("circuit breaker open: %w", err)
		}

		lastErr = err
		if !retryable(err) || attempt >= c.backoff.maxRetries {
			return nil, lastErr
		}

		delay := c.backoff.initialInterval << attempt
		if c.backoff.maxInterval > 0 && delay > c.backoff.maxInterval {
			delay = c.backoff.maxInterval
		}
		if !sleepWithContext(ctx, delay) {
			return nil, ctx.Err()
		}
		attempt++
	}
}

func (c *Client) getOnce(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	result, err := c.breaker.Execute(func() (any, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &domain.HTTPError{
				Status: resp.StatusCode,
				Body:   strings.TrimSpace(string(body)),
			}
		}
		return body, nil
	})
	if err != nil {
		return nil, err
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, errors.New("unexpected result type from circuit breaker")
	}
	return body, nil
}

// retryable reports whether a failed attempt is worth repeating: transient
// transport errors, rate limiting, and server-side failures.
func retryable(err error) bool {
	var httpErr *domain.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status == http.StatusTooManyRequests || httpErr.Status >= 500
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
