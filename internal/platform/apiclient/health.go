package apiclient

import (
	"context"
	"time"
)

// healthProbeBudget bounds the backend connectivity check. The probe is the
// one call that aborts in-flight work instead of waiting out the full client
// timeout.
const healthProbeBudget = 3 * time.Second

// CheckConnection probes the backend /health endpoint. A nil return means
// the backend answered with a 2xx inside the probe budget.
func (c *Client) CheckConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthProbeBudget)
	defer cancel()

	_, err := c.Get(ctx, "/health", WithoutCache())
	return err
}
