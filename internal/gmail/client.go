// Package gmail wraps the Gmail REST API behind a small client whose
// methods speak the domain types the tools and CLI share. It normalizes
// raw API payloads, classifies API errors into kinds, and retries
// transient failures once for idempotent calls.
package gmail

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/jsievers/mailbridge/internal/logging"
	"github.com/jsievers/mailbridge/internal/mailerr"
)

// OperationRecorder receives one entry per Gmail API operation.
// Satisfied by *instrumentation.Metrics.
type OperationRecorder interface {
	RecordGmailOperation(ctx context.Context, operation, status string, duration time.Duration)
}

// Client wraps the Gmail Users service. All calls act on the
// authenticated user ("me").
type Client struct {
	svc     *gmailapi.UsersService
	logger  *slog.Logger
	metrics OperationRecorder
}

// NewClient builds a client on top of an OAuth-injecting HTTP client,
// typically auth.Store.HTTPClient. Extra options let tests point the
// service at a fake endpoint.
func NewClient(ctx context.Context, httpClient *http.Client, logger *slog.Logger, opts ...option.ClientOption) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	all := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := gmailapi.NewService(ctx, all...)
	if err != nil {
		return nil, mailerr.Wrap(mailerr.Auth, "gmail.NewClient", err)
	}
	return &Client{svc: svc.Users, logger: logger}, nil
}

// SetMetrics attaches an operation recorder. Without one, operations
// are logged but not counted, the default for CLI invocations.
func (c *Client) SetMetrics(rec OperationRecorder) {
	c.metrics = rec
}

// recordOp emits the metric entry for one completed API operation.
func (c *Client) recordOp(ctx context.Context, op string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	status := logging.StatusSuccess
	if err != nil {
		status = logging.StatusError
	}
	c.metrics.RecordGmailOperation(ctx, op, status, time.Since(start))
}

// normalizeID strips the synthetic "id_" prefix some MCP clients prepend
// to message and thread ids before echoing them back.
func normalizeID(id string) string {
	return strings.TrimPrefix(id, "id_")
}

// callTimeout bounds a single API operation, retries included. A
// deadline overrun classifies as transient.
const callTimeout = 30 * time.Second

func callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, callTimeout)
}

// withRetry runs an idempotent API call, retrying once after a short
// backoff when the failure is classified transient. Non-idempotent calls
// (send, draft creation, trash) go through their API directly and never
// retry internally.
func withRetry[T any](ctx context.Context, c *Client, op string, call func() (T, error)) (T, error) {
	start := time.Now()
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 250 * time.Millisecond

	result, err := backoff.Retry(ctx, func() (T, error) {
		v, err := call()
		if err != nil {
			classified := classify(op, err)
			if !mailerr.IsRetryable(classified) {
				return v, backoff.Permanent(classified)
			}
			c.logger.Debug("retrying transient API failure",
				logging.Operation(op), logging.Err(classified))
			return v, classified
		}
		return v, nil
	}, backoff.WithBackOff(bo), backoff.WithMaxTries(2))

	c.recordOp(ctx, op, start, err)

	if err != nil {
		c.logger.Warn("API call failed",
			logging.Operation(op),
			logging.Status(logging.StatusError),
			logging.Kind(string(mailerr.KindOf(err))),
			slog.Duration(logging.KeyDuration, time.Since(start)))
		return result, err
	}

	c.logger.Debug("API call completed",
		logging.Operation(op),
		logging.Status(logging.StatusSuccess),
		slog.Duration(logging.KeyDuration, time.Since(start)))
	return result, nil
}
