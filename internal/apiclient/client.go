// Package apiclient talks to the remote storefront API. It implements the
// repository interfaces so services do not know whether data comes from the
// network or from the in-memory mocks.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"petstore/internal/repositories"
	"petstore/pkg/retry"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrNotFound is wrapped by a StatusError for a 404 response.
var ErrNotFound = repositories.ErrNotFound

// StatusError is returned for a non-2xx response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote API responded %d: %s", e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	if e.Code == fiber.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// Temporary reports whether err may go away on a later attempt: transport
// failures and 5xx responses.
func Temporary(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= 500
	}
	return true
}

// Options configures a Client.
type Options struct {
	BaseURL       string
	Timeout       time.Duration
	RetryAttempts int
	Backoff       retry.Backoff
}

// Client calls the remote API.
type Client struct {
	baseURL string
	timeout time.Duration
	retry   retry.Config
	logger  *zap.Logger
}

// New creates a Client.
func New(opts Options, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		timeout: opts.Timeout,
		retry: retry.Config{
			MaxAttempts: opts.RetryAttempts,
			Backoff:     opts.Backoff,
			ShouldRetry: Temporary,
		},
		logger: logger,
	}
}

func (c *Client) url(query url.Values, segments ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	if len(query) > 0 {
		b.WriteByte('?')
		b.WriteString(query.Encode())
	}
	return b.String()
}

// send runs a single request.
func (c *Client) send(ctx context.Context, a *fiber.Agent) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.Timeout(c.timeout).Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("request failed: %w", errors.Join(errs...))
	}
	if code < http.StatusOK || code >= http.StatusMultipleChoices {
		return nil, &StatusError{Code: code, Message: errorMessage(code, body)}
	}
	return body, nil
}

// get fetches url, retrying temporary failures.
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	start := time.Now()
	attempts := 0
	body, err := retry.DoWithResult(ctx, c.retry, func() ([]byte, error) {
		attempts++
		return c.send(ctx, fiber.Get(u))
	})
	if err != nil {
		c.logger.Warn("remote API request failed",
			zap.String("method", fiber.MethodGet),
			zap.String("url", u),
			zap.Int("attempts", attempts),
			zap.Error(err))
		return nil, err
	}
	c.logger.Debug("remote API request",
		zap.String("method", fiber.MethodGet),
		zap.String("url", u),
		zap.Int("attempts", attempts),
		zap.Duration("latency", time.Since(start)))
	return body, nil
}

// post sends payload as JSON. Posts are never retried.
func (c *Client) post(ctx context.Context, u string, payload any) ([]byte, error) {
	body, err := c.send(ctx, fiber.Post(u).JSON(payload))
	if err != nil {
		c.logger.Warn("remote API request failed",
			zap.String("method", fiber.MethodPost),
			zap.String("url", u),
			zap.Error(err))
		return nil, err
	}
	return body, nil
}

func errorMessage(code int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return http.StatusText(code)
}

// decodeList decodes a JSON array. Any other JSON value yields an empty list.
func decodeList[T any](body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []T{}, nil
	}
	list := []T{}
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return list, nil
}

func getList[T any](ctx context.Context, c *Client, u string) ([]T, error) {
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	return decodeList[T](body)
}
