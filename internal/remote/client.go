package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-gateway/internal/models"
	"github.com/noah-isme/classroom-gateway/pkg/config"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
	"github.com/noah-isme/classroom-gateway/pkg/middleware/requestid"
)

const maxErrorBody = 64 * 1024

// Observer receives the outcome of every remote call.
type Observer interface {
	ObserveRemoteCall(operation string, status int, duration time.Duration)
}

// ClassroomClient talks to the remote classroom API on behalf of the caller.
// The caller's bearer token and the request id are forwarded on every call.
// Nothing is retried: a failed call surfaces once.
type ClassroomClient struct {
	baseURL  string
	http     *http.Client
	logger   *zap.Logger
	observer Observer
}

// NewClassroomClient constructs a client for the configured base URL.
func NewClassroomClient(cfg config.ClassroomAPIConfig, httpClient *http.Client, logger *zap.Logger, observer Observer) *ClassroomClient {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomClient{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     httpClient,
		logger:   logger,
		observer: observer,
	}
}

type call struct {
	operation   string
	method      string
	path        string
	body        io.Reader
	contentType string
}

func (c *ClassroomClient) do(ctx context.Context, identity models.Identity, cl call, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, cl.body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build classroom request")
	}
	req.Header.Set("Accept", "application/json")
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	if identity.Token != "" {
		req.Header.Set("Authorization", "Bearer "+identity.Token)
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header(), id)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.observe(cl.operation, 0, elapsed)
		c.logger.Warn("classroom api unreachable",
			zap.String("operation", cl.operation),
			zap.String("path", cl.path),
			zap.Duration("latency", elapsed),
			zap.Error(err),
		)
		return appErrors.Wrap(err, appErrors.ErrFetch.Code, appErrors.ErrFetch.Status, appErrors.ErrFetch.Message)
	}
	defer resp.Body.Close()
	c.observe(cl.operation, resp.StatusCode, elapsed)

	c.logger.Debug("classroom api call",
		zap.String("operation", cl.operation),
		zap.String("method", cl.method),
		zap.String("path", cl.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", elapsed),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		return c.mapError(cl, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrFetch.Code, appErrors.ErrFetch.Status, "invalid response from classroom service")
	}
	return nil
}

func (c *ClassroomClient) observe(operation string, status int, d time.Duration) {
	if c.observer != nil {
		c.observer.ObserveRemoteCall(operation, status, d)
	}
}

// mapError keeps client errors (4xx) with their status and upstream message;
// server errors become a fetch error.
func (c *ClassroomClient) mapError(cl call, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	message := upstreamMessage(body)
	if resp.StatusCode >= http.StatusInternalServerError {
		c.logger.Warn("classroom api failed",
			zap.String("operation", cl.operation),
			zap.Int("status", resp.StatusCode),
			zap.String("message", message),
		)
		return appErrors.Wrap(fmt.Errorf("classroom api %s returned %d", cl.operation, resp.StatusCode),
			appErrors.ErrFetch.Code, appErrors.ErrFetch.Status, appErrors.ErrFetch.Message)
	}
	if message == "" {
		message = strings.ToLower(http.StatusText(resp.StatusCode))
	}
	return appErrors.New(codeForStatus(resp.StatusCode), resp.StatusCode, message)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return appErrors.ErrUnauthorized.Code
	case http.StatusForbidden:
		return appErrors.ErrForbidden.Code
	case http.StatusNotFound:
		return appErrors.ErrNotFound.Code
	case http.StatusConflict:
		return appErrors.ErrConflict.Code
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return appErrors.ErrValidation.Code
	default:
		return "UPSTREAM_REJECTED"
	}
}

func upstreamMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	var text string
	if err := json.Unmarshal(payload.Error, &text); err == nil {
		return text
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload.Error, &nested); err == nil {
		return nested.Message
	}
	return ""
}

// IsFetchError reports whether err is a transport or upstream server failure.
func IsFetchError(err error) bool {
	return errors.Is(err, appErrors.ErrFetch)
}
