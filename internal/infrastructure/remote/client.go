package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/oksasatya/yatter-client/internal/domain"
	"github.com/oksasatya/yatter-client/pkg/validation"
)

const (
	AuthenticationHeader = "Authentication"
	RequestIDHeader      = "X-Request-ID"

	maxErrorBody    = 64 << 10
	maxResponseBody = 8 << 20
)

// Client talks to the Yatter HTTP API rooted at BaseURL + "/v1/".
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *logrus.Logger

	validate *validator.Validate
}

func NewClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		HTTP:     &http.Client{Timeout: timeout},
		Logger:   logger,
		validate: validation.New(),
	}
}

type call struct {
	op          string
	method      string
	path        string
	query       url.Values
	token       string
	body        io.Reader
	contentType string
}

func (c *Client) jsonCall(op, method, path, token string, payload any) (call, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return call{}, &domain.RemoteError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
	}
	return call{op: op, method: method, path: path, token: token, body: strings.NewReader(string(b)), contentType: "application/json"}, nil
}

// do executes cl and decodes a 2xx body into out (when non-nil). Every
// failure is returned as *domain.RemoteError.
func (c *Client) do(ctx context.Context, cl call, out any) error {
	u := c.BaseURL + "/v1/" + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, u, cl.body)
	if err != nil {
		return &domain.RemoteError{Op: cl.op, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	if cl.token != "" {
		req.Header.Set(AuthenticationHeader, cl.token)
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.logCall(cl, 0, start, err)
		return &domain.RemoteError{Op: cl.op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	c.logCall(cl, resp.StatusCode, start, nil)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &domain.RemoteError{Op: cl.op, StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(out); err != nil {
		return &domain.RemoteError{Op: cl.op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if err := c.checkPayload(out); err != nil {
		return &domain.RemoteError{Op: cl.op, StatusCode: resp.StatusCode, Message: "malformed payload", Err: err}
	}
	return nil
}

func (c *Client) checkPayload(v any) error {
	if c.validate == nil {
		return nil
	}
	rv := reflect.Indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Struct:
		return c.validate.Struct(rv.Interface())
	case reflect.Slice:
		return c.validate.Var(rv.Interface(), "dive")
	}
	return nil
}

func (c *Client) logCall(cl call, status int, start time.Time, err error) {
	if c.Logger == nil {
		return
	}
	entry := c.Logger.WithFields(logrus.Fields{
		"op":          cl.op,
		"method":      cl.method,
		"path":        cl.path,
		"status":      status,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Warn("remote call failed")
		return
	}
	entry.Debug("remote call")
}

// errorMessage pulls a human readable message out of an error body.
func errorMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"error", "message", "error.message"} {
			if r := gjson.GetBytes(body, path); r.Exists() && r.Type == gjson.String {
				return r.String()
			}
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200] + "...(truncated)"
	}
	return msg
}
