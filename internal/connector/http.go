package connector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gitlab.apk-group.net/siem/backend/qualys-client/config"
	"gitlab.apk-group.net/siem/backend/qualys-client/internal/connector/port"
	"gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/domain"
	"gitlab.apk-group.net/siem/backend/qualys-client/pkg/logger"
)

// maxErrorBody bounds how much of a failed response is read looking for an
// error envelope.
const maxErrorBody = 1 << 20

var ErrMissingHost = errors.New("qualys host is not configured")

type HTTPConnector struct {
	baseURL       string
	username      string
	password      string
	requestedWith string
	settings      port.Settings
	client        *http.Client
}

type HTTPOption func(*HTTPConnector)

// WithHTTPClient replaces the client built from the configured timeout.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(c *HTTPConnector) {
		c.client = client
	}
}

func NewHTTPConnector(cfg config.QualysConfig, opts ...HTTPOption) (*HTTPConnector, error) {
	if cfg.Host == "" {
		return nil, ErrMissingHost
	}

	scheme := "https"
	if cfg.UseHTTP {
		scheme = "http"
	}

	c := &HTTPConnector{
		baseURL:       scheme + "://" + strings.TrimSuffix(cfg.Host, "/"),
		username:      cfg.Username,
		password:      cfg.Password,
		requestedWith: cfg.RequestedWith,
		settings:      port.Settings{MapReportTemplate: cfg.MapReportTemplate},
		client:        &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPConnector) Settings() port.Settings {
	return c.settings
}

func (c *HTTPConnector) Request(ctx context.Context, call string, params port.Params) ([]byte, error) {
	resp, err := c.do(ctx, call, params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Call: call, StatusCode: resp.StatusCode, Err: err}
	}
	return body, nil
}

// Stream returns the response body unread; the caller closes it.
func (c *HTTPConnector) Stream(ctx context.Context, call string, params port.Params) (io.ReadCloser, error) {
	resp, err := c.do(ctx, call, params)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// newRequest builds a v2 POST for calls starting with "/" and a v1 GET
// under /msp/ for bare filenames.
func (c *HTTPConnector) newRequest(ctx context.Context, call string, params port.Params) (*http.Request, error) {
	var (
		req *http.Request
		err error
	)
	if strings.HasPrefix(call, "/") {
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+call, strings.NewReader(params.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		target := c.baseURL + "/msp/" + call
		if len(params) > 0 {
			target += "?" + params.Encode()
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	}
	if err != nil {
		return nil, err
	}

	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("X-Requested-With", c.requestedWith)
	return req, nil
}

func (c *HTTPConnector) do(ctx context.Context, call string, params port.Params) (*http.Response, error) {
	req, err := c.newRequest(ctx, call, params)
	if err != nil {
		return nil, &domain.TransportError{Call: call, Err: err}
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	fields := map[string]interface{}{
		"call":        call,
		"action":      params.Action(),
		"method":      req.Method,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		fields["error"] = err.Error()
		logger.WarnContextWithFields(ctx, "Qualys request failed", fields)
		return nil, &domain.TransportError{Call: call, Err: err}
	}
	fields["status"] = resp.StatusCode
	logger.DebugContextWithFields(ctx, "Qualys request completed", fields)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	failure := fmt.Errorf("unexpected response: %s", http.StatusText(resp.StatusCode))
	if readErr != nil {
		failure = fmt.Errorf("unexpected response: %s: reading body: %w", http.StatusText(resp.StatusCode), readErr)
	} else if resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusForbidden {
		if apiErr, ok := domain.IsErrorEnvelope(body); ok {
			logger.WarnContextWithFields(ctx, "Qualys api error", map[string]interface{}{
				"call":    call,
				"code":    apiErr.Code,
				"message": apiErr.Message,
			})
			return nil, apiErr
		}
	}
	return nil, &domain.TransportError{
		Call:       call,
		StatusCode: resp.StatusCode,
		Err:        failure,
	}
}
