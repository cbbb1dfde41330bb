// Package remote talks to the kube-recycle-bin HTTP API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/wcrum/krb-tui/internal/config"
	"github.com/wcrum/krb-tui/internal/domain"
)

const apiPrefix = "/api/v1"

// Client implements domain.RecycleGateway over HTTP. It never retries.
type Client struct {
	http    *http.Client
	baseURL string
	timeout time.Duration
	log     logrus.FieldLogger
}

// Compile-time check that Client implements domain.RecycleGateway.
var _ domain.RecycleGateway = (*Client)(nil)

// NewClient builds a client for cfg. With cfg.KubeService set, requests go
// through the Kubernetes API server service proxy using kubeconfig
// credentials; otherwise they go straight to cfg.URL.
func NewClient(cfg config.ServerConfig, log logrus.FieldLogger) (*Client, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	var (
		httpClient *http.Client
		baseURL    string
		err        error
	)
	if strings.TrimSpace(cfg.KubeService) != "" {
		httpClient, baseURL, err = newKubeProxyTransport(cfg)
	} else {
		httpClient, baseURL, err = newDirectTransport(cfg.URL)
	}
	if err != nil {
		return nil, err
	}

	log.WithField("base", baseURL).Debug("remote client ready")
	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		timeout: cfg.RequestTimeout,
		log:     log,
	}, nil
}

// BaseURL returns the resolved endpoint, for status display.
func (c *Client) BaseURL() string { return c.baseURL }

func newDirectTransport(raw string) (*http.Client, string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return nil, "", &domain.APIError{
			Type:    domain.ErrConfig,
			Message: fmt.Sprintf("invalid server URL %q: %v", raw, err),
			Err:     err,
		}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, "", &domain.APIError{
			Type:    domain.ErrConfig,
			Message: fmt.Sprintf("invalid server URL %q: want http(s)://host[:port]", raw),
		}
	}
	return &http.Client{}, strings.TrimRight(u.String(), "/"), nil
}

// do sends one request and returns the body of a 2xx response. Every failure
// is an *domain.APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in any) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, &domain.APIError{Type: domain.ErrUnknown, Message: err.Error(), Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &domain.APIError{Type: domain.ErrConfig, Message: err.Error(), Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	entry := c.log.WithFields(logrus.Fields{"method": method, "path": path})
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		entry.WithError(err).Warn("request failed")
		return nil, transportError(ctx, err, c.timeout)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		entry.WithError(err).Warn("reading response failed")
		return nil, transportError(ctx, err, c.timeout)
	}

	entry.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, serverError(resp.StatusCode, data)
	}
	return data, nil
}

func transportError(ctx context.Context, err error, timeout time.Duration) error {
	msg := err.Error()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && timeout > 0 {
		msg = fmt.Sprintf("request timed out after %s", timeout)
	}
	return &domain.APIError{Type: domain.ErrTransport, Message: msg, Err: err}
}

// serverError keeps the body verbatim. When the failure came from the API
// server proxy itself, the body is a Status object and its message is used.
func serverError(code int, body []byte) error {
	msg := strings.TrimSpace(string(body))

	var status metav1.Status
	if json.Unmarshal(body, &status) == nil && status.Kind == "Status" && status.Message != "" {
		msg = status.Message
	}
	if msg == "" {
		msg = http.StatusText(code)
	}
	return &domain.APIError{Type: domain.ErrServer, Status: code, Message: msg}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	return decode(data, out)
}

func (c *Client) sendForMessage(ctx context.Context, method, path string, in any) (string, error) {
	data, err := c.do(ctx, method, path, nil, in)
	if err != nil {
		return "", err
	}
	var resp messageResponse
	if err := decode(data, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func decode(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return &domain.APIError{
			Type:    domain.ErrUnknown,
			Message: fmt.Sprintf("unexpected response: %v", err),
			Err:     err,
		}
	}
	return nil
}

func requireName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return &domain.APIError{Type: domain.ErrValidation, Message: kind + " name is required"}
	}
	return nil
}

type messageResponse struct {
	Message string `json:"message"`
}
