package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/juju/errors"
)

const (
	DefaultTimeout = 5 * time.Second

	maxBody = 1 << 20 // 1MB
)

// Client sondea un servicio en marcha (healthcheck de contenedor, smoke tests).
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

// New valida baseURL y arma un Client con timeout.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	baseURL = strings.TrimSpace(baseURL)
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, errors.NotValidf("base url %q", baseURL)
	}
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// Health pide GET /health y espera 200 "ok".
func (c *Client) Health(ctx context.Context) error {
	raw, err := c.get(ctx, "/health", "text/plain")
	if err != nil {
		return err
	}
	if body := strings.TrimSpace(string(raw)); body != "ok" {
		return errors.Errorf("unexpected health body %q", body)
	}
	return nil
}

// GetJSON decodifica la respuesta de path en out (p.ej. GET /zivotinje).
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	raw, err := c.get(ctx, path, "application/json")
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	return errors.Annotate(json.Unmarshal(raw, out), "decoding response")
}

func (c *Client) get(ctx context.Context, path, accept string) ([]byte, error) {
	if c == nil || c.HTTP == nil {
		return nil, errors.New("httpclient: nil client")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, errors.Annotate(err, "new request")
	}
	req.Header.Set("Accept", accept)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, errors.Annotatef(err, "GET %s", path)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	return raw, nil
}
