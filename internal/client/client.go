package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/plalonde/sensorctl/internal/logger"
	"github.com/plalonde/sensorctl/internal/profile"
	sensorctlerrors "github.com/plalonde/sensorctl/pkg/errors"
)

// Forwarded identity headers attached in replicated deployments.
const (
	headerTenantID     = "X-Forwarded-Tenant-Id"
	headerUserRoles    = "X-Forwarded-User-Roles"
	headerForwardedFor = "X-Forwarded-For"

	forwardedForMarker = "sensorctl"
)

// Payload is the decoded JSON body of a successful response. Callers decode
// it into their own types; the client does not interpret it.
type Payload = json.RawMessage

// Client issues requests against one orchestrator service. It injects tenant
// headers in replicated mode, maps response statuses onto typed resource
// errors, and nothing more: no retries, no caching.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tenant     *profile.Tenant
	log        *logger.Logger
}

// Option customises client construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Timeout policy lives
// in the client supplied here.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithInsecureTLS disables certificate verification. Lab deployments run
// self-signed certificates.
func WithInsecureTLS() Option {
	return func(c *Client) {
		c.httpClient = &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		}
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a client for the given service profile.
func New(p profile.Profile, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{MaxIdleConnsPerHost: 10},
		},
		baseURL: p.BaseURL(),
		tenant:  p.Tenant(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Read issues a GET against the given path.
func (c *Client) Read(ctx context.Context, path string) (Payload, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Mutate issues a state-changing request. body may be nil.
func (c *Client) Mutate(ctx context.Context, method, path string, body any) (Payload, error) {
	return c.do(ctx, method, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (Payload, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, sensorctlerrors.NewResourceError(sensorctlerrors.KindTransportFailure, 0, method, path, fmt.Errorf("encode request body: %w", err))
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, sensorctlerrors.NewResourceError(sensorctlerrors.KindTransportFailure, 0, method, path, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tenant != nil {
		req.Header.Set(headerTenantID, c.tenant.ID)
		req.Header.Set(headerUserRoles, c.tenant.Roles)
		req.Header.Set(headerForwardedFor, forwardedForMarker)
	}

	c.log.WithFields(map[string]any{"method": method, "path": path}).Debug("issuing request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, sensorctlerrors.NewResourceError(sensorctlerrors.KindTransportFailure, 0, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, sensorctlerrors.NewResourceError(sensorctlerrors.KindTransportFailure, 0, method, path, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return Payload(data), nil
	}

	return nil, sensorctlerrors.NewResourceError(classify(resp.StatusCode), resp.StatusCode, method, path, nil)
}

func classify(status int) sensorctlerrors.ResourceErrorKind {
	switch {
	case status == http.StatusNotFound:
		return sensorctlerrors.KindNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return sensorctlerrors.KindUnauthorized
	case status == http.StatusConflict:
		return sensorctlerrors.KindConflict
	default:
		// Remaining client errors carry no dedicated kind; the status field
		// preserves the exact code either way.
		return sensorctlerrors.KindServerError
	}
}
