// Package gateway holds the REST clients for the storefront backend. Every
// client speaks JSON, unwraps the backend's response envelope, sends the
// session token when one exists, and maps authorization failures onto
// models.ErrAuthenticationFailed so callers can branch with errors.Is.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pharmakit/storefront/internal/config"
	"github.com/pharmakit/storefront/internal/models"
	"github.com/pharmakit/storefront/internal/repo/sessionstore"
	"github.com/pharmakit/storefront/pkg/util"
)

// Client is the shared transport under all gateway clients.
type Client struct {
	http    *resty.Client
	session sessionstore.Store
	metrics *prometheus.HistogramVec
}

func NewClient(cfg *config.Config, session sessionstore.Store) (*Client, error) {
	metrics, err := util.GetHistogramVec("storefront_gateway_requests", "gateway", "op", "status")
	if err != nil {
		return nil, err
	}

	httpClient := util.NewRestyClient(cfg.API.Timeout, cfg.API.RetryCount).
		SetBaseURL(cfg.API.BaseURL).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:    httpClient,
		session: session,
		metrics: metrics,
	}, nil
}

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	r := c.http.R().SetContext(ctx)
	// The backend expects the raw token in a "token" header, not a bearer
	// Authorization header.
	if token, ok := c.session.Get(sessionstore.KeyToken); ok && token != "" {
		r.SetHeader("token", token)
	}
	return r
}

func (c *Client) observe(gatewayName, op, status string, start time.Time) {
	c.metrics.WithLabelValues(gatewayName, op, status).Observe(time.Since(start).Seconds())
}

// execute runs the request and decodes the envelope into out. A nil out
// skips decoding (endpoints whose data the caller ignores).
func execute[T any](ctx context.Context, c *Client, gatewayName, op, method, path string, build func(*resty.Request) *resty.Request) (T, error) {
	var zero T
	start := time.Now()

	req := c.newRequest(ctx)
	if build != nil {
		req = build(req)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.observe(gatewayName, op, "transport_error", start)
		return zero, models.NewGatewayError(gatewayName, op, "request failed", err)
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized:
		c.observe(gatewayName, op, "auth_error", start)
		log.Warnw(ctx, "gateway call rejected, session invalid",
			"gateway", gatewayName, "op", op)
		return zero, models.NewGatewayError(gatewayName, op, "authorization rejected", models.ErrAuthenticationFailed)
	case resp.StatusCode() == http.StatusNotFound:
		c.observe(gatewayName, op, "not_found", start)
		return zero, models.NewGatewayError(gatewayName, op, "resource missing", models.ErrNotFound)
	case resp.StatusCode() >= http.StatusBadRequest:
		c.observe(gatewayName, op, "http_error", start)
		return zero, models.NewGatewayError(gatewayName, op,
			fmt.Sprintf("backend returned status %d", resp.StatusCode()), nil)
	}

	var envelope models.Envelope[T]
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		c.observe(gatewayName, op, "decode_error", start)
		return zero, models.NewGatewayError(gatewayName, op, "decode response", err)
	}
	if !envelope.Status {
		c.observe(gatewayName, op, "rejected", start)
		return zero, models.NewGatewayError(gatewayName, op, envelope.Message, nil)
	}

	c.observe(gatewayName, op, "ok", start)
	return envelope.Data, nil
}
