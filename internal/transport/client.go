package transport

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/gorilla/websocket"

	"github.com/angeloszaimis/model-router/internal/endpoint"
)

// Client is the production Adapter. HTTP endpoints are served by a shared
// resty client, WebSocket endpoints by a gorilla dialer. Both reuse one
// process-wide connection pool that lives until Close.
type Client struct {
	http      *resty.Client
	dialer    *websocket.Dialer
	logger    *slog.Logger
	closeOnce sync.Once
}

func NewClient(logger *slog.Logger) *Client {
	httpClient := resty.New().
		SetHeader("User-Agent", "model-router/1.0")

	return &Client{
		http:   httpClient,
		dialer: &websocket.Dialer{},
		logger: logger,
	}
}

// Send dispatches the payload over the endpoint's configured protocol.
func (c *Client) Send(ctx context.Context, ep *endpoint.Endpoint, payload []byte, metadata map[string]string) (map[string]any, error) {
	switch ep.Protocol() {
	case endpoint.ProtocolHTTP:
		return c.sendHTTP(ctx, ep, payload, metadata)
	case endpoint.ProtocolWebSocket:
		return c.sendWebSocket(ctx, ep, payload, metadata)
	default:
		return nil, fmt.Errorf("unsupported protocol for endpoint %q", ep.Name())
	}
}

// Probe performs a lightweight health check against the endpoint.
func (c *Client) Probe(ctx context.Context, ep *endpoint.Endpoint) error {
	switch ep.Protocol() {
	case endpoint.ProtocolHTTP:
		return c.probeHTTP(ctx, ep)
	case endpoint.ProtocolWebSocket:
		return c.probeWebSocket(ctx, ep)
	default:
		return fmt.Errorf("unsupported protocol for endpoint %q", ep.Name())
	}
}

// Close releases idle connections. Idempotent.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.http.GetClient().CloseIdleConnections()
	})
	return nil
}
