package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/angeloszaimis/model-router/internal/endpoint"
)

// wsRequest is the single-message request frame providers expect.
type wsRequest struct {
	Data     string            `json:"data"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// sendWebSocket connects, sends one JSON request frame, and reads one JSON
// response. An abnormal close or any read/write error is a transport failure.
func (c *Client) sendWebSocket(ctx context.Context, ep *endpoint.Endpoint, payload []byte, metadata map[string]string) (map[string]any, error) {
	dialCtx, cancel := context.WithTimeout(ctx, ep.Timeout())
	defer cancel()

	conn, _, err := c.dialer.DialContext(dialCtx, ep.URL(), nil)
	if err != nil {
		return nil, fmt.Errorf("websocket handshake with %s: %w", ep.Name(), err)
	}
	defer conn.Close()

	deadline := time.Now().Add(ep.Timeout())
	if err := conn.SetWriteDeadline(deadline); err != nil {
		return nil, fmt.Errorf("websocket deadline for %s: %w", ep.Name(), err)
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return nil, fmt.Errorf("websocket deadline for %s: %w", ep.Name(), err)
	}

	if err := conn.WriteJSON(wsRequest{Data: string(payload), Metadata: metadata}); err != nil {
		return nil, fmt.Errorf("websocket send to %s: %w", ep.Name(), err)
	}

	var decoded map[string]any
	if err := conn.ReadJSON(&decoded); err != nil {
		return nil, fmt.Errorf("websocket receive from %s: %w", ep.Name(), err)
	}

	return decoded, nil
}

// probeWebSocket checks that a handshake still succeeds, then closes cleanly.
func (c *Client) probeWebSocket(ctx context.Context, ep *endpoint.Endpoint) error {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	conn, _, err := c.dialer.DialContext(probeCtx, ep.URL(), nil)
	if err != nil {
		return fmt.Errorf("probing %s: %w", ep.Name(), err)
	}
	defer conn.Close()

	message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	return conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(probeTimeout))
}
