package transport

import (
	"context"
	"errors"
	"time"

	"github.com/angeloszaimis/model-router/internal/endpoint"
)

// ErrStatus marks responses the provider answered with a non-success status.
var ErrStatus = errors.New("provider returned error status")

// probeTimeout bounds health probes; probes are meant to be cheap and fast.
const probeTimeout = 2 * time.Second

// Adapter is the boundary the router core calls through. It performs the
// actual provider I/O; the core only sees a decoded response or an error.
type Adapter interface {
	// Send delivers one inference payload to the endpoint using its
	// configured protocol and timeout, returning the decoded JSON response.
	Send(ctx context.Context, ep *endpoint.Endpoint, payload []byte, metadata map[string]string) (map[string]any, error)

	// Probe performs a lightweight protocol-appropriate health check.
	Probe(ctx context.Context, ep *endpoint.Endpoint) error

	// Close releases the underlying connection pool. Safe to call once,
	// after all in-flight Sends have returned.
	Close() error
}
