package endpoint

import (
	"fmt"
	"time"
)

// Protocol identifies the wire protocol used to reach a backend provider.
type Protocol int

const (
	ProtocolHTTP Protocol = iota
	ProtocolWebSocket
)

func (p Protocol) String() string {
	switch p {
	case ProtocolHTTP:
		return "http"
	case ProtocolWebSocket:
		return "websocket"
	default:
		return "unknown"
	}
}

// ParseProtocol converts a configuration string into a Protocol.
func ParseProtocol(s string) (Protocol, error) {
	switch s {
	case "http":
		return ProtocolHTTP, nil
	case "websocket":
		return ProtocolWebSocket, nil
	default:
		return 0, fmt.Errorf("unsupported endpoint type: %q", s)
	}
}

// Endpoint is an immutable backend provider target. It is created once at
// router construction and identified by its unique name for the life of
// the router.
type Endpoint struct {
	name     string
	url      string
	protocol Protocol
	weight   int
	timeout  time.Duration
}

// New creates an Endpoint record.
func New(name, url string, protocol Protocol, weight int, timeout time.Duration) *Endpoint {
	return &Endpoint{
		name:     name,
		url:      url,
		protocol: protocol,
		weight:   weight,
		timeout:  timeout,
	}
}

// Name returns the unique endpoint name.
func (e *Endpoint) Name() string { return e.name }

// URL returns the provider URL.
func (e *Endpoint) URL() string { return e.url }

// Protocol returns the wire protocol for this endpoint.
func (e *Endpoint) Protocol() Protocol { return e.protocol }

// Weight returns the load balancing weight.
func (e *Endpoint) Weight() int { return e.weight }

// Timeout returns the per-request timeout.
func (e *Endpoint) Timeout() time.Duration { return e.timeout }
