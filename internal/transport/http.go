package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/angeloszaimis/model-router/internal/endpoint"
)

// sendHTTP POSTs the raw payload to the endpoint. Metadata travels as
// X-Metadata-* headers. Any status >= 400 is a transport failure.
func (c *Client) sendHTTP(ctx context.Context, ep *endpoint.Endpoint, payload []byte, metadata map[string]string) (map[string]any, error) {
	reqCtx, cancel := context.WithTimeout(ctx, ep.Timeout())
	defer cancel()

	req := c.http.R().
		SetContext(reqCtx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(payload)

	for k, v := range metadata {
		req.SetHeader("X-Metadata-"+k, v)
	}

	resp, err := req.Post(ep.URL())
	if err != nil {
		return nil, fmt.Errorf("http request to %s: %w", ep.Name(), err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("%w: %s answered %d", ErrStatus, ep.Name(), resp.StatusCode())
	}

	var decoded map[string]any
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		return nil, fmt.Errorf("decoding response from %s: %w", ep.Name(), err)
	}

	return decoded, nil
}

// probeHTTP issues a HEAD request. Reaching the provider at all counts as
// healthy; the probe does not judge the status code.
func (c *Client) probeHTTP(ctx context.Context, ep *endpoint.Endpoint) error {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, ep.URL(), nil)
	if err != nil {
		return fmt.Errorf("building probe for %s: %w", ep.Name(), err)
	}

	resp, err := c.http.GetClient().Do(req)
	if err != nil {
		return fmt.Errorf("probing %s: %w", ep.Name(), err)
	}
	defer resp.Body.Close()

	return nil
}
