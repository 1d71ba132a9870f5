package handler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/angeloszaimis/model-router/internal/router"
)

// InferenceRequest is the API request body. Data carries the raw inference
// payload base64-encoded so binary inputs survive JSON transport.
type InferenceRequest struct {
	ModelType string            `json:"model_type"`
	Data      string            `json:"data"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// RouterHandler translates the HTTP API onto the router core.
type RouterHandler struct {
	logger *slog.Logger
	router *router.Router
}

func NewRouterHandler(logger *slog.Logger, rt *router.Router) *RouterHandler {
	return &RouterHandler{
		logger: logger,
		router: rt,
	}
}

// Inference handles POST /inference.
func (h *RouterHandler) Inference(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}

	requestID := uuid.NewString()

	var req InferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("malformed inference request",
			slog.String("request_id", requestID),
			slog.Any("err", err))
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		return
	}

	if req.ModelType == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "model_type is required"})
		return
	}

	payload, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "data must be base64-encoded"})
		return
	}

	h.logger.Info("received inference request",
		slog.String("request_id", requestID),
		slog.String("model_type", req.ModelType),
		slog.Int("payload_bytes", len(payload)))

	start := time.Now()
	response, err := h.router.Inference(r.Context(), req.ModelType, payload, req.Metadata)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, router.ErrUnavailable) || errors.Is(err, router.ErrRetriesExhausted) {
			status = http.StatusServiceUnavailable
		}
		h.logger.Warn("inference failed",
			slog.String("request_id", requestID),
			slog.Duration("elapsed", time.Since(start)),
			slog.Any("err", err))
		writeJSON(w, status, map[string]any{"error": err.Error()})
		return
	}

	h.logger.Info("inference completed",
		slog.String("request_id", requestID),
		slog.Duration("elapsed", time.Since(start)))
	writeJSON(w, http.StatusOK, response)
}

// Health handles GET /health: it runs a reconciliation sweep and reports
// every circuit's state and failure count.
func (h *RouterHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.router.HealthCheck(r.Context()))
}

// Metrics handles GET /metrics with the per-endpoint counters as JSON.
func (h *RouterHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.router.Metrics())
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
