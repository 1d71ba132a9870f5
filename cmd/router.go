package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angeloszaimis/model-router/internal/handler"
)

func setupRouter(routerHandler *handler.RouterHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/inference", routerHandler.Inference)
	mux.HandleFunc("/health", routerHandler.Health)
	mux.HandleFunc("/metrics", routerHandler.Metrics)
	mux.Handle("/metrics/prometheus", promhttp.Handler())

	return mux
}
