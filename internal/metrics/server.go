package metrics

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes /metrics for the scraper.
type Server struct {
	logger *slog.Logger
	addr   string
}

func NewServer(logger *slog.Logger, addr string) *Server {
	return &Server{
		logger: logger,
		addr:   addr,
	}
}

func (s *Server) Listen() error {
	s.logger.Info("Starting metrics server", "addr", s.addr)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	return srv.ListenAndServe()
}
