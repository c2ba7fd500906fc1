package api

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xtding233/pricing-backend/internal/metrics"
	"github.com/xtding233/pricing-backend/internal/pricing"
)

// NewRouter wires the JSON API, health and metrics endpoints.
func NewRouter(engine *pricing.Engine) *mux.Router {
	h := &pricingHandler{engine: engine}

	r := mux.NewRouter()
	r.Use(instrument)

	// v1 routes sit on the root router so a method mismatch answers 405
	const v1 = "/api/v1"
	r.HandleFunc(v1+"/plans", h.listPlans).Methods(http.MethodGet)
	r.HandleFunc(v1+"/models", h.listModels).Methods(http.MethodGet)
	r.HandleFunc(v1+"/options", h.listOptions).Methods(http.MethodGet)
	r.HandleFunc(v1+"/security", h.listSecurity).Methods(http.MethodGet)
	r.HandleFunc(v1+"/features", h.compare).Methods(http.MethodGet)
	r.HandleFunc(v1+"/usage", h.usage).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc(v1+"/licensing", h.licensing).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc(v1+"/recommend", h.recommend).Methods(http.MethodGet, http.MethodPost)

	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

// Server serves the router until its context is cancelled.
type Server struct {
	httpServer *http.Server
}

func NewServer(addr string, engine *pricing.Engine) *Server {
	var h http.Handler = NewRouter(engine)
	h = handlers.CombinedLoggingHandler(glogWriter{}, h)
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           h,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Serve listens on l and blocks until ctx is done, then shuts down.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		glog.Infof("HTTP API listening on %s", l.Addr())
		errCh <- s.httpServer.Serve(l)
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "http serve")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// ListenAndServe is Serve on a fresh TCP listener for the configured address.
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", s.httpServer.Addr)
	}
	return s.Serve(ctx, l)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		metrics.ObserveHTTPRequest(route, strconv.Itoa(rec.status), time.Since(start))
	})
}

// glogWriter sends access log lines to glog at verbosity 1.
type glogWriter struct{}

func (glogWriter) Write(p []byte) (int, error) {
	glog.V(1).Info(string(p))
	return len(p), nil
}
