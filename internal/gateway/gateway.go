// Package gateway serves the two model endpoints, /generate and /convert,
// over HTTP.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/alphabetz/alphabetz/internal/llm"
)

const maxBodyBytes = 1 << 20

// Server holds no per-request state. The provider configuration is read
// on every request so a credential set after start-up is picked up.
type Server struct {
	loadConfig    func() llm.Config
	buildProvider func(ctx context.Context, cfg llm.Config) (llm.Provider, error)
	events        llm.EventRecorder
}

// Option configures a Server.
type Option func(*Server)

// WithConfigLoader replaces llm.ConfigFromEnv.
func WithConfigLoader(f func() llm.Config) Option {
	return func(s *Server) { s.loadConfig = f }
}

// WithProviderBuilder replaces llm.NewProvider.
func WithProviderBuilder(f func(ctx context.Context, cfg llm.Config) (llm.Provider, error)) Option {
	return func(s *Server) { s.buildProvider = f }
}

// WithEvents records every upstream call.
func WithEvents(events llm.EventRecorder) Option {
	return func(s *Server) { s.events = events }
}

func New(opts ...Option) *Server {
	s := &Server{loadConfig: llm.ConfigFromEnv}
	for _, o := range opts {
		o(s)
	}
	if s.buildProvider == nil {
		s.buildProvider = func(ctx context.Context, cfg llm.Config) (llm.Provider, error) {
			return llm.NewProvider(ctx, cfg, s.events)
		}
	}
	return s
}

// Handler returns the routed handler. Endpoints are served both at the
// root and under /api.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(requestLogger)

	for _, r := range []*mux.Router{router, router.PathPrefix("/api").Subrouter()} {
		r.HandleFunc("/generate", s.handleGenerate).Methods(http.MethodPost)
		r.HandleFunc("/convert", s.handleConvert).Methods(http.MethodPost)
		r.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	}

	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed", "")
	})
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found", "")
	})
	return router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("gateway listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// provider builds the upstream provider for one request. ok is false when
// a response has already been written.
func (s *Server) provider(w http.ResponseWriter, r *http.Request, singleAttempt bool) (llm.Provider, bool) {
	cfg := s.loadConfig()
	if singleAttempt {
		cfg = cfg.SingleAttempt()
	}
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			log.Printf("Missing %s", cfg.KeyEnv())
			writeError(w, http.StatusInternalServerError, "Configuration Error: Missing "+cfg.KeyEnv(), "")
			return nil, false
		}
		log.Printf("configuration error: %v", err)
		writeError(w, http.StatusInternalServerError, "Configuration Error", err.Error())
		return nil, false
	}

	p, err := s.buildProvider(r.Context(), cfg)
	if err != nil {
		log.Printf("configuration error: %v", err)
		writeError(w, http.StatusInternalServerError, "Configuration Error", err.Error())
		return nil, false
	}
	return p, true
}

// writeUpstreamError relays throttling as 429 and everything else as 500.
func writeUpstreamError(w http.ResponseWriter, title string, err error) {
	var rl *llm.ErrRateLimit
	if errors.As(err, &rl) {
		if rl.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(max(1, int(rl.RetryAfter.Seconds()))))
		}
		writeError(w, http.StatusTooManyRequests, title, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, title, err.Error())
}

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg, detail string) {
	writeJSON(w, status, errorBody{Error: msg, Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestLogger tags each request with an id and logs it.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(llm.WithRequestID(r.Context(), id)))
		log.Printf("%s %s %s id=%s took=%s", r.Method, r.RequestURI, r.RemoteAddr, id, time.Since(start).Round(time.Millisecond))
	})
}
