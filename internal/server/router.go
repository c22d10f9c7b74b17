package server

import (
	"net/http"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/terraconstructs/tasklists/internal/middleware"
	"github.com/terraconstructs/tasklists/internal/telemetry"
	listsv1 "github.com/terraconstructs/tasklists/pkg/api/lists/v1"
)

// RouterOptions controls the construction of the HTTP router.
type RouterOptions struct {
	Handler             *ListServiceHandler
	Verifier            middleware.TokenVerifier
	Logger              logrus.FieldLogger
	CORSOptions         *cors.Options
	Middleware          []func(http.Handler) http.Handler
	ConnectInterceptors []connect.Interceptor
	Metrics             *telemetry.RPCMetrics // enables the telemetry interceptor when set
	HealthHandler       http.HandlerFunc
}

// DefaultCORSOptions returns the development CORS policy for browser clients.
func DefaultCORSOptions() cors.Options {
	return cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{
			"Content-Type",
			"Connect-Protocol-Version",
			"Connect-Timeout-Ms",
			"Authorization",
		},
		ExposedHeaders: []string{
			"Connect-Protocol-Version",
			ErrorKindHeader,
		},
		AllowCredentials: true,
		MaxAge:           300,
	}
}

func defaultHealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// NewRouter assembles a chi.Router with shared middleware, CORS policy and
// the list service mounted behind the authn interceptor.
func NewRouter(opts RouterOptions) chi.Router {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)

	corsCfg := DefaultCORSOptions()
	if opts.CORSOptions != nil {
		corsCfg = *opts.CORSOptions
	}
	r.Use(cors.Handler(corsCfg))

	for _, mw := range opts.Middleware {
		if mw != nil {
			r.Use(mw)
		}
	}

	if opts.Handler != nil {
		MountConnectHandlers(r, opts, logger)
	}

	healthHandler := opts.HealthHandler
	if healthHandler == nil {
		healthHandler = defaultHealthHandler
	}
	r.Get("/health", healthHandler)

	return r
}

// NewH2CHandler wraps the router with an h2c server so Connect clients can
// speak HTTP/2 over cleartext.
func NewH2CHandler(opts RouterOptions) http.Handler {
	return h2c.NewHandler(NewRouter(opts), &http2.Server{})
}

// MountConnectHandlers mounts the Connect handlers on r. The authn
// interceptor always runs first.
func MountConnectHandlers(r chi.Router, opts RouterOptions, logger logrus.FieldLogger) {
	interceptors := make([]connect.Interceptor, 0, len(opts.ConnectInterceptors)+2)
	interceptors = append(interceptors, middleware.NewAuthnInterceptor(opts.Verifier, logger))
	if opts.Metrics != nil {
		interceptors = append(interceptors, telemetry.NewInterceptor(opts.Metrics))
	}
	interceptors = append(interceptors, opts.ConnectInterceptors...)

	path, handler := listsv1.NewListServiceHandler(
		opts.Handler,
		connect.WithInterceptors(interceptors...),
	)
	r.Mount(path, handler)
}
