// Package server assembles the mock's HTTP server from configuration.
package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"campusmock/internal/activity"
	"campusmock/internal/api"
	"campusmock/internal/config"
	"campusmock/internal/logging"
	"campusmock/internal/metrics"
	"campusmock/internal/middleware"
)

// Server is a built but not yet started mock server.
type Server struct {
	HTTP    *http.Server
	Service *activity.Service
}

type Builder struct {
	cfg    *config.Config
	logger logging.Logger
	now    func() time.Time
}

func NewBuilder(cfg *config.Config, logger logging.Logger) *Builder {
	return &Builder{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the clock used for synced_at and health timestamps.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

func (b *Builder) Build() (*Server, error) {
	if b.cfg.MetricsEnabled() && !strings.HasPrefix(b.cfg.Metrics.Path, "/") {
		return nil, fmt.Errorf("invalid metrics path %q: must start with /", b.cfg.Metrics.Path)
	}

	store := activity.NewMemoryStore(b.cfg.Store.MaxActivities)
	service := activity.NewService(store, b.now)

	handler := api.NewHandler(service, b.logger, api.Options{
		BaseURL:      b.cfg.Server.PublicBaseURL,
		MaxBodyBytes: b.cfg.Server.MaxBodyBytes,
		Now:          b.now,
	})

	r := chi.NewRouter()
	r.Use(chimiddleware.GetHead, middleware.Instrument)
	handler.RegisterRoutes(r)

	if b.cfg.MetricsEnabled() {
		metrics.Init()
		r.Method(http.MethodGet, b.cfg.Metrics.Path, metrics.Handler())
	}

	var appHandler http.Handler = r
	appHandler = middleware.Chain(appHandler,
		chimiddleware.RequestID,
		middleware.RequestLogger(b.logger),
		middleware.Recovery(b.logger),
		middleware.CORS(b.cfg.CORS.AllowedOrigins),
	)

	if b.cfg.Server.H2C {
		appHandler = h2c.NewHandler(appHandler, &http2.Server{})
	}

	return &Server{
		HTTP: &http.Server{
			Addr:         b.cfg.Server.Address,
			Handler:      appHandler,
			ReadTimeout:  b.cfg.Server.ReadTimeout,
			WriteTimeout: b.cfg.Server.WriteTimeout,
			IdleTimeout:  b.cfg.Server.IdleTimeout,
		},
		Service: service,
	}, nil
}
