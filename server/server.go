// Package server serves the cash flow dashboard and its json api.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/bank"
	"github.com/etnz/cashflow/chart"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Options configures a Server.
type Options struct {
	// MaxUpload is the maximum size of an uploaded file, 16 MiB by default.
	MaxUpload int64
	// UploadsPerMinute limits the uploads per client address, 10 by default.
	UploadsPerMinute int
	// Bank configures how uploaded exports are read.
	Bank bank.Options
	// Categorizer, when set, categorizes uploaded transactions.
	Categorizer *cashflow.Categorizer
	Theme       chart.Theme
}

// Server is the dashboard http handler.
type Server struct {
	store   *cashflow.Store
	opts    Options
	log     zerolog.Logger
	metrics *metrics
	router  chi.Router
}

// New returns a server over the transactions of store.
func New(store *cashflow.Store, log zerolog.Logger, opts Options) *Server {
	if opts.MaxUpload <= 0 {
		opts.MaxUpload = 16 << 20
	}
	if opts.UploadsPerMinute <= 0 {
		opts.UploadsPerMinute = 10
	}
	if opts.Theme.Palette == nil {
		opts.Theme = chart.DefaultTheme()
	}
	s := &Server{
		store:   store,
		opts:    opts,
		log:     log,
		metrics: newMetrics(prometheus.NewRegistry()),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(s.metrics.middleware)

	r.Get("/", s.handleDashboard)
	r.Get("/category/{name}", s.handleCategoryPage)
	r.Get("/upload", s.handleUploadPage)
	r.Get("/trends", s.handleTrendsPage)
	r.Get("/report", s.handleReport)
	r.Get("/charts/{name}.png", s.handleChartPNG)
	r.Get("/static/cashflow.js", s.handleScript)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/monthly", s.handlePeriods)
		r.Get("/weekly", s.handlePeriods)
		r.Get("/quarterly", s.handlePeriods)
		r.Get("/yearly", s.handlePeriods)
		r.Get("/categories", s.handleCategories)
		r.Get("/category/{name}/{period}", s.handleCategoryDetail)
		r.Get("/merchants", s.handleMerchants)
		r.Get("/trends", s.handleTrends)
		r.Get("/charts/{name}", s.handleChart)
		r.Get("/upload-history", s.handleUploadHistory)
		r.With(uploadLimit(s.opts.UploadsPerMinute)).Post("/upload", s.handleUpload)
	})
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
// The store is watched for changes made by other processes.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.store.Watch(ctx); err != nil {
			s.log.Warn().Err(err).Msg("cannot watch transactions file")
		}
	}()

	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("dashboard listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// analysis analyzes the stored transactions. It returns cashflow.ErrNoData when
// the store is empty.
func (s *Server) analysis() (*cashflow.Analysis, error) {
	txs, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return cashflow.Analyze(txs)
}
