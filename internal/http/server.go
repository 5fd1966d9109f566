package http

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/rs/cors"

	"tally/internal/log"
	"tally/internal/middleware/ratelimit"
	"tally/internal/middleware/security"
	"tally/internal/middleware/trace"
	"tally/internal/services"
	appweb "tally/web"
)

const (
	// requestTimeout bounds the store work of one request.
	requestTimeout = 7 * time.Second
	// transferTimeout bounds imports and exports.
	transferTimeout = 25 * time.Second
)

// Services bundles what the handlers call into.
type Services struct {
	Users       *services.UserService
	Expenses    *services.ExpenseService
	Categories  *services.CategoryService
	Merge       *services.MergeService
	Settings    *services.SettingsService
	Transfer    *services.TransferService
	Aggregation *services.AggregationService
}

// Options configures a Server.
type Options struct {
	Addr               string
	DefaultUser        string
	DefaultEmail       string
	UserHeader         string
	AllowedOrigins     []string
	RateLimitPerMinute int
	ImportMaxBytes     int64

	// Ready reports whether the store answers. Nil means always ready.
	Ready func(context.Context) error
	// EventsPublished counts events handed to the broker. Nil when no broker is configured.
	EventsPublished func() int64
}

// Server serves the pages, the JSON API and the operational endpoints.
type Server struct {
	http.Server
	opts      Options
	svc       Services
	templates map[string]*template.Template
	logger    *slog.Logger
	now       func() time.Time
	started   time.Time

	securityDetector *security.Detector
	rateLimiter      *ratelimit.Limiter
	traceMiddleware  *trace.Middleware

	shutdownOnce sync.Once
}

// NewServer parses the embedded templates and wires routes and middleware.
func NewServer(opts Options, svc Services) (*Server, error) {
	templates, err := loadTemplates(appweb.TemplatesFS)
	if err != nil {
		return nil, err
	}
	if opts.DefaultUser == "" {
		return nil, errors.New("default user is required")
	}

	detector := security.NewDetector()
	s := &Server{
		opts:             opts,
		svc:              svc,
		templates:        templates,
		logger:           slog.Default().With(log.FieldComponent, log.ComponentHTTP),
		now:              time.Now,
		started:          time.Now(),
		securityDetector: detector,
		rateLimiter:      ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		traceMiddleware:  trace.NewMiddleware(detector.ExtractClientIP),
	}

	mux := http.NewServeMux()
	s.routes(mux)

	limit := s.rateLimiter.Middleware(detector.ExtractClientIP, ratelimit.Mutating, s.onRateLimit)
	var handler http.Handler = mux
	handler = limit(handler)
	handler = detector.Middleware(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = s.traceMiddleware.Middleware(handler)

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10,
	}
	return s, nil
}

func (s *Server) routes(mux *http.ServeMux) {
	// Operations, no user resolution
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	page := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, s.withUser(h))
	}

	page("GET /{$}", s.handleDashboard)
	page("POST /sample-data", s.handleSampleData)

	page("GET /expenses", s.handleExpenseList)
	page("GET /expenses/new", s.handleExpenseNewForm)
	page("POST /expenses/new", s.handleExpenseCreate)
	page("GET /expenses/{id}/edit", s.handleExpenseEditForm)
	page("POST /expenses/{id}/edit", s.handleExpenseUpdate)
	page("POST /expenses/{id}/delete", s.handleExpenseDelete)
	page("DELETE /expenses/{id}/delete", s.handleExpenseDelete)
	page("POST /expenses/delete-all", s.handleExpenseDeleteAll)
	page("GET /expenses/import", s.handleImportForm)
	page("POST /expenses/import", s.handleImport)
	page("GET /expenses/export", s.handleExport)

	page("GET /categories", s.handleCategoryList)
	page("GET /categories/new", s.handleCategoryNewForm)
	page("POST /categories/new", s.handleCategoryCreate)
	page("GET /categories/{id}/edit", s.handleCategoryEditForm)
	page("POST /categories/{id}/edit", s.handleCategoryUpdate)
	page("POST /categories/{id}/delete", s.handleCategoryDelete)
	page("GET /categories/merge", s.handleCategoryMergeForm)
	page("POST /categories/merge", s.handleCategoryMerge)
	page("POST /categories/{id}/subcategories", s.handleSubcategoryCreate)
	page("GET /categories/{id}/subcategories/merge", s.handleSubcategoryMergeForm)
	page("POST /categories/{id}/subcategories/merge", s.handleSubcategoryMerge)
	page("GET /categories/{id}/subcategories.json", s.handleSubcategoriesJSON)
	page("GET /subcategories/{id}/edit", s.handleSubcategoryEditForm)
	page("POST /subcategories/{id}/edit", s.handleSubcategoryUpdate)
	page("POST /subcategories/{id}/delete", s.handleSubcategoryDelete)

	page("GET /settings", s.handleSettingsForm)
	page("POST /settings", s.handleSettingsUpdate)
	page("POST /settings/reset", s.handleSettingsReset)

	page("GET /charts/categories.png", s.handleCategoryChart)
	page("GET /charts/trend.png", s.handleTrendChart)

	// The JSON API is registered without a method so CORS preflights reach it.
	api := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, s.withCORS(s.withUser(h)))
	}
	api("/api/dashboard/stats", s.handleAPIDashboardStats)
	api("/api/expenses/custom-range", s.handleAPICustomRange)
	api("/api/expenses/monthly-trend", s.handleAPIMonthlyTrend)
	api("/api/expenses/category-comparison", s.handleAPICategoryComparison)
}

// withCORS allows the configured origins to read the JSON API. Without any
// configured origin the API stays same-origin.
func (s *Server) withCORS(next http.Handler) http.Handler {
	if len(s.opts.AllowedOrigins) == 0 {
		return next
	}
	return cors.New(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet},
		AllowedHeaders: []string{"Accept", "Content-Type", s.opts.UserHeader},
		MaxAge:         600,
	}).Handler(next)
}

func (s *Server) onRateLimit(w http.ResponseWriter, r *http.Request) {
	s.logger.WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, s.securityDetector.ExtractClientIP(r),
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)
	ErrorResponse(http.StatusTooManyRequests, "Too many requests. Please try again later.").Write(w)
}

// requestContext bounds store work for the request.
func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}

// Shutdown stops the rate limiter and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		if err := s.Server.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("shutdown http server: %w", err)
		}
	})
	return shutdownErr
}
