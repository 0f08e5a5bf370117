package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/rogerio-castellano/inventory-store/docs"
	"github.com/rogerio-castellano/inventory-store/internal/http/handlers"
	mw "github.com/rogerio-castellano/inventory-store/internal/http/middleware"
	rl "github.com/rogerio-castellano/inventory-store/internal/http/rate_limiter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Options struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// Limiter throttles the mutating routes. Nil disables rate limiting.
	Limiter *rl.Limiter
	// TrustProxyHeaders lets X-Forwarded-For and X-Real-IP set the client address
	// the limiter keys on.
	TrustProxyHeaders bool
}

func NewRouter(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	if opts.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(mw.Logger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", handlers.HealthHandler)

	r.Get("/products", handlers.GetProductsHandler)
	r.Get("/products/low-stock", handlers.GetLowStockHandler)
	r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)

	r.Group(func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(mw.RateLimit(opts.Limiter))
		}
		r.Post("/update-stock", handlers.UpdateStockHandler)
		r.Post("/add-product", handlers.AddProductHandler)
		r.Post("/products/import", handlers.ImportProductsHandler)
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return r
}
