package v1

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/hrygo/alemeno/ai/core/llm"
	"github.com/hrygo/alemeno/ai/metrics"
	"github.com/hrygo/alemeno/ai/summary"
	"github.com/hrygo/alemeno/internal/profile"
	"github.com/hrygo/alemeno/store"
)

type APIV1Service struct {
	// Domain Services
	ItemService *ItemService
	MLService   *MLService

	// Shared Infra
	Profile *profile.Profile
	Store   *store.Store
	Metrics *metrics.PrometheusExporter
}

// NewAPIV1Service wires the item and ml services. exporter may be nil.
func NewAPIV1Service(profile *profile.Profile, store *store.Store, exporter *metrics.PrometheusExporter) *APIV1Service {
	opts := summary.Options{
		AmbientAPIKey: profile.LLMAPIKey,
		ClientFactory: summary.NewClientFactory(llm.Config{
			Provider: profile.LLMProvider,
			Model:    profile.LLMModel,
			BaseURL:  profile.LLMBaseURL,
			Timeout:  profile.LLMTimeout,
		}),
		Timeout:             time.Duration(profile.LLMTimeout) * time.Second,
		MaxConcurrentRemote: int64(profile.LLMMaxConcurrent),
	}
	if exporter != nil {
		opts.Metrics = exporter
	}

	if profile.IsAIEnabled() {
		slog.Info("Remote summarization enabled",
			"provider", profile.LLMProvider,
			"model", profile.LLMModel,
		)
	} else {
		slog.Info("Remote summarization disabled, no ambient API key configured")
	}

	return &APIV1Service{
		ItemService: &ItemService{Store: store, Metrics: exporter},
		MLService:   &MLService{Summarizer: summary.NewSummarizer(opts)},
		Profile:     profile,
		Store:       store,
		Metrics:     exporter,
	}
}

// RegisterRoutes registers the JSON API with the given Echo instance.
func (s *APIV1Service) RegisterRoutes(echoServer *echo.Echo) {
	apiGroup := echoServer.Group("/api/v1")

	itemGroup := apiGroup.Group("/items")
	// Both the bare and the trailing-slash collection paths are served.
	for _, path := range []string{"", "/"} {
		itemGroup.GET(path, s.ItemService.ListItems)
		itemGroup.POST(path, s.ItemService.CreateItem)
	}
	itemGroup.GET("/:id", s.ItemService.GetItem)
	itemGroup.DELETE("/:id", s.ItemService.DeleteItem)

	mlGroup := apiGroup.Group("/ml")
	var summarizeMiddleware []echo.MiddlewareFunc
	if s.Profile.SummarizeRateLimit > 0 {
		summarizeMiddleware = append(summarizeMiddleware, newRateLimiter(s.Profile.SummarizeRateLimit))
	}
	mlGroup.POST("/summarize", s.MLService.Summarize, summarizeMiddleware...)
}

// newRateLimiter limits each client IP to limit requests per second.
func newRateLimiter(limit float64) echo.MiddlewareFunc {
	burst := int(limit)
	if burst < 1 {
		burst = 1
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(limit),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(_ echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "rate limiter error").SetInternal(err)
		},
		DenyHandler: func(_ echo.Context, _ string, _ error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
		},
	})
}
