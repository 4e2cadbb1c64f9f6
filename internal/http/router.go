// Package httpapi assembles the Gin transport: the shared middleware chain,
// the platform endpoints (health, metrics, docs), and the public caddy API.
// All dependencies arrive through RegisterRoutes so the package stays free
// of globals and is cheap to stand up in tests.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tbourn/go-caddy-backend/docs"
	"github.com/tbourn/go-caddy-backend/internal/config"
	"github.com/tbourn/go-caddy-backend/internal/domain"
	"github.com/tbourn/go-caddy-backend/internal/http/handlers"
	"github.com/tbourn/go-caddy-backend/internal/http/middleware"
	"github.com/tbourn/go-caddy-backend/internal/repo"
	"github.com/tbourn/go-caddy-backend/internal/services"
)

// shotRepoShim bridges the repo package's free functions to the ShotRepo
// interface the shot service consumes, keeping services off the concrete
// repo import.
type shotRepoShim struct{}

func (shotRepoShim) AppendShot(ctx context.Context, db *gorm.DB, shot *domain.ShotResult) error {
	return repo.AppendShot(ctx, db, shot)
}

func (shotRepoShim) ListShots(ctx context.Context, db *gorm.DB) ([]domain.ShotResult, error) {
	return repo.ListShots(ctx, db)
}

// RegisterRoutes mounts everything on the engine: the middleware chain,
// health and metrics, the optional Swagger UI, and the public API under
// cfg.APIBasePath. A nil gen is allowed; /smart then folds the missing
// relay into its usual 200 envelope.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, gen services.TextGenerator, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	installMiddleware(r, db, cfg)

	r.GET("/health", healthHandler(db))
	if cfg.SwaggerEnabled {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	h := handlers.New(
		services.NewCaddyService(),
		services.NewShotService(db, shotRepoShim{}),
		services.NewSmartService(gen),
	)
	if cfg.IdempotencyTTL > 0 {
		h.IdempotencyTTL = cfg.IdempotencyTTL
	}

	api := groupWithPrefix(r, cfg.APIBasePath)
	api.GET("", h.Root)
	api.POST("/chat", h.Chat)
	api.POST("/save", h.SaveShot)
	api.POST("/smart", h.Smart)
}

// installMiddleware assembles the shared chain. The order is load-bearing:
// tracing wraps everything, the correlation id exists before the logs that
// quote it, recovery sits under the logger so panics report with context,
// and replay detection runs ahead of the rate limiter so retries are not
// double-charged.
func installMiddleware(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		// Relay credentials travel in X-API-Key.
		MaskHeaders: []string{"X-API-Key"},
	}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(1 << 20)) // 1 MiB is generous for any shot payload
	// promhttp negotiates its own encoding; keep gzip away from /metrics.
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	r.Use(middleware.Metrics())
	// Registered mid-chain so scrapes skip the limiter below.
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200},
		func(ctx context.Context, key string, now time.Time) (bool, error) {
			// A lookup failure reads as a miss; a broken store must not block saves.
			rec, err := repo.GetIdempotency(ctx, db, key, now)
			return err == nil && rec != nil, nil
		},
	))

	limiter := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(limiter.Handler())

	installCORS(r, cfg.CORS.AllowedOrigins)

	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
	}))
}

// installCORS applies the browser posture. With no allowlist the API is wide
// open (ACAO *, no credentials); with one, matching Origins are echoed with
// credentials enabled and a Vary marker for caches.
func installCORS(r *gin.Engine, origins []string) {
	base := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.HeaderIdempotencyKey},
		ExposeHeaders: []string{"X-Request-ID", "Content-Length", "Idempotency-Replayed"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 {
		// Stamp ACAO on every response, Origin header or not, so plain
		// health probes and curl see the open posture too.
		r.Use(func(c *gin.Context) {
			c.Header("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		base.AllowAllOrigins = true
		r.Use(cors.New(base))
		return
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	// Echo ahead of gin-contrib/cors so non-preflight requests carry the
	// header as well.
	r.Use(func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			if _, ok := allowed[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		c.Next()
	})
	base.AllowOrigins = origins
	base.AllowCredentials = true // local dev frontends send cookies
	r.Use(cors.New(base))
}

// healthHandler reports liveness plus shot-log stats. Stats are best effort;
// a failing store never turns health red.
func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"status": "ok"}
		if n, last, err := repo.ShotsStats(c.Request.Context(), db); err == nil {
			body["shots"] = n
			if last != nil {
				body["last_shot_at"] = last.UTC().Format(time.RFC3339Nano)
			}
		}
		c.JSON(http.StatusOK, body)
	}
}

// limitBody caps request bodies at maxBytes so binds fail cleanly instead of
// buffering unbounded input.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts the API group; "" and "/" both mean the root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "/" {
		prefix = ""
	}
	return r.Group(prefix)
}
