package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/waylog/waylog/internal/dbpool"
	"github.com/waylog/waylog/internal/middleware"
	"github.com/waylog/waylog/internal/security"
	"github.com/waylog/waylog/internal/ws"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	Pool        *dbpool.Pool
	Hub         *ws.Hub
	Backup      BackupRepository
	Trips       TripRepository
	Tags        TagRepository
	Companions  CompanionRepository
	Users       UserRepository
	UserLookup  middleware.UserLookup
	CORSOrigins []string
	Version     string
}

// Router-level limits. Backup documents carry full photo and journal
// metadata, so the body cap is generous compared to CRUD payloads.
const (
	maxBodySize = 25 << 20 // 25 MB
	rateLimit   = 100      // requests per second per IP
	rateBurst   = 200      // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Pool, deps.Hub, log, deps.Version)
	backup := NewBackupHandler(deps.Backup, log)
	trips := NewTripHandler(deps.Trips, log)
	tags := NewTagHandler(deps.Tags, log)
	companions := NewCompanionHandler(deps.Companions, log)
	users := NewUserHandler(deps.Users, log)
	stats := NewStatsHandler(deps.Pool, log)

	// Health and readiness are unauthenticated.
	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// All other API routes require authentication.
	bfGuard := security.NewBruteForceGuard(ctx, log)
	api.Use(middleware.BruteForceMiddleware(bfGuard))
	api.Use(middleware.AuthMiddleware(middleware.NewCachedUserLookup(ctx, deps.UserLookup), log, bfGuard))

	// Backup and restore.
	api.POST("/backup/create", backup.Create)
	api.POST("/backup/restore", backup.Restore)
	api.GET("/backup/info", backup.Info)

	// Trips.
	api.GET("/trips", trips.List)
	api.POST("/trips", trips.Create)
	api.GET("/trips/:id", trips.Get)
	api.PUT("/trips/:id", trips.Update)
	api.DELETE("/trips/:id", trips.Delete)

	// Tags.
	api.GET("/tags", tags.List)
	api.POST("/tags", tags.Create)
	api.DELETE("/tags/:id", tags.Delete)

	// Companions.
	api.GET("/companions", companions.List)
	api.POST("/companions", companions.Create)
	api.DELETE("/companions/:id", companions.Delete)

	// Account.
	api.GET("/user", users.Get)
	api.PUT("/user/integrations", users.UpdateIntegrations)

	// Stats.
	api.GET("/stats", stats.GetStats)

	// WebSocket endpoint.
	api.GET("/ws", wsHandler(ctx, log, deps.Hub, deps.CORSOrigins, deps.UserLookup))
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	return r
}
