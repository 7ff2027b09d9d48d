package router

import (
	"github.com/gin-gonic/gin"
	"github.com/timetracker/backend/internal/infrastructure/config"
	"github.com/timetracker/backend/internal/infrastructure/logger"
	"github.com/timetracker/backend/internal/interfaces/http/handler"
	"github.com/timetracker/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers served by the API
type Handlers struct {
	System     *handler.SystemHandler
	Auth       *handler.AuthHandler
	Project    *handler.ProjectHandler
	Timesheet  *handler.TimesheetHandler
	Screenshot *handler.ScreenshotHandler
}

// EngineConfig holds everything needed to build the gin engine
type EngineConfig struct {
	HTTP    config.HTTPConfig
	Tracing middleware.TracingConfig
	Metrics middleware.HTTPMetricsConfig
	JWT     middleware.JWTMiddlewareConfig
	Logger  *zap.Logger
}

// NewEngine builds the gin engine with the middleware stack and all routes.
//
// Middleware order: request ID, recovery, tracing, metrics, request log,
// security headers, CORS, body limit. JWT applies to /api/v1 except the token
// exchange.
func NewEngine(cfg EngineConfig, h Handlers) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(cfg.Tracing))
	metricsCfg := cfg.Metrics
	if metricsCfg.Logger == nil {
		metricsCfg.Logger = log
	}
	engine.Use(middleware.HTTPMetrics(metricsCfg))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFromHTTP(cfg.HTTP)))
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}

	engine.GET("/health", h.System.Health)

	r := NewRouter(engine, WithAPIVersion("v1"))
	jwtCfg := cfg.JWT
	if jwtCfg.Logger == nil {
		jwtCfg.Logger = log
	}
	jwtCfg.SkipPaths = append(jwtCfg.SkipPaths, r.BasePath()+"/auth/token")
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg), middleware.SpanEnricher())

	RegisterAPI(r, h)
	r.Setup()
	return engine
}

// RegisterAPI registers every domain group of the API on r
func RegisterAPI(r *Router, h Handlers) {
	authRoutes := NewDomainGroup("auth", "/auth")
	authRoutes.POST("/token", h.Auth.IssueToken)
	authRoutes.POST("/revoke", h.Auth.Revoke)

	projectRoutes := NewDomainGroup("project", "/projects")
	projectRoutes.GET("", h.Project.ListProjects)
	projectRoutes.GET("/:project/tasks", h.Project.ListTasks)

	timesheetRoutes := NewDomainGroup("timesheet", "/timesheets")
	timesheetRoutes.GET("", h.Timesheet.ListDrafts)
	timesheetRoutes.POST("/finalize", h.Timesheet.Finalize)
	timesheetRoutes.POST("/desktop-payload", h.Timesheet.DesktopPayload)
	timesheetRoutes.GET("/:name", h.Timesheet.Get)
	timesheetRoutes.PUT("/:name/billable", h.Timesheet.SetBillable)

	screenshotRoutes := NewDomainGroup("screenshot", "/screenshots")
	screenshotRoutes.POST("", h.Screenshot.Upload)
	screenshotRoutes.GET("/sessions/:session_id", h.Screenshot.ListSession)
	screenshotRoutes.DELETE("/sessions/:session_id", h.Screenshot.CleanupSession)

	systemRoutes := NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", h.System.GetSystemInfo)

	r.Register(authRoutes).
		Register(projectRoutes).
		Register(timesheetRoutes).
		Register(screenshotRoutes).
		Register(systemRoutes)
}
