package httpapi

import (
	"net/http"

	"argynix-connect/internal/service"
	"argynix-connect/internal/store"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services everything the console routes call into.
type Services struct {
	Sessions    *service.SessionService
	Clients     service.ClientFactory
	Exports     *service.ExportService
	Schedules   *service.ScheduleService
	RPC         *service.RPCService
	Permissions *service.PermissionService
	Stats       *service.StatsService
	Snapshots   store.KV
}

type Router struct {
	engine *gin.Engine
	svc    Services
	logger *zap.Logger
}

func NewRouter(svc Services, logger *zap.Logger) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(
		requestid.New(requestid.WithCustomHeaderStrKey("X-Request-ID")),
		accessLog(logger),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			logger.Error("Panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusInternalServerError, Fail("internal error"))
		}),
	)

	r := &Router{engine: engine, svc: svc, logger: logger}
	engine.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, Ok("healthy")) })

	api := engine.Group("/api/v1")
	r.RegisterSessionRoutes(api)

	authed := api.Group("", r.requireSession)
	r.RegisterHomeRoutes(authed)
	r.RegisterDeviceRoutes(authed)
	r.RegisterAssetRoutes(authed)
	r.RegisterDashboardRoutes(authed)
	r.RegisterAlarmRoutes(authed)
	r.RegisterCustomerRoutes(authed)
	r.RegisterUserRoutes(authed)
	r.RegisterAuditRoutes(authed)
	r.RegisterJobRoutes(authed)
	r.RegisterNotificationRoutes(authed)
	r.RegisterWidgetRoutes(authed)
	r.RegisterCalculatedFieldRoutes(authed)
	r.RegisterSettingsRoutes(authed)
	r.RegisterAttributeRoutes(authed)
	r.RegisterExportRoutes(authed)
	r.RegisterScheduleRoutes(authed)
	return r
}

func (r *Router) Handler() http.Handler { return r.engine }
