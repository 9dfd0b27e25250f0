package httpapi

import (
	"errors"
	"net/http"

	"argynix-connect/internal/domain"
	"argynix-connect/internal/service"
	"argynix-connect/internal/thingsboard"

	"github.com/gin-gonic/gin"
)

func (r *Router) RegisterHomeRoutes(g *gin.RouterGroup) {
	g.GET("/home/stats", func(c *gin.Context) {
		stats, err := r.svc.Stats.DashboardStats(c.Request.Context(), clientFrom(c), customerScope(c))
		r.respond(c, stats, err)
	})
}

func (r *Router) RegisterDeviceRoutes(g *gin.RouterGroup) {
	g.GET("/devices", func(c *gin.Context) {
		ctx, tb := c.Request.Context(), clientFrom(c)
		if cid := customerScope(c); cid != "" {
			page, err := tb.GetCustomerDevices(ctx, cid, pageLink(c), c.Query("type"))
			r.respond(c, page, err)
			return
		}
		page, err := tb.GetTenantDevices(ctx, pageLink(c), c.Query("type"))
		r.respond(c, page, err)
	})
	g.GET("/devices/:id", func(c *gin.Context) {
		dev, err := clientFrom(c).GetDevice(c.Request.Context(), c.Param("id"))
		r.respond(c, dev, err)
	})
	g.GET("/devices/:id/keys", func(c *gin.Context) {
		keys, err := clientFrom(c).GetTimeseriesKeys(c.Request.Context(), domain.EntityTypeDevice, c.Param("id"))
		r.respond(c, keys, err)
	})
	g.POST("/devices", func(c *gin.Context) {
		var dev domain.Device
		if !r.bind(c, &dev, true) {
			return
		}
		saved, err := clientFrom(c).SaveDevice(c.Request.Context(), &dev)
		r.respond(c, saved, err)
	})
	g.DELETE("/devices/:id", func(c *gin.Context) {
		r.done(c, clientFrom(c).DeleteDevice(c.Request.Context(), c.Param("id")))
	})
}

func (r *Router) RegisterAssetRoutes(g *gin.RouterGroup) {
	g.GET("/assets", func(c *gin.Context) {
		ctx, tb := c.Request.Context(), clientFrom(c)
		if cid := customerScope(c); cid != "" {
			page, err := tb.GetCustomerAssets(ctx, cid, pageLink(c), c.Query("type"))
			r.respond(c, page, err)
			return
		}
		page, err := tb.GetTenantAssets(ctx, pageLink(c), c.Query("type"))
		r.respond(c, page, err)
	})
	g.GET("/assets/:id", func(c *gin.Context) {
		asset, err := clientFrom(c).GetAsset(c.Request.Context(), c.Param("id"))
		r.respond(c, asset, err)
	})
	g.POST("/assets", func(c *gin.Context) {
		var asset domain.Asset
		if !r.bind(c, &asset, true) {
			return
		}
		saved, err := clientFrom(c).SaveAsset(c.Request.Context(), &asset)
		r.respond(c, saved, err)
	})
	g.DELETE("/assets/:id", func(c *gin.Context) {
		r.done(c, clientFrom(c).DeleteAsset(c.Request.Context(), c.Param("id")))
	})
}

func (r *Router) RegisterDashboardRoutes(g *gin.RouterGroup) {
	g.GET("/dashboards", func(c *gin.Context) {
		ctx, tb := c.Request.Context(), clientFrom(c)
		if cid := customerScope(c); cid != "" {
			page, err := tb.GetCustomerDashboards(ctx, cid, pageLink(c))
			r.respond(c, page, err)
			return
		}
		page, err := tb.GetTenantDashboards(ctx, pageLink(c))
		r.respond(c, page, err)
	})
	g.DELETE("/dashboards/:id", func(c *gin.Context) {
		r.done(c, clientFrom(c).DeleteDashboard(c.Request.Context(), c.Param("id")))
	})
}

func (r *Router) RegisterAlarmRoutes(g *gin.RouterGroup) {
	g.GET("/alarms", func(c *gin.Context) {
		page, err := clientFrom(c).GetAlarms(c.Request.Context(), thingsboard.AlarmQuery{
			Link:         pageLink(c),
			StatusList:   queryList(c, "statusList"),
			SeverityList: queryList(c, "severityList"),
			TypeList:     queryList(c, "typeList"),
			StartTime:    queryInt64(c, "startTime"),
			EndTime:      queryInt64(c, "endTime"),
		})
		r.respond(c, page, err)
	})
	g.POST("/alarms/:id/ack", func(c *gin.Context) {
		alarm, err := clientFrom(c).AckAlarm(c.Request.Context(), c.Param("id"))
		r.respond(c, alarm, err)
	})
	g.POST("/alarms/:id/clear", func(c *gin.Context) {
		alarm, err := clientFrom(c).ClearAlarm(c.Request.Context(), c.Param("id"))
		r.respond(c, alarm, err)
	})
	g.DELETE("/alarms/:id", func(c *gin.Context) {
		r.done(c, clientFrom(c).DeleteAlarm(c.Request.Context(), c.Param("id")))
	})
}

func (r *Router) RegisterCustomerRoutes(g *gin.RouterGroup) {
	g.GET("/customers", func(c *gin.Context) {
		page, err := clientFrom(c).GetCustomers(c.Request.Context(), pageLink(c))
		r.respond(c, page, err)
	})
	g.GET("/customers/:id", func(c *gin.Context) {
		cust, err := clientFrom(c).GetCustomer(c.Request.Context(), c.Param("id"))
		r.respond(c, cust, err)
	})
	g.POST("/customers", func(c *gin.Context) {
		var cust domain.Customer
		if !r.bind(c, &cust, true) {
			return
		}
		saved, err := clientFrom(c).SaveCustomer(c.Request.Context(), &cust)
		r.respond(c, saved, err)
	})
	g.DELETE("/customers/:id", func(c *gin.Context) {
		r.done(c, clientFrom(c).DeleteCustomer(c.Request.Context(), c.Param("id")))
	})
}

type permissionUpdate struct {
	Value bool `json:"value"`
}

func (r *Router) RegisterUserRoutes(g *gin.RouterGroup) {
	g.GET("/users", func(c *gin.Context) {
		ctx, tb := c.Request.Context(), clientFrom(c)
		if cid := customerScope(c); cid != "" {
			page, err := tb.GetCustomerUsers(ctx, cid, pageLink(c))
			r.respond(c, page, err)
			return
		}
		page, err := tb.GetUsers(ctx, pageLink(c))
		r.respond(c, page, err)
	})
	g.GET("/users/:id", func(c *gin.Context) {
		user, err := clientFrom(c).GetUser(c.Request.Context(), c.Param("id"))
		r.respond(c, user, err)
	})
	g.POST("/users", func(c *gin.Context) {
		var user domain.User
		if !r.bind(c, &user, true) {
			return
		}
		saved, err := clientFrom(c).SaveUser(c.Request.Context(), &user, c.Query("sendActivationMail") == "true")
		r.respond(c, saved, err)
	})
	g.DELETE("/users/:id", func(c *gin.Context) {
		r.done(c, clientFrom(c).DeleteUser(c.Request.Context(), c.Param("id")))
	})
	g.GET("/users/:id/permissions", func(c *gin.Context) {
		flags, err := r.svc.Permissions.Get(c.Request.Context(), clientFrom(c), c.Param("id"))
		r.respond(c, flags, err)
	})
	// PUT answers with the resulting flag set; on failure the unchanged set is
	// returned in result next to the error.
	g.PUT("/users/:id/permissions/:flag", func(c *gin.Context) {
		var body permissionUpdate
		if !r.bind(c, &body, false) {
			return
		}
		ctx, tb, userID := c.Request.Context(), clientFrom(c), c.Param("id")
		current, err := r.svc.Permissions.Get(ctx, tb, userID)
		if err != nil {
			writeError(c, r.logger, err)
			return
		}
		flags, err := r.svc.Permissions.Set(ctx, tb, userID, current, c.Param("flag"), body.Value)
		if err != nil {
			writePermissionError(c, r, flags, err)
			return
		}
		r.respond(c, flags, nil)
	})
}

func writePermissionError(c *gin.Context, r *Router, flags map[string]bool, err error) {
	var formErr *service.FormError
	switch {
	case errors.As(err, &formErr), thingsboard.IsUnauthorized(err):
		writeError(c, r.logger, err)
	case thingsboard.IsPermissionDenied(err):
		res := Denied(err.Error())
		res.Result = map[string]any{"raw": err.Error(), "permissions": flags}
		c.JSON(http.StatusOK, res)
	default:
		c.JSON(http.StatusOK, Result[any]{Code: ResultError, Type: "error", Message: err.Error(), Result: flags})
	}
}

func (r *Router) RegisterAuditRoutes(g *gin.RouterGroup) {
	g.GET("/audit-logs", func(c *gin.Context) {
		page, err := clientFrom(c).GetAuditLogs(c.Request.Context(), pageLink(c),
			queryInt64(c, "startTime"), queryInt64(c, "endTime"), queryList(c, "actionTypes"))
		r.respond(c, page, err)
	})
}
