package httpapi

import (
	"errors"
	"net/http"

	"argynix-connect/internal/domain"
	"argynix-connect/internal/service"
	"argynix-connect/internal/store"

	"github.com/gin-gonic/gin"
)

func (r *Router) RegisterJobRoutes(g *gin.RouterGroup) {
	g.GET("/jobs", func(c *gin.Context) {
		page, err := clientFrom(c).GetJobs(c.Request.Context(), pageLink(c))
		r.respond(c, page, err)
	})
	// latest is the background poller snapshot; null until the first poll.
	g.GET("/jobs/latest", func(c *gin.Context) {
		snap, err := service.LatestJobs(c.Request.Context(), r.svc.Snapshots)
		if errors.Is(err, store.ErrMiss) {
			c.JSON(http.StatusOK, Ok[any](nil))
			return
		}
		r.respond(c, snap, err)
	})
	// every poller snapshot at once, keyed by poller name.
	g.GET("/poll/latest", func(c *gin.Context) {
		snaps, err := service.LatestSnapshots(c.Request.Context(), r.svc.Snapshots)
		r.respond(c, snaps, err)
	})
	g.POST("/jobs/:id/cancel", func(c *gin.Context) {
		r.done(c, clientFrom(c).CancelJob(c.Request.Context(), c.Param("id")))
	})
	g.POST("/jobs/:id/reprocess", func(c *gin.Context) {
		r.done(c, clientFrom(c).ReprocessJob(c.Request.Context(), c.Param("id")))
	})
	g.DELETE("/jobs/:id", func(c *gin.Context) {
		r.done(c, clientFrom(c).DeleteJob(c.Request.Context(), c.Param("id")))
	})
}

func (r *Router) RegisterNotificationRoutes(g *gin.RouterGroup) {
	g.GET("/notifications", func(c *gin.Context) {
		page, err := clientFrom(c).GetNotifications(c.Request.Context(), pageLink(c), c.Query("unreadOnly") == "true")
		r.respond(c, page, err)
	})
	g.GET("/notifications/unread/count", func(c *gin.Context) {
		n, err := clientFrom(c).GetUnreadNotificationsCount(c.Request.Context())
		r.respond(c, n, err)
	})
	g.GET("/notifications/latest", func(c *gin.Context) {
		snap, err := service.LatestNotifications(c.Request.Context(), r.svc.Snapshots)
		if errors.Is(err, store.ErrMiss) {
			c.JSON(http.StatusOK, Ok[any](nil))
			return
		}
		r.respond(c, snap, err)
	})
	g.PUT("/notifications/read", func(c *gin.Context) {
		r.done(c, clientFrom(c).MarkAllNotificationsRead(c.Request.Context()))
	})
	g.PUT("/notifications/:id/read", func(c *gin.Context) {
		r.done(c, clientFrom(c).MarkNotificationRead(c.Request.Context(), c.Param("id")))
	})
	g.DELETE("/notifications/:id", func(c *gin.Context) {
		r.done(c, clientFrom(c).DeleteNotification(c.Request.Context(), c.Param("id")))
	})

	g.GET("/notification-rules", func(c *gin.Context) {
		page, err := clientFrom(c).GetNotificationRules(c.Request.Context(), pageLink(c))
		r.respond(c, page, err)
	})
	g.POST("/notification-rules", func(c *gin.Context) {
		var rule domain.NotificationRule
		if !r.bind(c, &rule, true) {
			return
		}
		saved, err := clientFrom(c).SaveNotificationRule(c.Request.Context(), &rule)
		r.respond(c, saved, err)
	})
	g.DELETE("/notification-rules/:id", func(c *gin.Context) {
		r.done(c, clientFrom(c).DeleteNotificationRule(c.Request.Context(), c.Param("id")))
	})

	g.GET("/notification-templates", func(c *gin.Context) {
		page, err := clientFrom(c).GetNotificationTemplates(c.Request.Context(), pageLink(c), queryList(c, "notificationTypes"))
		r.respond(c, page, err)
	})
	g.POST("/notification-templates", func(c *gin.Context) {
		var tpl domain.NotificationTemplate
		if !r.bind(c, &tpl, true) {
			return
		}
		saved, err := clientFrom(c).SaveNotificationTemplate(c.Request.Context(), &tpl)
		r.respond(c, saved, err)
	})
	g.DELETE("/notification-templates/:id", func(c *gin.Context) {
		r.done(c, clientFrom(c).DeleteNotificationTemplate(c.Request.Context(), c.Param("id")))
	})
}

func (r *Router) RegisterWidgetRoutes(g *gin.RouterGroup) {
	g.GET("/widgets-bundles", func(c *gin.Context) {
		page, err := clientFrom(c).GetWidgetsBundles(c.Request.Context(), pageLink(c))
		r.respond(c, page, err)
	})
	g.GET("/widgets-bundles/:id/types", func(c *gin.Context) {
		page, err := clientFrom(c).GetBundleWidgetTypes(c.Request.Context(), c.Param("id"), pageLink(c))
		r.respond(c, page, err)
	})
	g.DELETE("/widgets-bundles/:id", func(c *gin.Context) {
		r.done(c, clientFrom(c).DeleteWidgetsBundle(c.Request.Context(), c.Param("id")))
	})
	g.GET("/tenant-profiles", func(c *gin.Context) {
		page, err := clientFrom(c).GetTenantProfileInfos(c.Request.Context(), pageLink(c))
		r.respond(c, page, err)
	})
}

func (r *Router) RegisterCalculatedFieldRoutes(g *gin.RouterGroup) {
	g.GET("/calculated-fields/:entityType/:entityId", func(c *gin.Context) {
		page, err := clientFrom(c).GetCalculatedFields(c.Request.Context(), c.Param("entityType"), c.Param("entityId"), pageLink(c))
		r.respond(c, page, err)
	})
	g.POST("/calculated-fields", func(c *gin.Context) {
		var field domain.CalculatedField
		if !r.bind(c, &field, true) {
			return
		}
		saved, err := clientFrom(c).SaveCalculatedField(c.Request.Context(), &field)
		r.respond(c, saved, err)
	})
	g.DELETE("/calculated-fields/:id", func(c *gin.Context) {
		r.done(c, clientFrom(c).DeleteCalculatedField(c.Request.Context(), c.Param("id")))
	})
}

func (r *Router) RegisterSettingsRoutes(g *gin.RouterGroup) {
	g.GET("/settings/security", func(c *gin.Context) {
		s, err := clientFrom(c).GetSecuritySettings(c.Request.Context())
		r.respond(c, s, err)
	})
	g.POST("/settings/security", func(c *gin.Context) {
		var s domain.SecuritySettings
		if !r.bind(c, &s, true) {
			return
		}
		saved, err := clientFrom(c).SaveSecuritySettings(c.Request.Context(), &s)
		r.respond(c, saved, err)
	})
	g.GET("/settings/mail", func(c *gin.Context) {
		s, err := clientFrom(c).GetMailSettings(c.Request.Context())
		r.respond(c, s, err)
	})
	g.POST("/settings/mail", func(c *gin.Context) {
		var s domain.AdminSettings
		if !r.bind(c, &s, false) {
			return
		}
		s.Key = "mail"
		if err := service.ValidateForm(&s); err != nil {
			writeError(c, r.logger, err)
			return
		}
		saved, err := clientFrom(c).SaveMailSettings(c.Request.Context(), &s)
		r.respond(c, saved, err)
	})
}
