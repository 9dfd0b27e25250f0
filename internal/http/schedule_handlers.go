package httpapi

import (
	"argynix-connect/internal/domain"
	"argynix-connect/internal/schedule"
	"argynix-connect/internal/service"

	"github.com/gin-gonic/gin"
)

type enabledUpdate struct {
	Enabled bool `json:"enabled"`
}

// scheduleView adds the attribute key, which the stored value leaves out.
type scheduleView struct {
	Key string `json:"key"`
	*schedule.Schedule
}

func viewSchedule(sc *schedule.Schedule) *scheduleView {
	if sc == nil {
		return nil
	}
	return &scheduleView{Key: sc.Key, Schedule: sc}
}

func viewSchedules(list []*schedule.Schedule) []*scheduleView {
	out := make([]*scheduleView, 0, len(list))
	for _, sc := range list {
		out = append(out, viewSchedule(sc))
	}
	return out
}

func (r *Router) RegisterScheduleRoutes(g *gin.RouterGroup) {
	g.GET("/devices/:id/schedules", func(c *gin.Context) {
		list, err := r.svc.Schedules.List(c.Request.Context(), clientFrom(c), c.Param("id"))
		r.respond(c, viewSchedules(list), err)
	})
	g.POST("/devices/:id/schedules", func(c *gin.Context) {
		var sc schedule.Schedule
		if !r.bind(c, &sc, false) {
			return
		}
		created, err := r.svc.Schedules.Create(c.Request.Context(), clientFrom(c), c.Param("id"), &sc)
		r.respond(c, viewSchedule(created), err)
	})
	g.PUT("/devices/:id/schedules/:key", func(c *gin.Context) {
		var sc schedule.Schedule
		if !r.bind(c, &sc, false) {
			return
		}
		updated, err := r.svc.Schedules.Update(c.Request.Context(), clientFrom(c), c.Param("id"), c.Param("key"), &sc)
		r.respond(c, viewSchedule(updated), err)
	})
	g.PATCH("/devices/:id/schedules/:key/enabled", func(c *gin.Context) {
		var body enabledUpdate
		if !r.bind(c, &body, false) {
			return
		}
		sc, err := r.svc.Schedules.SetEnabled(c.Request.Context(), clientFrom(c), c.Param("id"), c.Param("key"), body.Enabled)
		r.respond(c, viewSchedule(sc), err)
	})
	g.DELETE("/devices/:id/schedules/:key", func(c *gin.Context) {
		r.done(c, r.svc.Schedules.Delete(c.Request.Context(), clientFrom(c), c.Param("id"), c.Param("key")))
	})

	g.POST("/devices/:id/rpc", func(c *gin.Context) {
		var cmd service.RPCCommand
		if !r.bind(c, &cmd, false) {
			return
		}
		reply, err := r.svc.RPC.Send(c.Request.Context(), clientFrom(c), c.Param("id"), cmd)
		r.respond(c, reply, err)
	})
}

type attributeWrite struct {
	Values map[string]any `json:"values" validate:"required,min=1"`
}

func (r *Router) RegisterAttributeRoutes(g *gin.RouterGroup) {
	g.GET("/attributes/:entityType/:entityId", func(c *gin.Context) {
		attrs, err := clientFrom(c).GetAttributes(c.Request.Context(), c.Param("entityType"), c.Param("entityId"),
			c.DefaultQuery("scope", domain.ScopeServer), queryList(c, "keys"))
		r.respond(c, attrs, err)
	})
	g.POST("/attributes/:entityType/:entityId", func(c *gin.Context) {
		var body attributeWrite
		if !r.bind(c, &body, true) {
			return
		}
		r.done(c, clientFrom(c).SaveAttributes(c.Request.Context(), c.Param("entityType"), c.Param("entityId"),
			c.DefaultQuery("scope", domain.ScopeServer), body.Values))
	})
	g.DELETE("/attributes/:entityType/:entityId", func(c *gin.Context) {
		r.done(c, clientFrom(c).DeleteAttributes(c.Request.Context(), c.Param("entityType"), c.Param("entityId"),
			c.DefaultQuery("scope", domain.ScopeServer), queryList(c, "keys")))
	})
}
