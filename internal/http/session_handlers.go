package httpapi

import (
	"argynix-connect/internal/service"

	"github.com/gin-gonic/gin"
)

func (r *Router) RegisterSessionRoutes(g *gin.RouterGroup) {
	g.POST("/session", r.openSession)
	g.GET("/session", r.requireSession, r.currentSession)
	g.DELETE("/session", r.requireSession, r.closeSession)
	g.GET("/session/user", r.requireSession, func(c *gin.Context) {
		user, err := clientFrom(c).GetCurrentUser(c.Request.Context())
		r.respond(c, user, err)
	})
}

type sessionResponse struct {
	SessionID string `json:"sessionId"`
	Header    string `json:"header"`
	Session   any    `json:"session"`
}

func (r *Router) openSession(c *gin.Context) {
	var req service.OpenRequest
	if !r.bind(c, &req, false) {
		return
	}
	sess, err := r.svc.Sessions.Open(c.Request.Context(), req)
	if err != nil {
		r.respond(c, nil, err)
		return
	}
	r.respond(c, sessionResponse{SessionID: sess.ID, Header: SessionHeader, Session: sess.Public()}, nil)
}

func (r *Router) currentSession(c *gin.Context) {
	r.respond(c, sessionFrom(c).Public(), nil)
}

func (r *Router) closeSession(c *gin.Context) {
	r.done(c, r.svc.Sessions.Close(c.Request.Context(), sessionFrom(c).ID))
}
