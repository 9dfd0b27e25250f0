package httpapi

import (
	"fmt"
	"net/http"

	"argynix-connect/internal/repository"
	"argynix-connect/internal/service"

	"github.com/gin-gonic/gin"
)

func (r *Router) RegisterExportRoutes(g *gin.RouterGroup) {
	g.POST("/export", r.exportTelemetry)
	g.GET("/export/history", func(c *gin.Context) {
		list, total, err := r.svc.Exports.History(c.Request.Context(), repository.ExportFilter{
			DeviceID: c.Query("deviceId"),
			Format:   c.Query("format"),
		}, queryInt(c, "page", 1), queryInt(c, "size", 50))
		if err != nil {
			writeError(c, r.logger, err)
			return
		}
		r.respond(c, gin.H{"items": list, "total": total}, nil)
	})
}

// exportTelemetry streams the file; errors, including No Data, come back as
// the JSON envelope.
func (r *Router) exportTelemetry(c *gin.Context) {
	var req service.ExportRequest
	if !r.bind(c, &req, false) {
		return
	}
	file, err := r.svc.Exports.Export(c.Request.Context(), clientFrom(c), req)
	if err != nil {
		writeError(c, r.logger, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
