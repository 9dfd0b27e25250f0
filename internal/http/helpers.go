package httpapi

import (
	"net/http"

	"argynix-connect/internal/service"

	"github.com/gin-gonic/gin"
)

func (r *Router) respond(c *gin.Context, v any, err error) {
	if err != nil {
		writeError(c, r.logger, err)
		return
	}
	c.JSON(http.StatusOK, Ok(v))
}

func (r *Router) done(c *gin.Context, err error) {
	r.respond(c, nil, err)
}

// bind decodes the JSON body and, when validated is set, checks its
// validate tags.
func (r *Router) bind(c *gin.Context, v any, validated bool) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusOK, Fail("invalid request body: "+err.Error()))
		return false
	}
	if validated {
		if err := service.ValidateForm(v); err != nil {
			writeError(c, r.logger, err)
			return false
		}
	}
	return true
}
