package httpapi

import (
	"strconv"
	"strings"

	"argynix-connect/internal/domain"

	"github.com/gin-gonic/gin"
)

func pageLink(c *gin.Context) domain.PageLink {
	return domain.PageLink{
		PageSize:     queryInt(c, "pageSize", 20),
		Page:         queryInt(c, "page", 0),
		TextSearch:   c.Query("textSearch"),
		SortProperty: c.Query("sortProperty"),
		SortOrder:    strings.ToUpper(c.Query("sortOrder")),
	}
}

func queryInt(c *gin.Context, key string, def int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil {
		return v
	}
	return def
}

func queryInt64(c *gin.Context, key string) int64 {
	v, _ := strconv.ParseInt(c.Query(key), 10, 64)
	return v
}

func queryList(c *gin.Context, key string) []string {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// customerScope is the customer the caller is bound to, if any.
func customerScope(c *gin.Context) string {
	if id := c.Query("customerId"); id != "" {
		return id
	}
	return sessionFrom(c).CustomerID
}
