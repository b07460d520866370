package response

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type Page struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePage reads ?page= and ?limit= with the usual defaults. Bad values fall back silently.
func ParsePage(c *gin.Context) Page {
	p := Page{Page: 1, Limit: DefaultLimit}
	if limit := c.Query("limit"); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil && val > 0 && val <= MaxLimit {
			p.Limit = val
		}
	}
	if page := c.Query("page"); page != "" {
		if val, err := strconv.Atoi(page); err == nil && val > 0 {
			p.Page = val
		}
	}
	p.Offset = (p.Page - 1) * p.Limit
	return p
}

func (p Page) Meta(total int64) gin.H {
	return gin.H{
		"page":        p.Page,
		"limit":       p.Limit,
		"total":       total,
		"total_pages": (int(total) + p.Limit - 1) / p.Limit,
	}
}

// ParamID parses a positive int64 path parameter.
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
