package httptransport

import "github.com/gin-gonic/gin"

// Detail is the error payload shape every failing endpoint returns. No stack
// traces, just a human-readable reason.
type Detail struct {
	Detail string `json:"detail"`
}

// RespondDetail writes a JSON error body with the given status.
func RespondDetail(c *gin.Context, httpStatus int, detail string) {
	c.AbortWithStatusJSON(httpStatus, Detail{Detail: detail})
}
