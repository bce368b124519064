package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dchirkov/eventum/utils"
)

// RequestID tags every request with a unique id, echoed in the response
// header and attached to access-log lines.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		rid := ctx.GetHeader(utils.RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		ctx.Writer.Header().Set(utils.RequestIDHeader, rid)
		ctx.Next()
	}
}
