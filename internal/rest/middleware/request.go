package middleware

import (
	"context"

	"github.com/freshcrate/freshcrate/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDMiddleware attaches a request ID and the calling user to the
// request context. The user header is trusted; authentication happens at
// the gateway in front of this service.
func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)

	if userID := c.GetHeader(types.HeaderUserID); userID != "" {
		ctx = context.WithValue(ctx, types.CtxUserID, userID)
	}

	c.Request = c.Request.WithContext(ctx)
	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}
