package middleware

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDCtx    = "requestID"
)

// RequestID tags each request with an id, reusing a well-formed incoming one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDCtx, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Logger writes one access line per request, tagged with the request id.
// Upstream errors attached with c.Error are appended.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		line := fmt.Sprintf("[%s] %s %s %s %d %s",
			c.GetString(requestIDCtx),
			c.Request.Method,
			path,
			c.ClientIP(),
			c.Writer.Status(),
			time.Since(start),
		)
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			line += " errors=" + strings.TrimSpace(errs)
		}
		log.Print(line)
	}
}
