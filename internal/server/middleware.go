package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization"
)

// CORSMiddleware reflects the request's Origin rather than keeping an
// allow-list, and answers preflights directly without routing them.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if c.Request.Method == http.MethodOptions && origin != "" {
			writeCORSHeaders(c, origin)
			c.AbortWithStatus(http.StatusOK)
			return
		}

		if origin != "" {
			writeCORSHeaders(c, origin)
		}
		c.Next()
	}
}

func writeCORSHeaders(c *gin.Context, origin string) {
	c.Header("Access-Control-Allow-Origin", origin)
	c.Header("Access-Control-Allow-Methods", corsAllowMethods)
	c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
	c.Header("Vary", "Origin")
}
