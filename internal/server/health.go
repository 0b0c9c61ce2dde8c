package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Health reflects reachability of the Redis backing both stores. The
// processor role additionally reports its consumer identity.
func (s *Server) Health(c *gin.Context) {
	payload := gin.H{
		"status": "healthy",
		"redis":  "connected",
	}

	if err := s.stream.Ping(c.Request.Context()); err != nil {
		s.log.Error("health check failed", zap.Error(err))
		payload["status"] = "unhealthy"
		payload["redis"] = "disconnected"
	} else if s.worker != nil {
		payload["consumer"] = s.worker.Name()
	}

	c.JSON(http.StatusOK, payload)
}
