package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Get /healthz
// Liveness probe
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Get /api/v1/hello
func (s *Server) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello Shop Pilot!"})
}
