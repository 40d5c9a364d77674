package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DescriptionRequest is the inbound payload of generateDescription.
type DescriptionRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
}

// DescriptionResponse carries the generated product copy.
type DescriptionResponse struct {
	Description string `json:"description"`
}

// Post /api/v1/ai/descriptions
// Writes marketing copy for a product
func (s *Server) GenerateDescription(c *gin.Context) {
	var payload DescriptionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	text, err := s.services.TextGen.ProductDescription(c.Request.Context(), payload.Name, payload.Category)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, DescriptionResponse{Description: text})
}
