package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	assetsmapper "github.com/Apurer/go-gin-storefront/internal/domains/assets/adapters/http/mapper"
)

// Get /api/v1/stores/:storeId/upload-signature
// Authorises a direct browser upload for the store's assets
func (s *Server) UploadSignature(c *gin.Context) {
	sig, err := s.services.Assets.UploadSignature(c.Request.Context(), c.Param("storeId"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, assetsmapper.FromDomainSignature(sig))
}
