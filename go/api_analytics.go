package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	analyticsmapper "github.com/Apurer/go-gin-storefront/internal/domains/analytics/adapters/http/mapper"
)

// Get /api/v1/stores/:storeId/dashboard-stats
func (s *Server) DashboardStats(c *gin.Context) {
	stats, err := s.services.Analytics.DashboardStats(c.Request.Context(), c.Param("storeId"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, analyticsmapper.FromDomainStats(stats))
}

// Get /api/v1/stores/:storeId/sales-chart
// Seven daily revenue points ending today
func (s *Server) SalesChart(c *gin.Context) {
	points, err := s.services.Analytics.SalesChart(c.Request.Context(), c.Param("storeId"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, analyticsmapper.FromDomainChart(points))
}

// Post /api/v1/stores/:storeId/sales-summary
func (s *Server) SalesSummary(c *gin.Context) {
	summary, err := s.services.Analytics.SalesSummary(c.Request.Context(), c.Param("storeId"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, analyticsmapper.SalesSummary{Summary: summary})
}
