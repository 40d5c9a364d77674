package storefrontserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	ordersmapper "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/http/mapper"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

// IdempotencyKeyHeader makes a checkout safe to retry.
const IdempotencyKeyHeader = "Idempotency-Key"

// Post /api/v1/stores/:storeId/orders
// Shopper checkout; the total is computed server side
func (s *Server) CreateOrder(c *gin.Context) {
	var payload ordersmapper.CreateOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	input := ordersmapper.ToPlaceOrderInput(c.Param("storeId"), strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader)), payload)
	order, err := s.services.Checkout.PlaceOrder(c.Request.Context(), input)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordersmapper.FromDomainOrder(order))
}

// Get /api/v1/stores/:storeId/orders
func (s *Server) ListOrders(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondBindingError(c, err)
		return
	}
	orders, err := s.services.Orders.ListOrders(c.Request.Context(), c.Param("storeId"), ordersports.Page{Skip: page.Skip, Take: page.Take})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ordersmapper.FromDomainOrders(orders))
}

// Patch /api/v1/orders/:orderId/status
func (s *Server) UpdateOrderStatus(c *gin.Context) {
	var payload ordersmapper.UpdateStatus
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	ctx := c.Request.Context()
	id := c.Param("orderId")
	existing, err := s.services.Orders.GetByID(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if !s.authorize(c, existing.StoreID) {
		return
	}
	order, err := s.services.Orders.UpdateStatus(ctx, id, payload.Status)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ordersmapper.FromDomainOrder(order))
}
