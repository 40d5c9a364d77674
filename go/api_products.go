package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

// Get /api/v1/products
// Lists products newest first, optionally for one store
func (s *Server) ListProducts(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondBindingError(c, err)
		return
	}
	storeID, err := bindString(c, "storeId")
	if err != nil {
		respondBindingError(c, err)
		return
	}
	products, err := s.services.Catalog.List(c.Request.Context(), catalogports.ListFilter{
		StoreID: storeID,
		Skip:    page.Skip,
		Take:    page.Take,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProducts(products))
}

// Get /api/v1/products/:productId
func (s *Server) GetProduct(c *gin.Context) {
	product, err := s.services.Catalog.GetByID(c.Request.Context(), c.Param("productId"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProduct(product))
}

// Post /api/v1/products
// Adds a product to the caller's store
func (s *Server) CreateProduct(c *gin.Context) {
	var payload catalogmapper.CreateProduct
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	if !s.authorize(c, payload.StoreID) {
		return
	}
	product, err := s.services.Catalog.Create(c.Request.Context(), catalogmapper.ToCreateInput(payload))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogmapper.FromDomainProduct(product))
}

// Patch /api/v1/products/:productId
// Partially updates a product of the caller's store
func (s *Server) UpdateProduct(c *gin.Context) {
	var payload catalogmapper.UpdateProduct
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	ctx := c.Request.Context()
	id := c.Param("productId")
	existing, err := s.services.Catalog.GetByID(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if !s.authorize(c, existing.StoreID) {
		return
	}
	product, err := s.services.Catalog.Update(ctx, catalogmapper.ToUpdateInput(id, payload))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProduct(product))
}

// Get /api/v1/stores/:storeId/products/search
// Full-text product search within one store
func (s *Server) SearchProducts(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondBindingError(c, err)
		return
	}
	q, err := bindString(c, "q")
	if err != nil {
		respondBindingError(c, err)
		return
	}
	products, err := s.services.Catalog.Search(c.Request.Context(), catalogports.SearchQuery{
		StoreID: c.Param("storeId"),
		Query:   q,
		Skip:    page.Skip,
		Take:    page.Take,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProducts(products))
}
