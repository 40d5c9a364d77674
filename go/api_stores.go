package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	storesmapper "github.com/Apurer/go-gin-storefront/internal/domains/stores/adapters/http/mapper"
)

// storefrontProducts is how many products a public storefront shows.
const storefrontProducts = 100

// Storefront is a public store page with its newest products.
type Storefront struct {
	storesmapper.Store
	Products []catalogmapper.Product `json:"products"`
}

// Get /api/v1/stores
func (s *Server) ListStores(c *gin.Context) {
	stores, err := s.services.Stores.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, storesmapper.FromDomainStores(stores))
}

// Get /api/v1/storefronts/:slug
// Finds a store by slug together with its first products
func (s *Server) GetStorefront(c *gin.Context) {
	ctx := c.Request.Context()
	store, err := s.services.Stores.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		s.fail(c, err)
		return
	}
	products, err := s.services.Catalog.List(ctx, catalogports.ListFilter{StoreID: store.ID, Take: storefrontProducts})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Storefront{
		Store:    storesmapper.FromDomainStore(store),
		Products: catalogmapper.FromDomainProducts(products),
	})
}

// Post /api/v1/stores
func (s *Server) CreateStore(c *gin.Context) {
	var payload storesmapper.CreateStore
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	store, err := s.services.Stores.CreateStore(c.Request.Context(), payload.Name, payload.Slug)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, storesmapper.FromDomainStore(store))
}

// Patch /api/v1/stores/:storeId
// Partially updates store settings
func (s *Server) UpdateStore(c *gin.Context) {
	var payload storesmapper.UpdateStore
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	store, err := s.services.Stores.UpdateStore(c.Request.Context(), storesmapper.ToUpdateInput(c.Param("storeId"), payload))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, storesmapper.FromDomainStore(store))
}
