package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accountsmapper "github.com/Apurer/go-gin-storefront/internal/domains/accounts/adapters/http/mapper"
)

// Post /api/v1/auth/register
// Creates an owner account together with its store
func (s *Server) Register(c *gin.Context) {
	var payload accountsmapper.Register
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	result, err := s.services.Accounts.Register(c.Request.Context(), accountsmapper.ToRegisterInput(payload))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, accountsmapper.FromAuthResult(result))
}

// Post /api/v1/auth/login
func (s *Server) Login(c *gin.Context) {
	var payload accountsmapper.Login
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	result, err := s.services.Accounts.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, accountsmapper.FromAuthResult(result))
}

// Post /api/v1/auth/logout
// Revokes the presented token
func (s *Server) Logout(c *gin.Context) {
	principal, _ := principalFrom(c)
	if err := s.services.Accounts.Logout(c.Request.Context(), principal); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /api/v1/me
func (s *Server) Me(c *gin.Context) {
	principal, _ := principalFrom(c)
	user, err := s.services.Accounts.Me(c.Request.Context(), principal)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, accountsmapper.FromDomainUser(user))
}
