package storefrontserver

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	accountsdomain "github.com/Apurer/go-gin-storefront/internal/domains/accounts/domain"
)

const principalKey = "storefront.principal"

// Authenticator resolves a bearer token into the caller's principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (accountsdomain.Principal, error)
}

// RequireAuth rejects requests without a valid, unrevoked bearer token and
// stores the resolved principal on the gin context.
func (s *Server) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			s.fail(c, ErrMissingToken)
			c.Abort()
			return
		}
		principal, err := s.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			s.fail(c, err)
			c.Abort()
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireStoreOwner allows the request only when the authenticated principal owns
// the store named by the path parameter.
func (s *Server) RequireStoreOwner(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.authorize(c, c.Param(param)) {
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimit throttles requests per client IP under the given bucket name.
// Limiter failures let the request through.
func (s *Server) RateLimit(bucket string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter == nil {
			c.Next()
			return
		}
		allowed, retryAfter, err := s.limiter.Allow(c.Request.Context(), bucket+":"+c.ClientIP())
		if err != nil {
			s.logger.Warn("rate limiter unavailable", slog.String("bucket", bucket), slog.String("error", err.Error()))
			c.Next()
			return
		}
		if !allowed {
			respondRateLimited(c, retryAfter)
			return
		}
		c.Next()
	}
}

// authorize responds 403 and reports false when the caller does not own storeID.
func (s *Server) authorize(c *gin.Context, storeID string) bool {
	principal, ok := principalFrom(c)
	if !ok {
		s.fail(c, ErrMissingToken)
		return false
	}
	if !principal.CanActOn(storeID) {
		s.fail(c, ErrForbidden)
		return false
	}
	return true
}

func principalFrom(c *gin.Context) (accountsdomain.Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return accountsdomain.Principal{}, false
	}
	principal, ok := value.(accountsdomain.Principal)
	return principal, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
