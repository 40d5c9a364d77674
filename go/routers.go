package storefrontserver

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	accountsports "github.com/Apurer/go-gin-storefront/internal/domains/accounts/ports"
	analyticsports "github.com/Apurer/go-gin-storefront/internal/domains/analytics/ports"
	assetsports "github.com/Apurer/go-gin-storefront/internal/domains/assets/ports"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	ordersworkflows "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/workflows"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	storesports "github.com/Apurer/go-gin-storefront/internal/domains/stores/ports"
	textgenports "github.com/Apurer/go-gin-storefront/internal/domains/textgen/ports"
	platformobs "github.com/Apurer/go-gin-storefront/internal/platform/observability"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
	"github.com/Apurer/go-gin-storefront/internal/shared/ratelimit"
)

// Guard selects the authentication a route requires.
type Guard int

const (
	GuardPublic Guard = iota
	// GuardBearer requires a valid token.
	GuardBearer
	// GuardOwner requires a valid token whose store matches the :storeId path parameter.
	GuardOwner
	// GuardThrottled is public but rate limited per client IP.
	GuardThrottled
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// Guard is the authentication applied before HandlerFunc.
	Guard Guard
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// Services bundles the bounded context services the transport delegates to.
type Services struct {
	Accounts  accountsports.Service
	Stores    storesports.Service
	Catalog   catalogports.Service
	Orders    ordersports.Service
	Checkout  ordersports.WorkflowOrchestrator
	Analytics analyticsports.Service
	TextGen   textgenports.Service
	Assets    assetsports.Service
}

// Server holds the HTTP handlers of the storefront API.
type Server struct {
	services  Services
	auth      Authenticator
	limiter   ratelimit.Limiter
	responder *apierrors.ChainedResponder
	logger    *slog.Logger
}

// Option configures the server.
type Option func(*Server)

// WithLimiter throttles register and login.
func WithLimiter(limiter ratelimit.Limiter) Option {
	return func(s *Server) {
		s.limiter = limiter
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer wires handlers to services. Checkout defaults to the inline order service.
func NewServer(services Services, opts ...Option) *Server {
	s := &Server{
		services:  services,
		auth:      services.Accounts,
		responder: NewErrorResponder(),
		logger:    platformobs.DiscardLogger(),
	}
	if s.services.Checkout == nil && s.services.Orders != nil {
		s.services.Checkout = ordersworkflows.NewInlineOrderWorkflows(s.services.Orders)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RouterConfig carries the transport-level settings of the router.
type RouterConfig struct {
	ServiceName string
	// CORSOrigins lists the allowed browser origins; empty allows any origin.
	CORSOrigins []string
}

// NewRouter returns a new router.
func NewRouter(server *Server, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	for _, route := range server.Routes() {
		handlers := append(server.guard(route.Guard), route.HandlerFunc)
		router.Handle(route.Method, route.Pattern, handlers...)
	}
	router.NoRoute(func(c *gin.Context) {
		apierrors.Respond(c, apierrors.ErrNotFound.WithDetail("no route for "+c.Request.Method+" "+c.Request.URL.Path))
	})
	return router
}

func (s *Server) guard(g Guard) []gin.HandlerFunc {
	switch g {
	case GuardBearer:
		return []gin.HandlerFunc{s.RequireAuth()}
	case GuardOwner:
		return []gin.HandlerFunc{s.RequireAuth(), s.RequireStoreOwner("storeId")}
	case GuardThrottled:
		return []gin.HandlerFunc{s.RateLimit("auth")}
	}
	return nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cleaned := make([]string, 0, len(origins))
	for _, origin := range origins {
		if origin = strings.TrimSpace(origin); origin != "" {
			cleaned = append(cleaned, origin)
		}
	}
	if len(cleaned) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = cleaned
		cfg.AllowCredentials = true
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "Idempotency-Key")
	cfg.ExposeHeaders = []string{"Retry-After"}
	return cfg
}

// Routes lists every operation of the storefront API.
func (s *Server) Routes() []Route {
	return []Route{
		{"Health", http.MethodGet, "/healthz", GuardPublic, s.Health},
		{"Hello", http.MethodGet, "/api/v1/hello", GuardPublic, s.Hello},

		{"Register", http.MethodPost, "/api/v1/auth/register", GuardThrottled, s.Register},
		{"Login", http.MethodPost, "/api/v1/auth/login", GuardThrottled, s.Login},
		{"Logout", http.MethodPost, "/api/v1/auth/logout", GuardBearer, s.Logout},
		{"Me", http.MethodGet, "/api/v1/me", GuardBearer, s.Me},

		{"ListStores", http.MethodGet, "/api/v1/stores", GuardPublic, s.ListStores},
		{"GetStorefront", http.MethodGet, "/api/v1/storefronts/:slug", GuardPublic, s.GetStorefront},
		{"CreateStore", http.MethodPost, "/api/v1/stores", GuardBearer, s.CreateStore},
		{"UpdateStore", http.MethodPatch, "/api/v1/stores/:storeId", GuardOwner, s.UpdateStore},

		{"ListProducts", http.MethodGet, "/api/v1/products", GuardPublic, s.ListProducts},
		{"GetProduct", http.MethodGet, "/api/v1/products/:productId", GuardPublic, s.GetProduct},
		{"CreateProduct", http.MethodPost, "/api/v1/products", GuardBearer, s.CreateProduct},
		{"UpdateProduct", http.MethodPatch, "/api/v1/products/:productId", GuardBearer, s.UpdateProduct},
		{"SearchProducts", http.MethodGet, "/api/v1/stores/:storeId/products/search", GuardPublic, s.SearchProducts},

		{"CreateOrder", http.MethodPost, "/api/v1/stores/:storeId/orders", GuardPublic, s.CreateOrder},
		{"ListOrders", http.MethodGet, "/api/v1/stores/:storeId/orders", GuardOwner, s.ListOrders},
		{"UpdateOrderStatus", http.MethodPatch, "/api/v1/orders/:orderId/status", GuardBearer, s.UpdateOrderStatus},

		{"DashboardStats", http.MethodGet, "/api/v1/stores/:storeId/dashboard-stats", GuardOwner, s.DashboardStats},
		{"SalesChart", http.MethodGet, "/api/v1/stores/:storeId/sales-chart", GuardOwner, s.SalesChart},
		{"SalesSummary", http.MethodPost, "/api/v1/stores/:storeId/sales-summary", GuardOwner, s.SalesSummary},
		{"GenerateDescription", http.MethodPost, "/api/v1/ai/descriptions", GuardBearer, s.GenerateDescription},

		{"UploadSignature", http.MethodGet, "/api/v1/stores/:storeId/upload-signature", GuardOwner, s.UploadSignature},
	}
}

// fail writes the problem response for err. Errors no mapper recognises are logged
// because their detail is withheld from the client.
func (s *Server) fail(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if _, ok := s.responder.Resolve(err); !ok {
		s.logger.ErrorContext(c.Request.Context(), "request failed",
			slog.String("route", c.FullPath()),
			slog.String("error", err.Error()),
		)
	}
	s.responder.RespondError(c, err)
}
