package storefrontserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountsmemory "github.com/Apurer/go-gin-storefront/internal/domains/accounts/adapters/memory"
	accountstoken "github.com/Apurer/go-gin-storefront/internal/domains/accounts/adapters/token"
	accountsapp "github.com/Apurer/go-gin-storefront/internal/domains/accounts/application"
	analyticsnarrator "github.com/Apurer/go-gin-storefront/internal/domains/analytics/adapters/narrator"
	analyticssource "github.com/Apurer/go-gin-storefront/internal/domains/analytics/adapters/source"
	analyticsapp "github.com/Apurer/go-gin-storefront/internal/domains/analytics/application"
	assetsapp "github.com/Apurer/go-gin-storefront/internal/domains/assets/application"
	catalogmemory "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	orderscatalog "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/catalog"
	ordersmemory "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/memory"
	ordersapp "github.com/Apurer/go-gin-storefront/internal/domains/orders/application"
	storesmemory "github.com/Apurer/go-gin-storefront/internal/domains/stores/adapters/memory"
	storesapp "github.com/Apurer/go-gin-storefront/internal/domains/stores/application"
	textgenapp "github.com/Apurer/go-gin-storefront/internal/domains/textgen/application"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixedLimiter struct {
	allowed    bool
	retryAfter time.Duration
	keys       []string
}

func (l *fixedLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.keys = append(l.keys, key)
	return l.allowed, l.retryAfter, nil
}

func newTestRouter(t *testing.T, opts ...Option) *gin.Engine {
	t.Helper()
	storeRepo := storesmemory.NewRepository()
	productRepo := catalogmemory.NewRepository()
	orderRepo := ordersmemory.NewRepository(productRepo)
	users := accountsmemory.NewRepository()
	issuer, err := accountstoken.NewJWTIssuer("handler-test-secret", time.Hour)
	require.NoError(t, err)

	textgen := textgenapp.NewService(nil)
	services := Services{
		Accounts: accountsapp.NewService(users, storeRepo, accountsmemory.NewRegistry(storeRepo, users), issuer, accountsmemory.NewSessionStore()),
		Stores:   storesapp.NewService(storeRepo),
		Catalog:  catalogapp.NewService(productRepo),
		Orders: ordersapp.NewService(orderRepo, orderscatalog.NewProducts(productRepo),
			ordersapp.WithIdempotencyStore(ordersmemory.NewIdempotencyStore())),
		Analytics: analyticsapp.NewService(analyticssource.NewReader(orderRepo, productRepo),
			analyticsapp.WithNarrator(analyticsnarrator.NewTextGen(textgen))),
		TextGen: textgen,
		Assets:  assetsapp.NewService(nil),
	}
	return NewRouter(NewServer(services, opts...), RouterConfig{})
}

func do(t *testing.T, router *gin.Engine, method, path, token string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type authPayload struct {
	Token string `json:"token"`
	User  struct {
		ID      string `json:"id"`
		StoreID string `json:"storeId"`
	} `json:"user"`
	Store struct {
		ID   string `json:"id"`
		Slug string `json:"slug"`
	} `json:"store"`
}

func registerOwner(t *testing.T, router *gin.Engine, email, storeName string) authPayload {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": email, "password": "secret1", "name": "Owner", "storeName": storeName,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var payload authPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func createProduct(t *testing.T, router *gin.Engine, owner authPayload, sku, price string, stock int) string {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/api/v1/products", owner.Token, map[string]any{
		"name": "Product " + sku, "price": json.Number(price), "sku": sku, "storeId": owner.Store.ID, "stock": stock,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var product struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	return product.ID
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) apierrors.ProblemDetail {
	t.Helper()
	assert.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var problem apierrors.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem
}

func TestHealthAndHello(t *testing.T) {
	router := newTestRouter(t)
	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/healthz", "", nil).Code)

	rec := do(t, router, http.MethodGet, "/api/v1/hello", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello Shop Pilot!"}`, rec.Body.String())
}

func TestAuthFlow_RegisterMeLogout(t *testing.T) {
	router := newTestRouter(t)
	owner := registerOwner(t, router, "owner@shop.io", "Corner Shop")
	assert.Equal(t, "corner-shop", owner.Store.Slug)

	rec := do(t, router, http.MethodGet, "/api/v1/me", owner.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = do(t, router, http.MethodPost, "/api/v1/auth/logout", owner.Token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/me", owner.Token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apierrors.TypeUnauthorized, decodeProblem(t, rec).Type)
}

func TestAuth_Errors(t *testing.T) {
	router := newTestRouter(t)
	registerOwner(t, router, "owner@shop.io", "Shop")

	rec := do(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": "owner@shop.io", "password": "secret1", "name": "Again", "storeName": "Elsewhere",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, decodeProblem(t, rec).Detail, "user already exists with this email")

	rec = do(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "owner@shop.io", "password": "wrong-pass"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, decodeProblem(t, rec).Detail, "invalid email or password")

	rec = do(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "owner@shop.io"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_RateLimited(t *testing.T) {
	limiter := &fixedLimiter{allowed: false, retryAfter: 42 * time.Second}
	router := newTestRouter(t, WithLimiter(limiter))

	rec := do(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "a@b.io", "password": "secret1"})
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "42", rec.Header().Get("Retry-After"))
	assert.Equal(t, apierrors.TypeRateLimited, decodeProblem(t, rec).Type)
	require.Len(t, limiter.keys, 1)
	assert.Contains(t, limiter.keys[0], "auth:")
}

func TestCheckout_ComputesTotalAndReplaysIdempotently(t *testing.T) {
	router := newTestRouter(t)
	owner := registerOwner(t, router, "owner@shop.io", "Shop")
	mug := createProduct(t, router, owner, "MUG-1", "12.50", 20)
	tee := createProduct(t, router, owner, "TEE-1", "20", 5)

	checkout := map[string]any{
		"items":        []map[string]any{{"productId": mug, "quantity": 2}, {"productId": tee, "quantity": 1}},
		"customerName": "Ada",
		"total":        1,
	}
	path := "/api/v1/stores/" + owner.Store.ID + "/orders"
	rec := do(t, router, http.MethodPost, path, "", checkout, IdempotencyKeyHeader, "checkout-1")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"total":45.00`)
	assert.Contains(t, rec.Body.String(), `"status":"PENDING"`)
	var first struct {
		ID    string `json:"id"`
		Items []struct {
			Price   json.Number `json:"price"`
			Product struct {
				SKU string `json:"sku"`
			} `json:"product"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	require.Len(t, first.Items, 2)
	assert.Equal(t, json.Number("12.50"), first.Items[0].Price)
	assert.Equal(t, "MUG-1", first.Items[0].Product.SKU)

	rec = do(t, router, http.MethodPost, path, "", checkout, IdempotencyKeyHeader, "checkout-1")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), first.ID)

	checkout["items"] = []map[string]any{{"productId": mug, "quantity": 3}}
	rec = do(t, router, http.MethodPost, path, "", checkout, IdempotencyKeyHeader, "checkout-1")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCheckout_ValidationAndNotFound(t *testing.T) {
	router := newTestRouter(t)
	owner := registerOwner(t, router, "owner@shop.io", "Shop")
	path := "/api/v1/stores/" + owner.Store.ID + "/orders"

	rec := do(t, router, http.MethodPost, path, "", map[string]any{"items": []any{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, path, "", map[string]any{
		"items": []map[string]any{{"productId": "ghost", "quantity": 1}},
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decodeProblem(t, rec).Detail, "ghost")
}

func TestOrders_OwnerGuardAndStatusUpdate(t *testing.T) {
	router := newTestRouter(t)
	owner := registerOwner(t, router, "owner@shop.io", "Shop")
	rival := registerOwner(t, router, "rival@shop.io", "Rival")
	mug := createProduct(t, router, owner, "MUG-1", "10", 20)

	rec := do(t, router, http.MethodPost, "/api/v1/stores/"+owner.Store.ID+"/orders", "", map[string]any{
		"items": []map[string]any{{"productId": mug, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var order struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))

	rec = do(t, router, http.MethodGet, "/api/v1/stores/"+owner.Store.ID+"/orders", rival.Token, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, apierrors.TypeForbidden, decodeProblem(t, rec).Type)

	rec = do(t, router, http.MethodGet, "/api/v1/stores/"+owner.Store.ID+"/orders?take=5", owner.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), order.ID)

	rec = do(t, router, http.MethodGet, "/api/v1/stores/"+owner.Store.ID+"/orders?take=abc", owner.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	statusPath := "/api/v1/orders/" + order.ID + "/status"
	rec = do(t, router, http.MethodPatch, statusPath, rival.Token, map[string]string{"status": "SHIPPED"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, router, http.MethodPatch, statusPath, owner.Token, map[string]string{"status": "LOST"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPatch, statusPath, owner.Token, map[string]string{"status": "SHIPPED"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"SHIPPED"`)

	rec = do(t, router, http.MethodPatch, "/api/v1/orders/missing/status", owner.Token, map[string]string{"status": "SHIPPED"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProducts_CreateGuardsAndConflicts(t *testing.T) {
	router := newTestRouter(t)
	owner := registerOwner(t, router, "owner@shop.io", "Shop")
	rival := registerOwner(t, router, "rival@shop.io", "Rival")
	createProduct(t, router, owner, "TENT-1", "129.99", 3)

	rec := do(t, router, http.MethodPost, "/api/v1/products", rival.Token, map[string]any{
		"name": "Stolen", "price": 1, "sku": "X-1", "storeId": owner.Store.ID,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/products", owner.Token, map[string]any{
		"name": "Dup", "price": 1, "sku": "TENT-1", "storeId": owner.Store.ID,
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, decodeProblem(t, rec).Detail, "product with SKU 'TENT-1' already exists.")

	rec = do(t, router, http.MethodPost, "/api/v1/products", owner.Token, map[string]any{
		"name": "Sticker", "price": json.Number("0.005"), "sku": "STICKER-1", "storeId": owner.Store.ID, "stock": 3,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Contains(t, decodeProblem(t, rec).Detail, "at most two decimal places")

	rec = do(t, router, http.MethodGet, "/api/v1/products?storeId="+owner.Store.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"price":129.99`)

	rec = do(t, router, http.MethodGet, "/api/v1/storefronts/shop", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "TENT-1")

	rec = do(t, router, http.MethodGet, "/api/v1/storefronts/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyticsAndAI(t *testing.T) {
	router := newTestRouter(t)
	owner := registerOwner(t, router, "owner@shop.io", "Shop")
	mug := createProduct(t, router, owner, "MUG-1", "10", 4)
	rec := do(t, router, http.MethodPost, "/api/v1/stores/"+owner.Store.ID+"/orders", "", map[string]any{
		"items": []map[string]any{{"productId": mug, "quantity": 3}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/stores/"+owner.Store.ID+"/dashboard-stats", owner.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"totalRevenue":30.00,"totalOrders":1,"averageOrderValue":30.00,"lowStockCount":1,"totalProducts":1}`, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/v1/stores/"+owner.Store.ID+"/sales-chart", owner.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var chart []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &chart))
	assert.Len(t, chart, 7)

	rec = do(t, router, http.MethodPost, "/api/v1/stores/"+owner.Store.ID+"/sales-summary", owner.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "[MOCK AI SUMMARY] Revenue: $30.")

	rec = do(t, router, http.MethodPost, "/api/v1/ai/descriptions", owner.Token, map[string]string{"name": "Mug", "category": "kitchenware"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Experience the ultimate kitchenware with the new Mug.")

	rec = do(t, router, http.MethodGet, "/api/v1/stores/"+owner.Store.ID+"/upload-signature", owner.Token, nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, apierrors.TypeUnavailable, decodeProblem(t, rec).Type)
}

func TestUnknownRoute_ReturnsProblem(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, http.MethodGet, "/api/v1/nothing", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apierrors.TypeNotFound, decodeProblem(t, rec).Type)
}
