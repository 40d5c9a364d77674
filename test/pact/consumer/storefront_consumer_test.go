//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-gin-storefront/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type productPayload struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Price json.Number `json:"price"`
	SKU   string      `json:"sku"`
	Stock int         `json:"stock"`
}

type storefrontPayload struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Slug     string           `json:"slug"`
	Products []productPayload `json:"products"`
}

type orderPayload struct {
	ID      string      `json:"id"`
	StoreID string      `json:"storeId"`
	Total   json.Number `json:"total"`
	Status  string      `json:"status"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func TestStorefrontWebContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	productMatcher := matchers.Map{
		"id":     matchers.Like(pacttest.ProductID),
		"name":   matchers.Like(pacttest.ProductName),
		"price":  matchers.Like(12.5),
		"sku":    matchers.Like(pacttest.ProductSKU),
		"stock":  matchers.Like(pacttest.ProductStock),
		"active": matchers.Like(true),
	}

	pact.AddInteraction().
		Given(pacttest.StateStorefrontExists).
		UponReceiving("a request for a public storefront").
		WithRequest("GET", "/api/v1/storefronts/"+pacttest.StoreSlug).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":       matchers.Like(pacttest.StoreID),
				"name":     matchers.Like(pacttest.StoreName),
				"slug":     matchers.S(pacttest.StoreSlug),
				"products": matchers.EachLike(productMatcher, 1),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateStorefrontMissing).
		UponReceiving("a request for an unknown storefront").
		WithRequest("GET", "/api/v1/storefronts/"+pacttest.MissingSlug).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateProductInStock).
		UponReceiving("a guest checkout for an in-stock product").
		WithRequest("POST", "/api/v1/stores/"+pacttest.StoreID+"/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(pacttest.ExampleCheckoutPayload())
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":      matchers.Like("order-id"),
				"storeId": matchers.S(pacttest.StoreID),
				"total":   matchers.Like(25.0),
				"status":  matchers.Term("PENDING", "PENDING|PROCESSING|SHIPPED|COMPLETED|CANCELLED"),
				"items": matchers.EachLike(matchers.Map{
					"productId": matchers.S(pacttest.ProductID),
					"quantity":  matchers.Like(pacttest.OrderQuantity),
					"price":     matchers.Like(12.5),
				}, 1),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newStorefrontClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		storefront, err := client.GetStorefront(ctx, pacttest.StoreSlug)
		if err != nil {
			return fmt.Errorf("get storefront: %w", err)
		}
		if storefront.Slug != pacttest.StoreSlug || len(storefront.Products) == 0 {
			return fmt.Errorf("unexpected storefront %+v", storefront)
		}

		_, err = client.GetStorefront(ctx, pacttest.MissingSlug)
		if apiErr, ok := err.(apiError); !ok || apiErr.status != http.StatusNotFound {
			return fmt.Errorf("expected 404 for %s, got %v", pacttest.MissingSlug, err)
		}

		order, err := client.Checkout(ctx, pacttest.StoreID, pacttest.ExampleCheckoutPayload())
		if err != nil {
			return fmt.Errorf("checkout: %w", err)
		}
		if order.ID == "" || order.StoreID != pacttest.StoreID {
			return fmt.Errorf("unexpected order %+v", order)
		}
		return nil
	})
	require.NoError(t, err)
}

type storefrontClient struct {
	baseURL    string
	httpClient *http.Client
}

func newStorefrontClient(config pactconsumer.MockServerConfig) *storefrontClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &storefrontClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *storefrontClient) GetStorefront(ctx context.Context, slug string) (*storefrontPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/storefronts/"+slug, nil)
	if err != nil {
		return nil, err
	}
	var payload storefrontPayload
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *storefrontClient) Checkout(ctx context.Context, storeID string, body map[string]any) (*orderPayload, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/stores/"+storeID+"/orders", bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	var payload orderPayload
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *storefrontClient) do(req *http.Request, out any) error {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{status: status, title: problem.Title, detail: problem.Detail}
}
