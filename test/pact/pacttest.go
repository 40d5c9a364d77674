//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "storefront-api"
	ConsumerName = "storefront-web"

	StateStorefrontExists  = "storefront pact-shop exists with products"
	StateStorefrontMissing = "no storefront with slug ghost-shop"
	StateProductInStock    = "product pact-product-1 is in stock"
)

const (
	StoreID   = "5b0f5a5e-3e0b-4c3f-9a43-2f0f2f0a0001"
	StoreSlug = "pact-shop"
	StoreName = "Pact Shop"

	MissingSlug = "ghost-shop"

	ProductID    = "5b0f5a5e-3e0b-4c3f-9a43-2f0f2f0a0101"
	ProductSKU   = "PACT-SKU-1"
	ProductName  = "Pact Mug"
	ProductPrice = "12.50"
	ProductStock = 25

	OrderQuantity = 2
	OrderTotal    = "25.00"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront web consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleCheckoutPayload is the checkout body the consumer sends for the seeded product.
func ExampleCheckoutPayload() map[string]any {
	return map[string]any{
		"items": []map[string]any{
			{"productId": ProductID, "quantity": OrderQuantity},
		},
		"customerName":    "Pact Customer",
		"customerEmail":   "pact.customer@example.com",
		"shippingAddress": "1 Contract Way",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
