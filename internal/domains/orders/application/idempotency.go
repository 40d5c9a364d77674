package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

type normalizedCheckout struct {
	StoreID         string           `json:"storeId"`
	Items           []normalizedLine `json:"items"`
	CustomerName    string           `json:"customerName"`
	CustomerEmail   string           `json:"customerEmail"`
	ShippingAddress string           `json:"shippingAddress"`
}

type normalizedLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// FingerprintCheckout hashes the checkout payload, excluding the idempotency key.
// Line order is significant because it drives lookup order.
func FingerprintCheckout(input ports.PlaceOrderInput) (string, error) {
	normalized := normalizedCheckout{
		StoreID:         strings.TrimSpace(input.StoreID),
		Items:           make([]normalizedLine, 0, len(input.Items)),
		CustomerName:    strings.TrimSpace(input.Customer.Name),
		CustomerEmail:   strings.ToLower(strings.TrimSpace(input.Customer.Email)),
		ShippingAddress: strings.TrimSpace(input.Customer.ShippingAddress),
	}
	for _, line := range input.Items {
		normalized.Items = append(normalized.Items, normalizedLine{
			ProductID: strings.TrimSpace(line.ProductID),
			Quantity:  line.Quantity,
		})
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

// scopedKey keeps keys from different stores apart.
func scopedKey(storeID, key string) string {
	return storeID + ":" + key
}
