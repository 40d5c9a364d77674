package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/assets/domain"
)

// Signer issues upload credentials for a store.
type Signer interface {
	SignUpload(ctx context.Context, storeID string) (*domain.UploadSignature, error)
}

type Service interface {
	UploadSignature(ctx context.Context, storeID string) (*domain.UploadSignature, error)
}
