package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Apurer/go-gin-storefront/internal/domains/assets/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/assets/ports"
)

var (
	ErrInvalidInput = errors.New("invalid asset input")
	// ErrUnavailable reports that no upload provider is configured or the provider failed.
	ErrUnavailable = errors.New("asset uploads unavailable")
)

type Service struct {
	signer ports.Signer
}

// NewService accepts a nil signer; every request then fails with ErrUnavailable.
func NewService(signer ports.Signer) *Service {
	return &Service{signer: signer}
}

func (s *Service) UploadSignature(ctx context.Context, storeID string) (*domain.UploadSignature, error) {
	if strings.TrimSpace(storeID) == "" {
		return nil, fmt.Errorf("%w: store id is required", ErrInvalidInput)
	}
	if s.signer == nil {
		return nil, fmt.Errorf("%w: no upload provider configured", ErrUnavailable)
	}
	sig, err := s.signer.SignUpload(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return sig, nil
}

var _ ports.Service = (*Service)(nil)
