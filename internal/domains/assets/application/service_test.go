package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/assets/domain"
)

type signerFunc func(ctx context.Context, storeID string) (*domain.UploadSignature, error)

func (f signerFunc) SignUpload(ctx context.Context, storeID string) (*domain.UploadSignature, error) {
	return f(ctx, storeID)
}

func TestUploadSignature(t *testing.T) {
	svc := NewService(signerFunc(func(_ context.Context, storeID string) (*domain.UploadSignature, error) {
		return &domain.UploadSignature{Provider: domain.ProviderCloudinary, Signature: "sig-" + storeID}, nil
	}))
	sig, err := svc.UploadSignature(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "sig-s1", sig.Signature)
}

func TestUploadSignature_Unconfigured(t *testing.T) {
	_, err := NewService(nil).UploadSignature(context.Background(), "s1")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestUploadSignature_ProviderFailure(t *testing.T) {
	svc := NewService(signerFunc(func(context.Context, string) (*domain.UploadSignature, error) {
		return nil, errors.New("bucket missing")
	}))
	_, err := svc.UploadSignature(context.Background(), "s1")
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "bucket missing")
}

func TestUploadSignature_RequiresStore(t *testing.T) {
	_, err := NewService(nil).UploadSignature(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidInput)
}
