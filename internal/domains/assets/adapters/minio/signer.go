package minio

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Apurer/go-gin-storefront/internal/domains/assets/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/assets/ports"
)

const DefaultExpiry = 15 * time.Minute

// Config describes the MinIO endpoint and bucket used for uploads.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Expiry    time.Duration
}

func (c Config) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// Presigner is the subset of the MinIO client used to mint upload URLs.
type Presigner interface {
	PresignedPutObject(ctx context.Context, bucketName, objectName string, expires time.Duration) (*url.URL, error)
}

var _ ports.Signer = (*Signer)(nil)

// Signer issues presigned PUT URLs under stores/<storeID>/.
type Signer struct {
	client Presigner
	bucket string
	expiry time.Duration
	now    func() time.Time
}

func NewSigner(client Presigner, bucket string, expiry time.Duration) *Signer {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Signer{client: client, bucket: bucket, expiry: expiry, now: time.Now}
}

// Dial connects to MinIO and makes sure the bucket exists.
func Dial(ctx context.Context, cfg Config) (*Signer, error) {
	if !cfg.Enabled() {
		return nil, errors.New("minio endpoint and bucket are required")
	}
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check minio bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, miniogo.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create minio bucket: %w", err)
		}
	}
	return NewSigner(client, cfg.Bucket, cfg.Expiry), nil
}

func (s *Signer) SignUpload(ctx context.Context, storeID string) (*domain.UploadSignature, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("minio signer not configured")
	}
	objectKey := fmt.Sprintf("stores/%s/%s", strings.TrimSpace(storeID), uuid.NewString())
	issued := s.now()
	u, err := s.client.PresignedPutObject(ctx, s.bucket, objectKey, s.expiry)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}
	return &domain.UploadSignature{
		Provider:  domain.ProviderMinIO,
		UploadURL: u.String(),
		ObjectKey: objectKey,
		Timestamp: issued.Unix(),
		ExpiresAt: issued.Add(s.expiry).UTC(),
	}, nil
}
