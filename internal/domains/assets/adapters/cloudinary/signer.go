package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/assets/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/assets/ports"
)

var _ ports.Signer = (*Signer)(nil)

// Config holds Cloudinary account credentials.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
}

func (c Config) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// Signer produces signed-upload parameters for the Cloudinary upload API.
type Signer struct {
	cfg Config
	now func() time.Time
}

func NewSigner(cfg Config) (*Signer, error) {
	if !cfg.Enabled() {
		return nil, errors.New("cloudinary cloud name, api key and secret are required")
	}
	return &Signer{cfg: cfg, now: time.Now}, nil
}

func (s *Signer) SignUpload(_ context.Context, _ string) (*domain.UploadSignature, error) {
	timestamp := s.now().Unix()
	return &domain.UploadSignature{
		Provider:  domain.ProviderCloudinary,
		Signature: SignParams(map[string]string{"timestamp": fmt.Sprint(timestamp)}, s.cfg.APISecret),
		Timestamp: timestamp,
		CloudName: s.cfg.CloudName,
		APIKey:    s.cfg.APIKey,
	}, nil
}

// SignParams is Cloudinary's request signature: sha1 hex of the sorted, &-joined params followed by the secret.
func SignParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
