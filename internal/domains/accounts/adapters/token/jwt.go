package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/ports"
)

// DefaultTTL matches the seven day lifetime of storefront sessions.
const DefaultTTL = 7 * 24 * time.Hour

type claims struct {
	UserID  string `json:"userId"`
	StoreID string `json:"storeId"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

var _ ports.TokenIssuer = (*JWTIssuer)(nil)

// JWTIssuer signs HS256 tokens.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (i *JWTIssuer) Issue(user *domain.User) (string, domain.Principal, error) {
	if user == nil || user.ID == "" {
		return "", domain.Principal{}, errors.New("user id is required")
	}
	issuedAt := i.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(i.ttl)
	c := claims{
		UserID:  user.ID,
		StoreID: user.StoreID,
		Role:    user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
	if err != nil {
		return "", domain.Principal{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, toPrincipal(c), nil
}

func (i *JWTIssuer) Parse(raw string) (domain.Principal, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %w", ports.ErrInvalidToken, err)
	}
	if c.UserID == "" || c.ID == "" {
		return domain.Principal{}, fmt.Errorf("%w: missing claims", ports.ErrInvalidToken)
	}
	return toPrincipal(c), nil
}

func toPrincipal(c claims) domain.Principal {
	p := domain.Principal{UserID: c.UserID, StoreID: c.StoreID, Role: c.Role, TokenID: c.ID}
	if c.ExpiresAt != nil {
		p.ExpiresAt = c.ExpiresAt.Time.UTC()
	}
	return p
}
