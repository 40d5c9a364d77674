package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/ports"
)

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewJWTIssuer("secret", 0)
	require.NoError(t, err)

	raw, issued, err := issuer.Issue(&domain.User{ID: "u1", StoreID: "s1", Role: domain.RoleOwner})
	require.NoError(t, err)
	assert.NotEmpty(t, issued.TokenID)
	assert.WithinDuration(t, time.Now().Add(DefaultTTL), issued.ExpiresAt, time.Minute)

	parsed, err := issuer.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, issued, parsed)
	assert.Equal(t, "s1", parsed.StoreID)
}

func TestJWTIssuer_RejectsExpired(t *testing.T) {
	issuer, err := NewJWTIssuer("secret", time.Hour)
	require.NoError(t, err)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	raw, _, err := issuer.Issue(&domain.User{ID: "u1", StoreID: "s1"})
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(raw)
	require.ErrorIs(t, err, ports.ErrInvalidToken)
}

func TestJWTIssuer_RejectsForeignSignature(t *testing.T) {
	other, err := NewJWTIssuer("other", time.Hour)
	require.NoError(t, err)
	raw, _, err := other.Issue(&domain.User{ID: "u1"})
	require.NoError(t, err)

	issuer, err := NewJWTIssuer("secret", time.Hour)
	require.NoError(t, err)
	_, err = issuer.Parse(raw)
	require.ErrorIs(t, err, ports.ErrInvalidToken)
}

func TestJWTIssuer_RejectsNoneAlgorithm(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"userId": "u1", "jti": "x", "exp": time.Now().Add(time.Hour).Unix()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	issuer, err := NewJWTIssuer("secret", time.Hour)
	require.NoError(t, err)
	_, err = issuer.Parse(raw)
	require.ErrorIs(t, err, ports.ErrInvalidToken)
}
