package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/adapters/memory"
	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/adapters/token"
	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/ports"
	storesmemory "github.com/Apurer/go-gin-storefront/internal/domains/stores/adapters/memory"
	storesports "github.com/Apurer/go-gin-storefront/internal/domains/stores/ports"
)

func newTestService(t *testing.T) (*Service, *storesmemory.Repository) {
	t.Helper()
	stores := storesmemory.NewRepository()
	users := memory.NewRepository()
	issuer, err := token.NewJWTIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	return NewService(users, stores, memory.NewRegistry(stores, users), issuer, memory.NewSessionStore()), stores
}

func register(t *testing.T, svc *Service, email, storeName string) *ports.AuthResult {
	t.Helper()
	res, err := svc.Register(context.Background(), ports.RegisterInput{Email: email, Password: "secret1", Name: "Owner", StoreName: storeName})
	require.NoError(t, err)
	return res
}

func TestRegister_CreatesStoreAndSignsIn(t *testing.T) {
	svc, _ := newTestService(t)
	res := register(t, svc, "owner@shop.io", "My Cool Shop!")

	assert.Equal(t, "my-cool-shop", res.Store.Slug)
	assert.Equal(t, res.Store.ID, res.User.StoreID)
	assert.NotEmpty(t, res.Token)

	principal, err := svc.Authenticate(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, principal.UserID)
	assert.True(t, principal.CanActOn(res.Store.ID))
}

func TestRegister_Conflicts(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "owner@shop.io", "Shop")

	_, err := svc.Register(context.Background(), ports.RegisterInput{Email: "OWNER@shop.io", Password: "secret1", Name: "X", StoreName: "Other"})
	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "user already exists with this email")

	_, err = svc.Register(context.Background(), ports.RegisterInput{Email: "new@shop.io", Password: "secret1", Name: "X", StoreName: "shop"})
	require.ErrorIs(t, err, ErrConflict)
	require.ErrorIs(t, err, storesports.ErrSlugTaken)
	assert.Contains(t, err.Error(), "store slug 'shop' is already taken")
}

func TestRegister_InvalidInput(t *testing.T) {
	svc, stores := newTestService(t)
	_, err := svc.Register(context.Background(), ports.RegisterInput{Email: "bad", Password: "secret1", Name: "X", StoreName: "Shop"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(context.Background(), ports.RegisterInput{Email: "a@b.c", Password: "secret1", Name: "X", StoreName: "!!!"})
	require.ErrorIs(t, err, ErrInvalidInput)

	list, err := stores.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	reg := register(t, svc, "owner@shop.io", "Shop")

	res, err := svc.Login(context.Background(), "Owner@Shop.io", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, res.User.ID)
	assert.Equal(t, reg.Store.ID, res.Store.ID)

	_, err = svc.Login(context.Background(), "owner@shop.io", "wrong-pass")
	require.ErrorIs(t, err, ErrUnauthenticated)
	assert.Contains(t, err.Error(), "invalid email or password")

	_, err = svc.Login(context.Background(), "nobody@shop.io", "secret1")
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestLogout_RevokesToken(t *testing.T) {
	svc, _ := newTestService(t)
	res := register(t, svc, "owner@shop.io", "Shop")
	ctx := context.Background()

	principal, err := svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, principal))

	_, err = svc.Authenticate(ctx, res.Token)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticate_RejectsGarbage(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Authenticate(context.Background(), "not-a-jwt")
	require.ErrorIs(t, err, ErrUnauthenticated)
	_, err = svc.Authenticate(context.Background(), "")
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestMe(t *testing.T) {
	svc, _ := newTestService(t)
	res := register(t, svc, "owner@shop.io", "Shop")
	principal, err := svc.Authenticate(context.Background(), res.Token)
	require.NoError(t, err)

	me, err := svc.Me(context.Background(), principal)
	require.NoError(t, err)
	assert.Equal(t, "owner@shop.io", me.Email)
}
