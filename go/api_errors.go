package storefrontserver

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	accountsapp "github.com/Apurer/go-gin-storefront/internal/domains/accounts/application"
	accountsports "github.com/Apurer/go-gin-storefront/internal/domains/accounts/ports"
	analyticsapp "github.com/Apurer/go-gin-storefront/internal/domains/analytics/application"
	assetsapp "github.com/Apurer/go-gin-storefront/internal/domains/assets/application"
	catalogapp "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	ordersapp "github.com/Apurer/go-gin-storefront/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	storesapp "github.com/Apurer/go-gin-storefront/internal/domains/stores/application"
	storesports "github.com/Apurer/go-gin-storefront/internal/domains/stores/ports"
	textgenapp "github.com/Apurer/go-gin-storefront/internal/domains/textgen/application"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

var (
	// ErrForbidden reports an authenticated caller acting on a store it does not own.
	ErrForbidden = errors.New("you do not have access to this store")
	// ErrMissingToken reports a request without a bearer token on a guarded route.
	ErrMissingToken = errors.New("missing bearer token")
)

// NewErrorResponder builds the RFC 7807 responder that knows every bounded context's sentinels.
func NewErrorResponder() *apierrors.ChainedResponder {
	return apierrors.NewChainedResponder("",
		mapSentinels(apierrors.ErrBadRequest,
			accountsapp.ErrInvalidInput,
			storesapp.ErrInvalidInput,
			catalogapp.ErrInvalidInput,
			ordersapp.ErrInvalidInput,
			analyticsapp.ErrInvalidInput,
			textgenapp.ErrInvalidInput,
			assetsapp.ErrInvalidInput,
		),
		mapSentinels(apierrors.ErrUnauthorized,
			accountsapp.ErrUnauthenticated,
			ErrMissingToken,
		),
		mapSentinels(apierrors.ErrForbidden, ErrForbidden),
		mapSentinels(apierrors.ErrNotFound,
			accountsports.ErrNotFound,
			storesports.ErrNotFound,
			catalogports.ErrNotFound,
			ordersports.ErrNotFound,
			ordersports.ErrProductNotFound,
		),
		mapSentinels(apierrors.ErrConflict,
			accountsapp.ErrConflict,
			storesapp.ErrConflict,
			catalogapp.ErrConflict,
			ordersapp.ErrConflict,
		),
		mapSentinels(apierrors.ErrUpstreamUnavailable,
			textgenapp.ErrUpstreamUnavailable,
			analyticsapp.ErrNarratorUnavailable,
			assetsapp.ErrUnavailable,
		),
	)
}

// mapSentinels maps any error matching one of the sentinels onto problem, keeping the error text as detail.
func mapSentinels(problem apierrors.ProblemDetail, sentinels ...error) apierrors.ErrorMapper {
	return func(err error) (apierrors.ProblemDetail, bool) {
		for _, sentinel := range sentinels {
			if errors.Is(err, sentinel) {
				return problem.WithDetail(err.Error()), true
			}
		}
		return apierrors.ProblemDetail{}, false
	}
}

// respondBindingError reports a payload or parameter that could not be decoded.
func respondBindingError(c *gin.Context, err error) {
	apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

func respondRateLimited(c *gin.Context, retryAfter time.Duration) {
	seconds := int(retryAfter.Round(time.Second) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	c.Header("Retry-After", strconv.Itoa(seconds))
	apierrors.Respond(c, apierrors.ErrTooManyRequests.WithDetail("too many attempts, retry later").
		WithExtension("retryAfterSeconds", seconds))
	c.Abort()
}
