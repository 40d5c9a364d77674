package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	ordersapp "github.com/Apurer/go-gin-storefront/internal/domains/orders/application"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/go-gin-storefront/internal/platform/temporal/activities/orders"
)

type stubOrders struct {
	ordersports.Service
	calls int
	order *domain.Order
	err   error
}

func (s *stubOrders) CreateOrder(context.Context, ordersports.PlaceOrderInput) (*domain.Order, error) {
	s.calls++
	return s.order, s.err
}

type PlacementWorkflowSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite
}

func TestPlacementWorkflowSuite(t *testing.T) {
	suite.Run(t, new(PlacementWorkflowSuite))
}

func (s *PlacementWorkflowSuite) run(svc *stubOrders) *testsuite.TestWorkflowEnvironment {
	env := s.NewTestWorkflowEnvironment()
	env.RegisterActivityWithOptions(orderactivities.NewActivities(svc).PlaceOrder,
		activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})
	env.ExecuteWorkflow(PlacementWorkflow, PlacementWorkflowInput{
		Command: ordersports.PlaceOrderInput{StoreID: "s1", Items: []domain.LineRequest{{ProductID: "p1", Quantity: 1}}},
		TraceID: "trace-1",
	})
	return env
}

func (s *PlacementWorkflowSuite) TestReturnsPlacedOrder() {
	svc := &stubOrders{order: &domain.Order{ID: "o1", StoreID: "s1", Status: domain.StatusPending}}
	env := s.run(svc)

	s.True(env.IsWorkflowCompleted())
	s.NoError(env.GetWorkflowError())
	var order domain.Order
	s.NoError(env.GetWorkflowResult(&order))
	s.Equal("o1", order.ID)
	s.Equal(1, svc.calls)
}

func (s *PlacementWorkflowSuite) TestBusinessErrorsAreNotRetried() {
	svc := &stubOrders{err: errors.Join(ordersapp.ErrInvalidInput, domain.ErrNoItems)}
	env := s.run(svc)

	s.True(env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	s.Error(err)
	var appErr *temporal.ApplicationError
	s.True(errors.As(err, &appErr))
	s.Equal(orderactivities.ErrTypeInvalidInput, appErr.Type())
	s.Equal(1, svc.calls)
}

func TestWithTraceID(t *testing.T) {
	require.Equal(t, []interface{}{"a", 1}, withTraceID("", "a", 1))
	require.Equal(t, []interface{}{"a", 1, "traceId", "t"}, withTraceID("t", "a", 1))
}
