package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/observability"
)

const (
	DefaultTake = 10
	MaxTake     = 100
)

// Service builds order aggregates and tracks their status.
type Service struct {
	repo         ports.Repository
	catalog      ports.ProductCatalog
	publisher    ports.EventPublisher
	idempotency  ports.IdempotencyStore
	policy       domain.TransitionPolicy
	reserveStock bool
	now          func() time.Time
	logger       *slog.Logger
}

type Option func(*Service)

func WithEventPublisher(p ports.EventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) { s.idempotency = store }
}

// WithTransitionPolicy replaces the default permissive status policy.
func WithTransitionPolicy(policy domain.TransitionPolicy) Option {
	return func(s *Service) {
		if policy != nil {
			s.policy = policy
		}
	}
}

// WithStockReservation makes checkout decrement stock atomically with the order write.
func WithStockReservation(enabled bool) Option {
	return func(s *Service) { s.reserveStock = enabled }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(repo ports.Repository, catalog ports.ProductCatalog, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		catalog: catalog,
		policy:  domain.PermissivePolicy{},
		now:     time.Now,
		logger:  observability.DiscardLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder validates the lines, prices them from the catalog, and writes the
// order with all items in one transaction.
func (s *Service) CreateOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	input.StoreID = strings.TrimSpace(input.StoreID)
	if input.StoreID == "" {
		return nil, mapError(domain.ErrMissingStore)
	}
	if err := domain.ValidateLines(input.Items); err != nil {
		return nil, mapError(err)
	}

	key := strings.TrimSpace(input.IdempotencyKey)
	var fingerprint string
	if key != "" && s.idempotency != nil {
		var err error
		if fingerprint, err = FingerprintCheckout(input); err != nil {
			return nil, err
		}
		replayed, err := s.replay(ctx, scopedKey(input.StoreID, key), fingerprint)
		if err != nil || replayed != nil {
			return replayed, err
		}
	}

	items := make([]domain.Item, 0, len(input.Items))
	priced := make(map[string]*domain.ProductRef, len(input.Items))
	for _, line := range input.Items {
		product, err := s.catalog.GetProduct(ctx, line.ProductID)
		if errors.Is(err, ports.ErrProductNotFound) {
			return nil, productNotFound(line.ProductID)
		}
		if err != nil {
			return nil, err
		}
		// another store's product is invisible to this storefront
		if product.StoreID != input.StoreID {
			return nil, productNotFound(line.ProductID)
		}
		if _, ok := priced[product.ID]; !ok {
			ref := *product
			priced[product.ID] = &ref
		}
		items = append(items, domain.Item{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
	}

	order, err := domain.NewOrder(input.StoreID, input.Customer, items)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Create(ctx, order, ports.CreateOptions{ReserveStock: s.reserveStock})
	if err != nil {
		return nil, mapError(err)
	}

	if fingerprint != "" {
		record, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{
			Key:         scopedKey(input.StoreID, key),
			RequestHash: fingerprint,
			OrderID:     saved.ID,
		})
		if err != nil {
			if !errors.Is(err, ports.ErrIdempotencyConflict) || record == nil || record.RequestHash != fingerprint {
				return nil, mapError(err)
			}
			// a concurrent retry won the key; answer with its order
			s.logger.LogAttrs(ctx, slog.LevelWarn, "idempotent checkout raced, returning first order",
				slog.String("order.id", record.OrderID), slog.String("order.duplicate_id", saved.ID))
			return s.GetByID(ctx, record.OrderID)
		}
	}

	// the order is committed; no further catalog reads may fail the checkout
	if s.reserveStock {
		for _, item := range saved.Items {
			priced[item.ProductID].Stock -= item.Quantity
		}
	}
	attach(priced, saved)
	s.publish(ctx, domain.NewOrderCreated(saved, s.now().UTC()))
	return saved, nil
}

// UpdateStatus moves an order to a new status under the configured policy.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error) {
	target, err := domain.ParseStatus(status)
	if err != nil {
		return nil, mapError(err)
	}
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, mapError(err)
	}
	previous := order.Status
	changed, err := order.TransitionTo(target, s.policy)
	if err != nil {
		return nil, mapError(err)
	}
	if changed {
		order, err = s.repo.UpdateStatus(ctx, orderID, previous, target)
		if err != nil {
			return nil, mapError(err)
		}
	}
	if err := s.hydrate(ctx, order); err != nil {
		return nil, err
	}
	if changed {
		s.publish(ctx, domain.OrderStatusChanged{
			BaseEvent:  domain.BaseEvent{Timestamp: s.now().UTC()},
			OrderID:    order.ID,
			StoreID:    order.StoreID,
			FromStatus: previous,
			ToStatus:   target,
		})
	}
	return order, nil
}

// ListOrders returns a store's orders newest first with hydrated items.
func (s *Service) ListOrders(ctx context.Context, storeID string, page ports.Page) ([]*domain.Order, error) {
	if page.Skip < 0 {
		page.Skip = 0
	}
	if page.Take <= 0 {
		page.Take = DefaultTake
	}
	if page.Take > MaxTake {
		page.Take = MaxTake
	}
	orders, err := s.repo.ListByStore(ctx, storeID, page)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.hydrate(ctx, orders...); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.hydrate(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) replay(ctx context.Context, key, fingerprint string) (*domain.Order, error) {
	record, err := s.idempotency.Get(ctx, key)
	if err != nil || record == nil {
		return nil, err
	}
	if record.RequestHash != fingerprint {
		return nil, mapError(ports.ErrIdempotencyConflict)
	}
	return s.GetByID(ctx, record.OrderID)
}

// hydrate attaches the current product to every item in one catalog call.
func (s *Service) hydrate(ctx context.Context, orders ...*domain.Order) error {
	seen := map[string]struct{}{}
	ids := make([]string, 0)
	for _, order := range orders {
		for _, item := range order.Items {
			if _, ok := seen[item.ProductID]; !ok {
				seen[item.ProductID] = struct{}{}
				ids = append(ids, item.ProductID)
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}
	products, err := s.catalog.GetProducts(ctx, ids)
	if err != nil {
		return err
	}
	attach(products, orders...)
	return nil
}

// attach sets each item's product reference from products, keyed by id.
func attach(products map[string]*domain.ProductRef, orders ...*domain.Order) {
	for _, order := range orders {
		for i := range order.Items {
			if p, ok := products[order.Items[i].ProductID]; ok {
				ref := *p
				order.Items[i].Product = &ref
			}
		}
	}
}

func (s *Service) publish(ctx context.Context, event domain.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to publish order event",
			slog.String("event", event.EventName()),
			slog.String("order.id", event.AggregateID()),
			slog.String("error", err.Error()))
	}
}

var _ ports.Service = (*Service)(nil)
