package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders and their items using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type orderRecord struct {
	ID              string            `gorm:"primaryKey;column:id;size:36"`
	StoreID         string            `gorm:"column:store_id;size:36;index:idx_orders_store_created"`
	Total           decimal.Decimal   `gorm:"column:total;type:decimal(12,2)"`
	Status          string            `gorm:"column:status;type:varchar(16);index"`
	CustomerName    string            `gorm:"column:customer_name"`
	CustomerEmail   string            `gorm:"column:customer_email"`
	ShippingAddress string            `gorm:"column:shipping_address"`
	CreatedAt       time.Time         `gorm:"column:created_at;index:idx_orders_store_created"`
	UpdatedAt       time.Time         `gorm:"column:updated_at"`
	Items           []orderItemRecord `gorm:"foreignKey:OrderID;references:ID"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID        string          `gorm:"primaryKey;column:id;size:36"`
	OrderID   string          `gorm:"column:order_id;size:36;index"`
	Position  int             `gorm:"column:position"`
	ProductID string          `gorm:"column:product_id;size:36;index"`
	Quantity  int             `gorm:"column:quantity"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(12,2)"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// Models lists the GORM models owned by this adapter for schema migration.
func Models() []any {
	return []any{&orderRecord{}, &orderItemRecord{}, &idempotencyRecord{}}
}

// Create writes the order, its items and any stock reservation in a single transaction.
func (r *Repository) Create(ctx context.Context, order *domain.Order, opts ports.CreateOptions) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	for i := range record.Items {
		if record.Items[i].ID == "" {
			record.Items[i].ID = uuid.NewString()
		}
		record.Items[i].OrderID = record.ID
		record.Items[i].Position = i
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if opts.ReserveStock {
			if err := reserveStock(tx, record.Items, now); err != nil {
				return err
			}
		}
		if err := tx.Omit(clause.Associations).Create(&record).Error; err != nil {
			return err
		}
		return tx.Create(&record.Items).Error
	})
	if err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// reserveStock decrements each product only while enough stock remains; the
// conditional update makes concurrent checkouts unable to oversell.
func reserveStock(tx *gorm.DB, items []orderItemRecord, now time.Time) error {
	quantities := map[string]int{}
	for _, item := range items {
		quantities[item.ProductID] += item.Quantity
	}
	ids := make([]string, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		qty := quantities[id]
		result := tx.Table("products").
			Where("id = ? AND stock >= ?", id, qty).
			Updates(map[string]any{"stock": gorm.Expr("stock - ?", qty), "updated_at": now})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w for product %s", ports.ErrInsufficientStock, id)
		}
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.withItems(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListByStore(ctx context.Context, storeID string, page ports.Page) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.withItems(ctx).Where("store_id = ?", storeID)
	if page.Skip > 0 {
		query = query.Offset(page.Skip)
	}
	if page.Take > 0 {
		query = query.Limit(page.Take)
	}
	return find(query)
}

func (r *Repository) ListByStoreSince(ctx context.Context, storeID string, since time.Time) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return find(r.withItems(ctx).Where("store_id = ? AND created_at >= ?", storeID, since.UTC()))
}

func (r *Repository) UpdateStatus(ctx context.Context, id string, from, to domain.Status) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]any{"status": string(to), "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ports.ErrStatusChanged
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func find(query *gorm.DB) ([]*domain.Order, error) {
	var records []orderRecord
	if err := query.Order("created_at DESC, id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	rec := orderRecord{
		ID:              order.ID,
		StoreID:         order.StoreID,
		Total:           order.Total,
		Status:          string(order.Status),
		CustomerName:    order.Customer.Name,
		CustomerEmail:   order.Customer.Email,
		ShippingAddress: order.Customer.ShippingAddress,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		Items:           make([]orderItemRecord, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		rec.Items = append(rec.Items, orderItemRecord{
			ID:        item.ID,
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return rec
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:      r.ID,
		StoreID: r.StoreID,
		Total:   r.Total,
		Status:  domain.Status(r.Status),
		Customer: domain.Customer{
			Name:            r.CustomerName,
			Email:           r.CustomerEmail,
			ShippingAddress: r.ShippingAddress,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Items:     make([]domain.Item, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		order.Items = append(order.Items, domain.Item{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return order
}
