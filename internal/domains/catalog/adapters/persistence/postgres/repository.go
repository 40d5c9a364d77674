package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type productRecord struct {
	ID          string          `gorm:"primaryKey;column:id;size:36"`
	StoreID     string          `gorm:"column:store_id;size:36;index:idx_products_store_created"`
	Name        string          `gorm:"column:name"`
	Description string          `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(12,2)"`
	SKU         string          `gorm:"column:sku;uniqueIndex"`
	Stock       int             `gorm:"column:stock"`
	ImageURL    string          `gorm:"column:image_url"`
	Active      bool            `gorm:"column:active"`
	CreatedAt   time.Time       `gorm:"column:created_at;index:idx_products_store_created"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Models lists the GORM models owned by this adapter for schema migration.
func Models() []any {
	return []any{&productRecord{}}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *Repository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(product)
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, translate(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(product)
	result := r.db.WithContext(ctx).Model(&productRecord{}).Where("id = ?", record.ID).Updates(map[string]any{
		"name":        record.Name,
		"description": record.Description,
		"price":       record.Price,
		"sku":         record.SKU,
		"stock":       record.Stock,
		"image_url":   record.ImageURL,
		"active":      record.Active,
		"updated_at":  time.Now().UTC(),
	})
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return r.first(ctx, "sku = ?", sku)
}

func (r *Repository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	out := make(map[string]*domain.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	for i := range records {
		out[records[i].ID] = records[i].toDomain()
	}
	return out, nil
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&productRecord{})
	if filter.StoreID != "" {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	return r.find(paged(query, filter.Skip, filter.Take))
}

func (r *Repository) Search(ctx context.Context, storeID, q string, skip, take int) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(q))) + "%"
	query := r.db.WithContext(ctx).Model(&productRecord{}).
		Where("store_id = ?", storeID).
		Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, pattern, pattern)
	return r.find(paged(query, skip, take))
}

func (r *Repository) find(query *gorm.DB) ([]*domain.Product, error) {
	var records []productRecord
	if err := query.Order("created_at DESC, id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

func (r *Repository) first(ctx context.Context, query string, arg any) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).Where(query, arg).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func paged(query *gorm.DB, skip, take int) *gorm.DB {
	if skip > 0 {
		query = query.Offset(skip)
	}
	if take > 0 {
		query = query.Limit(take)
	}
	return query
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ports.ErrSKUTaken
	}
	return err
}

func toRecord(p *domain.Product) productRecord {
	return productRecord{
		ID:          p.ID,
		StoreID:     p.StoreID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		SKU:         p.SKU,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:          r.ID,
		StoreID:     r.StoreID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		SKU:         r.SKU,
		Stock:       r.Stock,
		ImageURL:    r.ImageURL,
		Active:      r.Active,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
