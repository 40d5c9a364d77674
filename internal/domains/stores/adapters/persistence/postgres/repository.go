package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-storefront/internal/domains/stores/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/stores/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists stores using GORM. It accepts a *gorm.DB or an open transaction.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type storeRecord struct {
	ID           string    `gorm:"primaryKey;column:id;size:36"`
	Name         string    `gorm:"column:name"`
	Slug         string    `gorm:"column:slug;uniqueIndex"`
	About        string    `gorm:"column:about"`
	Template     string    `gorm:"column:template"`
	HeroImage    string    `gorm:"column:hero_image"`
	PrimaryColor string    `gorm:"column:primary_color"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (storeRecord) TableName() string { return "stores" }

// Models lists the GORM models owned by this adapter for schema migration.
func Models() []any {
	return []any{&storeRecord{}}
}

func (r *Repository) Create(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("store is nil")
	}
	if err := store.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(store)
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, translate(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) Update(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("store is nil")
	}
	if err := store.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(store)
	result := r.db.WithContext(ctx).Model(&storeRecord{}).Where("id = ?", record.ID).Updates(map[string]any{
		"name":          record.Name,
		"slug":          record.Slug,
		"about":         record.About,
		"template":      record.Template,
		"hero_image":    record.HeroImage,
		"primary_color": record.PrimaryColor,
		"updated_at":    time.Now().UTC(),
	})
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *Repository) List(ctx context.Context) ([]*domain.Store, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []storeRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	stores := make([]*domain.Store, 0, len(records))
	for i := range records {
		stores = append(stores, records[i].toDomain())
	}
	return stores, nil
}

func (r *Repository) first(ctx context.Context, query string, arg any) (*domain.Store, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record storeRecord
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
		return errors.New("postgres store repository not configured")
	}
	return nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ports.ErrSlugTaken
	}
	return err
}

func toRecord(store *domain.Store) storeRecord {
	return storeRecord{
		ID:           store.ID,
		Name:         store.Name,
		Slug:         store.Slug,
		About:        store.About,
		Template:     store.Template,
		HeroImage:    store.HeroImage,
		PrimaryColor: store.PrimaryColor,
		CreatedAt:    store.CreatedAt,
		UpdatedAt:    store.UpdatedAt,
	}
}

func (r storeRecord) toDomain() *domain.Store {
	return &domain.Store{
		ID:           r.ID,
		Name:         r.Name,
		Slug:         r.Slug,
		About:        r.About,
		Template:     r.Template,
		HeroImage:    r.HeroImage,
		PrimaryColor: r.PrimaryColor,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
