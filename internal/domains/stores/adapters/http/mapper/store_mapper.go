package mapper

import (
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/stores/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/stores/ports"
)

// Store is the HTTP representation of a tenant store.
type Store struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	About        *string   `json:"about"`
	Template     *string   `json:"template"`
	HeroImage    *string   `json:"heroImage"`
	PrimaryColor *string   `json:"primaryColor"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateStore is the inbound payload of createStore.
type CreateStore struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

// UpdateStore preserves field presence so absent fields stay untouched.
type UpdateStore struct {
	Name         *string `json:"name"`
	Slug         *string `json:"slug"`
	About        *string `json:"about"`
	Template     *string `json:"template"`
	HeroImage    *string `json:"heroImage"`
	PrimaryColor *string `json:"primaryColor"`
}

// ToUpdateInput maps the patch payload onto the service input.
func ToUpdateInput(id string, payload UpdateStore) ports.UpdateStoreInput {
	return ports.UpdateStoreInput{
		ID:   id,
		Name: payload.Name,
		Slug: payload.Slug,
		Profile: domain.Profile{
			About:        payload.About,
			Template:     payload.Template,
			HeroImage:    payload.HeroImage,
			PrimaryColor: payload.PrimaryColor,
		},
	}
}

// FromDomainStore converts a domain store into its transport form. Empty optional fields render as null.
func FromDomainStore(store *domain.Store) Store {
	if store == nil {
		return Store{}
	}
	return Store{
		ID:           store.ID,
		Name:         store.Name,
		Slug:         store.Slug,
		About:        optional(store.About),
		Template:     optional(store.Template),
		HeroImage:    optional(store.HeroImage),
		PrimaryColor: optional(store.PrimaryColor),
		CreatedAt:    store.CreatedAt,
		UpdatedAt:    store.UpdatedAt,
	}
}

// FromDomainStores converts a slice of stores.
func FromDomainStores(stores []*domain.Store) []Store {
	result := make([]Store, 0, len(stores))
	for _, store := range stores {
		result = append(result, FromDomainStore(store))
	}
	return result
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
