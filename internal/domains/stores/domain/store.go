package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrEmptyName   = errors.New("store name is required")
	ErrEmptySlug   = errors.New("store slug is required")
	ErrInvalidSlug = errors.New("store slug may only contain lowercase letters, digits, '-' and '_'")
)

var (
	slugPattern  = regexp.MustCompile(`^[a-z0-9_-]+$`)
	nonSlugChars = regexp.MustCompile(`[^a-z0-9_-]+`)
)

// Store is a tenant of the storefront: it owns products and orders.
type Store struct {
	ID           string
	Name         string
	Slug         string
	About        string
	Template     string
	HeroImage    string
	PrimaryColor string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile carries the optional storefront presentation fields.
type Profile struct {
	About        *string
	Template     *string
	HeroImage    *string
	PrimaryColor *string
}

// NewStore builds a store ensuring name and slug invariants.
func NewStore(name, slug string) (*Store, error) {
	store := &Store{}
	if err := store.Rename(name); err != nil {
		return nil, err
	}
	if err := store.ChangeSlug(slug); err != nil {
		return nil, err
	}
	return store, nil
}

// Rename trims and validates the display name.
func (s *Store) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	s.Name = name
	return nil
}

// ChangeSlug validates the URL-safe identifier.
func (s *Store) ChangeSlug(slug string) error {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return ErrEmptySlug
	}
	if !slugPattern.MatchString(slug) {
		return ErrInvalidSlug
	}
	s.Slug = slug
	return nil
}

// ApplyProfile overwrites the presentation fields that are present.
func (s *Store) ApplyProfile(p Profile) {
	if p.About != nil {
		s.About = strings.TrimSpace(*p.About)
	}
	if p.Template != nil {
		s.Template = strings.TrimSpace(*p.Template)
	}
	if p.HeroImage != nil {
		s.HeroImage = strings.TrimSpace(*p.HeroImage)
	}
	if p.PrimaryColor != nil {
		s.PrimaryColor = strings.TrimSpace(*p.PrimaryColor)
	}
}

// Validate re-applies the invariants before persistence.
func (s *Store) Validate() error {
	if err := s.Rename(s.Name); err != nil {
		return err
	}
	return s.ChangeSlug(s.Slug)
}

// Slugify derives a slug from a store name: lowercase, spaces become '-', anything outside [a-z0-9_-] is dropped.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	return nonSlugChars.ReplaceAllString(slug, "")
}
