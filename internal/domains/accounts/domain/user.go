package domain

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// RoleOwner is the only role today: the merchant who registered the store.
const RoleOwner = "OWNER"

// PasswordCost is the bcrypt work factor for new hashes.
const PasswordCost = bcrypt.DefaultCost

const minPasswordLength = 6

var (
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrEmptyPassword = errors.New("password is required")
	ErrWeakPassword  = errors.New("password must be at least 6 characters")
	ErrEmptyName     = errors.New("name is required")
	ErrMissingStore  = errors.New("user store is required")
)

// User is a merchant account bound to exactly one store.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	StoreID      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewOwner builds a store owner with a bcrypt password hash. StoreID is assigned on registration.
func NewOwner(email, password, name string) (*User, error) {
	user := &User{Role: RoleOwner}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name == "" {
		return nil, ErrEmptyName
	}
	user.Name = name
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	return user, nil
}

// NormalizeEmail trims and lowercases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) SetEmail(email string) error {
	email = NormalizeEmail(email)
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// SetPassword validates strength and stores the bcrypt hash.
func (u *User) SetPassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares the supplied password with the stored hash.
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Validate re-checks invariants before persistence.
func (u *User) Validate() error {
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	if u.PasswordHash == "" {
		return ErrEmptyPassword
	}
	if strings.TrimSpace(u.StoreID) == "" {
		return ErrMissingStore
	}
	return nil
}
