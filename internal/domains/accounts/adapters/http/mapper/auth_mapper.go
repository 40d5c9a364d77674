package mapper

import (
	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/ports"
	storesmapper "github.com/Apurer/go-gin-storefront/internal/domains/stores/adapters/http/mapper"
)

// Register is the inbound payload of register.
type Register struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Name      string `json:"name" binding:"required"`
	StoreName string `json:"storeName" binding:"required"`
}

// Login is the inbound payload of login.
type Login struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// User is the public view of an account; the password hash never leaves the service.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	StoreID string `json:"storeId"`
}

// AuthPayload is returned by register and login.
type AuthPayload struct {
	Token string              `json:"token"`
	User  User                `json:"user"`
	Store *storesmapper.Store `json:"store"`
}

func ToRegisterInput(payload Register) ports.RegisterInput {
	return ports.RegisterInput{
		Email:     payload.Email,
		Password:  payload.Password,
		Name:      payload.Name,
		StoreName: payload.StoreName,
	}
}

// FromDomainUser converts a domain user into the transport representation.
func FromDomainUser(user *domain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Role:    user.Role,
		StoreID: user.StoreID,
	}
}

// FromAuthResult converts a register or login result.
func FromAuthResult(result *ports.AuthResult) AuthPayload {
	if result == nil {
		return AuthPayload{}
	}
	payload := AuthPayload{Token: result.Token, User: FromDomainUser(result.User)}
	if result.Store != nil {
		store := storesmapper.FromDomainStore(result.Store)
		payload.Store = &store
	}
	return payload
}
