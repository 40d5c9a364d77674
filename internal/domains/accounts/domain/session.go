package domain

import "time"

// Principal is the authenticated caller carried by a token.
type Principal struct {
	UserID  string
	StoreID string
	Role    string
	// TokenID is the JWT jti, also the session id.
	TokenID   string
	ExpiresAt time.Time
}

// CanActOn reports whether the principal owns the store.
func (p Principal) CanActOn(storeID string) bool {
	return p.StoreID != "" && p.StoreID == storeID
}

// Session records an issued token so it can be revoked before it expires.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
}
