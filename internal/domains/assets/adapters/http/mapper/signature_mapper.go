package mapper

import (
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/assets/domain"
)

// UploadSignature is the HTTP representation of getUploadSignature. Only the
// fields of the active provider are populated.
type UploadSignature struct {
	Provider  string     `json:"provider"`
	Signature string     `json:"signature,omitempty"`
	Timestamp int64      `json:"timestamp,omitempty"`
	CloudName string     `json:"cloudName,omitempty"`
	APIKey    string     `json:"apiKey,omitempty"`
	UploadURL string     `json:"uploadUrl,omitempty"`
	ObjectKey string     `json:"objectKey,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func FromDomainSignature(sig *domain.UploadSignature) UploadSignature {
	if sig == nil {
		return UploadSignature{}
	}
	out := UploadSignature{
		Provider:  sig.Provider,
		Signature: sig.Signature,
		Timestamp: sig.Timestamp,
		CloudName: sig.CloudName,
		APIKey:    sig.APIKey,
		UploadURL: sig.UploadURL,
		ObjectKey: sig.ObjectKey,
	}
	if !sig.ExpiresAt.IsZero() {
		expires := sig.ExpiresAt
		out.ExpiresAt = &expires
	}
	return out
}
