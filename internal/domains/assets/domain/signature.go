package domain

import "time"

const (
	ProviderCloudinary = "cloudinary"
	ProviderMinIO      = "minio"
)

// UploadSignature authorises a browser to upload one asset directly to object storage.
// Cloudinary fills Signature/Timestamp/CloudName/APIKey; MinIO fills UploadURL/ObjectKey/ExpiresAt.
type UploadSignature struct {
	Provider  string
	Signature string
	Timestamp int64
	CloudName string
	APIKey    string
	UploadURL string
	ObjectKey string
	ExpiresAt time.Time
}
