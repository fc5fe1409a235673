package models

// AuditLog records sensitive user operations for security and compliance.
// UserID is nil for admin actions made with the API key.
type AuditLog struct {
	Base
	UserID       *string `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action       string  `gorm:"not null" json:"action"`
	ResourceType string  `gorm:"not null" json:"resource_type"`
	ResourceID   string  `json:"resource_id"`
	IPAddress    string  `json:"ip_address"`
	Changes      string  `json:"changes,omitempty"`
}
