package models

// Resource is a test-rig record. Every field except ID is nullable; a nil
// pointer is stored as NULL and serialized as null.
type Resource struct {
	ID           int64   `json:"id"`
	ResourceName *string `json:"resource_name"`
	Status       *string `json:"status"`       // e.g. "active", "removed", "maintenance"
	Description  *string `json:"description"`
	ResourceType *string `json:"resource_type"` // e.g. "HIL", "Boxcar", "Test bench"
}

// APIUser is an account of the resource API. No endpoint reads or writes it yet.
type APIUser struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	CDSID        string `json:"cdsid"`
	PasswordHash string `json:"-"`
	Username     string `json:"username"`
	UserType     string `json:"userType"`
}

// UserGroup groups API users. No endpoint reads or writes it yet.
type UserGroup struct {
	ID          int64  `json:"id"`
	GroupName   string `json:"groupName"`
	Description string `json:"description"`
}
