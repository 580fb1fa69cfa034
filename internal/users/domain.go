package users

import "time"

// User represents a user account for management and listings. The password
// hash never leaves the repository layer here; credential checks are the
// IAM core's concern.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
