package user

import (
	"time"
)

// User represents a registered account. The password is stored only as a
// bcrypt hash; the plaintext never leaves the registration request.
type User struct {
	ID           string `gorm:"primaryKey;type:text"`
	Name         string `gorm:"not null;type:text"`
	Email        string `gorm:"uniqueIndex;not null;type:text"`
	PasswordHash string `gorm:"not null;type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Claims is the identity a validated session token asserts. The auth
// middleware attaches it to the request context; downstream code trusts it
// and never re-derives identity from the request.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}
