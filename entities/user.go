package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	Name           string    `json:"name,omitempty"`
	PasswordHash   string    `json:"-"`
	IsAdmin        bool      `json:"is_admin"`
	IsNutritionist bool      `json:"is_nutritionist"`

	Timestamp
}

// AuthSession is a server-side bearer credential. The token column is the
// opaque secret presented by clients; a session is live only while
// now < expires_at.
type AuthSession struct {
	Token     string    `gorm:"primary_key" json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	IssuedAt  time.Time `gorm:"type:timestamp" json:"issued_at"`
	ExpiresAt time.Time `gorm:"type:timestamp" json:"expires_at"`

	User *User `gorm:"foreignKey:UserID"`
}

type Subscription struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Plan      string    `json:"plan"`
	Status    string    `json:"status"` // "active", "cancelled", "expired"
	ExpiresAt time.Time `gorm:"type:timestamp" json:"expires_at"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

type UserBalance struct {
	UserID  uuid.UUID `gorm:"type:uuid;primary_key" json:"user_id"`
	Balance float64   `json:"balance"`

	Timestamp
}
