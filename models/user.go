package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account profile. PasswordHash never leaves the server.
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Username     string    `json:"username" db:"username" gorm:"type:text;not null;unique"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null;unique"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	ProfileImage string    `json:"profileImage" db:"profile_image" gorm:"type:text;not null"`
	Bio          *string   `json:"bio,omitempty" db:"bio" gorm:"type:text"`
	IsAdmin      bool      `json:"isAdmin" db:"is_admin" gorm:"type:boolean;not null;default:false"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// PublicProfile is the author/commenter shape embedded in blog and comment
// responses. Email is withheld; the detail endpoint adds it separately.
type PublicProfile struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	ProfileImage string    `json:"profileImage"`
	Bio          *string   `json:"bio,omitempty"`
}

// Public strips the private fields from a user.
func (u User) Public() PublicProfile {
	return PublicProfile{
		ID:           u.ID,
		Username:     u.Username,
		ProfileImage: u.ProfileImage,
		Bio:          u.Bio,
	}
}
