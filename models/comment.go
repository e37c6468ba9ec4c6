package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is an append-only remark on a blog post.
type Comment struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	BlogID    uuid.UUID `json:"blogId" db:"blog_id" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;not null;index"`
	Content   string    `json:"content" db:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	User *User `json:"-" gorm:"foreignKey:UserID;references:ID"`
}
