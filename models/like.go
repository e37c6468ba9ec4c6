package models

import (
	"time"

	"github.com/google/uuid"
)

// Like joins a user to a blog post. The composite unique index keeps the
// at-most-one-row-per-pair invariant even if two toggles race.
type Like struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	BlogID    uuid.UUID `json:"blogId" db:"blog_id" gorm:"type:uuid;not null;uniqueIndex:idx_like_blog_user"`
	UserID    uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_like_blog_user"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
