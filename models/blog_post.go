package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Blog post categories. "All" is a filter sentinel, not a storable category.
const CategoryAll = "All"

var Categories = []string{"Technology", "Lifestyle", "Travel", "Food", "Health", "Business"}

// ValidCategory reports whether c is a storable category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// BlogPost represents a published post. Excerpt is always derived from
// Content server-side and never contains markup.
type BlogPost struct {
	ID         uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title      string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Content    string                      `json:"content" db:"content" gorm:"type:text;not null"`
	Excerpt    string                      `json:"excerpt" db:"excerpt" gorm:"type:text;not null"`
	Category   string                      `json:"category" db:"category" gorm:"type:text;not null;index"`
	CoverImage *string                     `json:"coverImage,omitempty" db:"cover_image" gorm:"type:text"`
	Tags       datatypes.JSONSlice[string] `json:"tags" db:"tags" gorm:"not null"`
	AuthorID   uuid.UUID                   `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index"`
	LikesCount int64                       `json:"likesCount" db:"likes_count" gorm:"type:bigint;not null;default:0"`
	Views      int64                       `json:"views" db:"views" gorm:"type:bigint;not null;default:0"`
	CreatedAt  time.Time                   `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  *time.Time                  `json:"updatedAt,omitempty" db:"updated_at" gorm:"type:timestamp"`

	Author *User `json:"-" gorm:"foreignKey:AuthorID;references:ID"`
}
