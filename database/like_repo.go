package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/bloghub-backend/models"
)

type LikeRepo struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) *LikeRepo {
	return &LikeRepo{db}
}

// Find returns the like for (blog, user), or nil when none exists.
func (r *LikeRepo) Find(blogID, userID uuid.UUID) (*models.Like, error) {
	var like models.Like
	err := r.db.First(&like, "blog_id = ? AND user_id = ?", blogID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// Toggle flips the like for (blog, user) and keeps the post's counter in
// step. The check-then-act runs inside a transaction and the composite
// unique index on likes backstops a racing duplicate insert; the decrement
// floors at zero. Returns the resulting liked state and counter.
func (r *LikeRepo) Toggle(blogID, userID uuid.UUID) (bool, int64, error) {
	var liked bool

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		findErr := tx.First(&existing, "blog_id = ? AND user_id = ?", blogID, userID).Error

		switch {
		case findErr == nil:
			if err := tx.Delete(&models.Like{}, "id = ?", existing.ID).Error; err != nil {
				return err
			}
			liked = false
			return tx.Model(&models.BlogPost{}).
				Where("id = ?", blogID).
				UpdateColumn("likes_count", gorm.Expr("GREATEST(likes_count - 1, 0)")).Error

		case errors.Is(findErr, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Like{BlogID: blogID, UserID: userID}).Error; err != nil {
				return err
			}
			liked = true
			return tx.Model(&models.BlogPost{}).
				Where("id = ?", blogID).
				UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error

		default:
			return findErr
		}
	})
	if err != nil {
		return false, 0, err
	}

	var count int64
	err = r.db.Model(&models.BlogPost{}).
		Select("likes_count").
		Where("id = ?", blogID).
		Scan(&count).Error
	return liked, count, err
}

// LikedBlogIDs returns which of the given posts the user has liked.
func (r *LikeRepo) LikedBlogIDs(userID uuid.UUID, blogIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool, len(blogIDs))
	if len(blogIDs) == 0 {
		return liked, nil
	}

	var likes []models.Like
	err := r.db.Where("user_id = ? AND blog_id IN ?", userID, blogIDs).Find(&likes).Error
	if err != nil {
		return nil, err
	}
	for _, like := range likes {
		liked[like.BlogID] = true
	}
	return liked, nil
}
