package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/bloghub-backend/models"
)

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// FindAll returns blog posts newest first with authors preloaded, optionally
// narrowed to one category. Search refinement happens above this layer so
// tag matching shares the same code path as title and excerpt matching.
func (r *BlogPostRepo) FindAll(category string) ([]*models.BlogPost, error) {
	query := r.db.Preload("Author").Order("created_at DESC")
	if category != "" && category != models.CategoryAll {
		query = query.Where("category = ?", category)
	}

	var blogPosts []*models.BlogPost
	err := query.Find(&blogPosts).Error
	return blogPosts, err
}

// FindByAuthor returns one author's posts, newest first.
func (r *BlogPostRepo) FindByAuthor(authorID uuid.UUID) ([]*models.BlogPost, error) {
	var blogPosts []*models.BlogPost
	err := r.db.Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&blogPosts).Error
	return blogPosts, err
}

// FindByID returns a blog post with its author, or nil when no such post exists.
func (r *BlogPostRepo) FindByID(id uuid.UUID) (*models.BlogPost, error) {
	var blogPost models.BlogPost
	err := r.db.Preload("Author").First(&blogPost, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blogPost, nil
}

// Add inserts a new blog post into the database
func (r *BlogPostRepo) Add(blogPost *models.BlogPost) error {
	return r.db.Create(blogPost).Error
}

// Update updates an existing blog post in the database
func (r *BlogPostRepo) Update(blogPost *models.BlogPost) error {
	return r.db.Save(blogPost).Error
}

// Delete removes a blog post and its comments and likes in one transaction.
func (r *BlogPostRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.BlogPost{}, "id = ?", id).Error
	})
}

// IncrementViews bumps the view counter atomically server-side. Each call
// counts: there is no per-viewer dedup.
func (r *BlogPostRepo) IncrementViews(id uuid.UUID) error {
	return r.db.Model(&models.BlogPost{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}
