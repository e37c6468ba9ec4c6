package database

import (
	"gorm.io/gorm"
)

type Database struct {
	userRepo     *UserRepo
	blogPostRepo *BlogPostRepo
	commentRepo  *CommentRepo
	likeRepo     *LikeRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:     NewUserRepo(db),
		blogPostRepo: NewBlogPostRepo(db),
		commentRepo:  NewCommentRepo(db),
		likeRepo:     NewLikeRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) LikeRepo() *LikeRepo {
	return d.likeRepo
}
