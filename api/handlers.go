package api

import (
	"github.com/rpupo63/bloghub-backend/auth"
	"github.com/rpupo63/bloghub-backend/database"
	"github.com/rpupo63/bloghub-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, tokens *auth.Tokens, events *services.SessionEvents, media *services.MediaStorage) *routeHandlers {
	return &routeHandlers{
		authHandler:     newAuthHandler(db.UserRepo(), tokens, events),
		blogPostHandler: newBlogPostHandler(db.BlogPostRepo(), db.LikeRepo()),
		commentHandler:  newCommentHandler(db.CommentRepo(), db.BlogPostRepo()),
		likeHandler:     newLikeHandler(db.LikeRepo(), db.BlogPostRepo()),
		userHandler:     newUserHandler(db.UserRepo(), db.BlogPostRepo(), db.LikeRepo()),
		adminHandler:    newAdminHandler(db.UserRepo(), db.BlogPostRepo()),
		mediaHandler:    newMediaHandler(media),
	}
}
