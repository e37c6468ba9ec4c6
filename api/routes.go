package api

import (
	"github.com/go-chi/chi/v5"
)

// setupFrontendRoutes sets up all routes with authentication
func setupFrontendRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Session endpoints; signup/signin/events carry no token yet
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/auth/signup", handlers.authHandler.signUp())
		r.Post("/auth/signin", handlers.authHandler.signIn())
		r.Get("/auth/events", handlers.authHandler.sessionEvents())
	})

	// Public reads; a token is optional and only enriches liked-by-me fields
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticateOptional)

		r.Get("/blogs", handlers.blogPostHandler.getAllBlogPosts())
		r.Get("/blogs/{blogID}", handlers.blogPostHandler.getBlogPost())
		r.Get("/blogs/{blogID}/comments", handlers.commentHandler.getComments())
		r.Get("/users/{userID}/blogs", handlers.userHandler.getUserBlogs())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticate)

		r.Post("/auth/signout", handlers.authHandler.signOut())
		r.Get("/me", handlers.userHandler.getMe())
		r.Put("/me", handlers.userHandler.updateMe())

		r.Post("/blogs", handlers.blogPostHandler.createBlogPost())
		r.Put("/blogs/{blogID}", handlers.blogPostHandler.updateBlogPost())
		r.Delete("/blogs/{blogID}", handlers.blogPostHandler.deleteBlogPost())

		r.Post("/blogs/{blogID}/comments", handlers.commentHandler.createComment())
		r.Delete("/comments/{commentID}", handlers.commentHandler.deleteComment())

		r.Post("/blogs/{blogID}/like", handlers.likeHandler.toggleLike())
		r.Get("/blogs/{blogID}/liked", handlers.likeHandler.checkIfLiked())

		r.Post("/media/upload-url", handlers.mediaHandler.createUploadURL())
	})

	// Admin routes; is_admin is enforced here, not in the client
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticate)
		r.Use(authMiddleware.requireAdmin)

		r.Get("/admin/users", handlers.adminHandler.getAllUsers())
		r.Get("/admin/blogs", handlers.adminHandler.getAllBlogPosts())
		r.Get("/admin/overview", handlers.adminHandler.getOverview())
	})
}
