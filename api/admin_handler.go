package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/bloghub-backend/database"
	"github.com/rpupo63/bloghub-backend/models"
)

type adminHandler struct {
	responder    Responder
	logger       zerolog.Logger
	userRepo     *database.UserRepo
	blogPostRepo *database.BlogPostRepo
}

func newAdminHandler(userRepo *database.UserRepo, blogPostRepo *database.BlogPostRepo) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		userRepo:     userRepo,
		blogPostRepo: blogPostRepo,
	}
}

// UserCollection represents all profiles for the admin view
type UserCollection struct {
	Users []*models.User `json:"users"`
	Total int            `json:"total,omitempty"`
}

// AdminOverview bundles users and posts for the admin dashboard
type AdminOverview struct {
	Users      []*models.User       `json:"users"`
	BlogPosts  []BlogPostWithAuthor `json:"blogPosts"`
	UserCount  int                  `json:"userCount"`
	BlogCount  int                  `json:"blogCount"`
	TotalViews int64                `json:"totalViews"`
	TotalLikes int64                `json:"totalLikes"`
}

// getAllUsers lists every profile
// @Summary Get all users
// @Description Lists every profile newest-first; admin only
// @Tags Admin
// @Produce json
// @Success 200 {object} UserCollection "List of profiles"
// @Failure 403 {object} ErrorResponse "Forbidden - Admin only"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching users"
// @Router /admin/users [get]
func (h adminHandler) getAllUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.userRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find users", "users", err))
			return
		}

		h.responder.WriteJSON(w, UserCollection{Users: users, Total: len(users)})
	}
}

// getAllBlogPosts lists every post with its author
// @Summary Get all blog posts (admin)
// @Description Lists every post newest-first with author profiles; admin only
// @Tags Admin
// @Produce json
// @Success 200 {object} BlogPostCollection "List of blog posts with authors"
// @Failure 403 {object} ErrorResponse "Forbidden - Admin only"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching blog posts"
// @Router /admin/blogs [get]
func (h adminHandler) getAllBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPosts, err := h.blogPostRepo.FindAll("")
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog posts", "blog_posts", err))
			return
		}

		views := make([]BlogPostWithAuthor, 0, len(blogPosts))
		for _, post := range blogPosts {
			views = append(views, blogPostView(post, false, false))
		}

		h.responder.WriteJSON(w, BlogPostCollection{BlogPosts: views, Total: len(views)})
	}
}

// getOverview serves the admin dashboard in one round trip
// @Summary Admin overview
// @Description Users and posts fetched concurrently, with aggregate counters; admin only
// @Tags Admin
// @Produce json
// @Success 200 {object} AdminOverview "Dashboard data"
// @Failure 403 {object} ErrorResponse "Forbidden - Admin only"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching overview"
// @Router /admin/overview [get]
func (h adminHandler) getOverview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			users     []*models.User
			blogPosts []*models.BlogPost
		)

		g, _ := errgroup.WithContext(r.Context())
		g.Go(func() error {
			var err error
			users, err = h.userRepo.FindAll()
			return err
		})
		g.Go(func() error {
			var err error
			blogPosts, err = h.blogPostRepo.FindAll("")
			return err
		})
		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("load overview", "admin_overview", err))
			return
		}

		overview := AdminOverview{
			Users:     users,
			BlogPosts: make([]BlogPostWithAuthor, 0, len(blogPosts)),
			UserCount: len(users),
			BlogCount: len(blogPosts),
		}
		for _, post := range blogPosts {
			overview.BlogPosts = append(overview.BlogPosts, blogPostView(post, false, false))
			overview.TotalViews += post.Views
			overview.TotalLikes += post.LikesCount
		}

		h.responder.WriteJSON(w, overview)
	}
}
