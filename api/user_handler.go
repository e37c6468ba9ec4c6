package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/bloghub-backend/database"
	"github.com/rpupo63/bloghub-backend/errs"
)

type userHandler struct {
	responder    Responder
	logger       zerolog.Logger
	userRepo     *database.UserRepo
	blogPostRepo *database.BlogPostRepo
	likeRepo     *database.LikeRepo
}

func newUserHandler(userRepo *database.UserRepo, blogPostRepo *database.BlogPostRepo, likeRepo *database.LikeRepo) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		userRepo:     userRepo,
		blogPostRepo: blogPostRepo,
		likeRepo:     likeRepo,
	}
}

// getMe returns the current user's profile
// @Summary Get current user
// @Description Resolves the active session to its profile
// @Tags Users
// @Produce json
// @Success 200 {object} models.User "Current profile"
// @Failure 401 {object} ErrorResponse "Unauthorized - No valid session"
// @Router /me [get]
func (h userHandler) getMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		h.responder.WriteJSON(w, user)
	}
}

type profileUpdateRequest struct {
	Username     *string `json:"username"`
	Bio          *string `json:"bio"`
	ProfileImage *string `json:"profileImage"`
}

// updateMe updates the current user's profile
// @Summary Update profile
// @Description Updates the current user's username, bio, or profile image
// @Tags Users
// @Accept json
// @Produce json
// @Param profile body profileUpdateRequest true "Profile fields to update"
// @Success 200 {object} models.User "Updated profile"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid profile data"
// @Failure 409 {object} ErrorResponse "Conflict - Username taken"
// @Router /me [put]
func (h userHandler) updateMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var req profileUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode profile update request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Username != nil {
			username := strings.TrimSpace(*req.Username)
			if username == "" {
				h.responder.WriteError(w, errs.NewValidationError("username", "username cannot be empty"))
				return
			}
			if username != user.Username {
				existing, err := h.userRepo.FindByUsername(username)
				if err != nil {
					h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
					return
				}
				if existing != nil {
					h.responder.WriteError(w, errs.NewAlreadyExists("username"))
					return
				}
				user.Username = username
			}
		}
		if req.Bio != nil {
			user.Bio = req.Bio
		}
		if req.ProfileImage != nil && *req.ProfileImage != "" {
			user.ProfileImage = *req.ProfileImage
		}

		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update user", "user", err))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

// getUserBlogs lists one author's posts
// @Summary Get a user's blog posts
// @Description Lists the posts authored by a user, newest first
// @Tags Users
// @Produce json
// @Param userID path string true "User ID" format(uuid)
// @Success 200 {object} BlogPostCollection "List of blog posts with authors"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid userID"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching blog posts"
// @Router /users/{userID}/blogs [get]
func (h userHandler) getUserBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		blogPosts, err := h.blogPostRepo.FindByAuthor(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog posts", "blog_posts", err))
			return
		}

		liked := map[uuid.UUID]bool{}
		if viewerID, err := ctxGetUserID(r.Context()); err == nil {
			ids := make([]uuid.UUID, len(blogPosts))
			for i, post := range blogPosts {
				ids[i] = post.ID
			}
			if liked, err = h.likeRepo.LikedBlogIDs(viewerID, ids); err != nil {
				h.logger.Error().Err(err).Msg("Failed to load liked posts for viewer")
				liked = map[uuid.UUID]bool{}
			}
		}

		views := make([]BlogPostWithAuthor, 0, len(blogPosts))
		for _, post := range blogPosts {
			views = append(views, blogPostView(post, false, liked[post.ID]))
		}

		h.responder.WriteJSON(w, BlogPostCollection{BlogPosts: views, Total: len(views)})
	}
}
