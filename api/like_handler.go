package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/bloghub-backend/database"
	"github.com/rpupo63/bloghub-backend/errs"
)

type likeHandler struct {
	responder    Responder
	logger       zerolog.Logger
	likeRepo     *database.LikeRepo
	blogPostRepo *database.BlogPostRepo
}

func newLikeHandler(likeRepo *database.LikeRepo, blogPostRepo *database.BlogPostRepo) likeHandler {
	logger := log.With().Str("handlerName", "likeHandler").Logger()

	return likeHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		likeRepo:     likeRepo,
		blogPostRepo: blogPostRepo,
	}
}

// LikeState reports the liked flag and counter after a toggle or check
type LikeState struct {
	BlogID     uuid.UUID `json:"blogId"`
	Liked      bool      `json:"liked"`
	LikesCount int64     `json:"likesCount"`
}

// toggleLike flips the current user's like on a post
// @Summary Toggle like
// @Description Likes the post if unliked, unlikes it if liked; two sequential toggles restore the original state
// @Tags Likes
// @Accept json
// @Produce json
// @Param blogID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} LikeState "Resulting liked state and counter"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blogID"
// @Failure 401 {object} ErrorResponse "Unauthorized - No valid session"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error toggling like"
// @Router /blogs/{blogID}/like [post]
func (h likeHandler) toggleLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid blogID"))
			return
		}

		blogPost, err := h.blogPostRepo.FindByID(blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if blogPost == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		liked, count, err := h.likeRepo.Toggle(blogID, user.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("toggle like", "like", err))
			return
		}

		h.responder.WriteJSON(w, LikeState{BlogID: blogID, Liked: liked, LikesCount: count})
	}
}

// checkIfLiked reports whether the current user has liked a post
// @Summary Check liked
// @Description Reports the current user's liked state and the post's like counter
// @Tags Likes
// @Accept json
// @Produce json
// @Param blogID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} LikeState "Liked state and counter"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blogID"
// @Failure 401 {object} ErrorResponse "Unauthorized - No valid session"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error checking like"
// @Router /blogs/{blogID}/liked [get]
func (h likeHandler) checkIfLiked() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid blogID"))
			return
		}

		blogPost, err := h.blogPostRepo.FindByID(blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if blogPost == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		like, err := h.likeRepo.Find(blogID, user.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find like", "like", err))
			return
		}

		h.responder.WriteJSON(w, LikeState{
			BlogID:     blogID,
			Liked:      like != nil,
			LikesCount: blogPost.LikesCount,
		})
	}
}
