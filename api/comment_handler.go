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
	"github.com/rpupo63/bloghub-backend/models"
)

type commentHandler struct {
	responder    Responder
	logger       zerolog.Logger
	commentRepo  *database.CommentRepo
	blogPostRepo *database.BlogPostRepo
}

func newCommentHandler(commentRepo *database.CommentRepo, blogPostRepo *database.BlogPostRepo) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		commentRepo:  commentRepo,
		blogPostRepo: blogPostRepo,
	}
}

// CommentWithUser represents a comment joined with the commenter's profile
type CommentWithUser struct {
	models.Comment
	User *models.PublicProfile `json:"user,omitempty"`
}

// CommentCollection represents multiple comments with their commenters
type CommentCollection struct {
	Comments []CommentWithUser `json:"comments"`
	Total    int               `json:"total,omitempty"`
}

func commentView(comment *models.Comment) CommentWithUser {
	view := CommentWithUser{Comment: *comment}
	if comment.User != nil {
		public := comment.User.Public()
		view.User = &public
	}
	return view
}

// getComments lists a post's comments
// @Summary Get comments
// @Description Lists a blog post's comments newest-first with commenter profiles
// @Tags Comments
// @Accept json
// @Produce json
// @Param blogID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} CommentCollection "List of comments with commenters"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blogID"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching comments"
// @Router /blogs/{blogID}/comments [get]
func (h commentHandler) getComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid blogID"))
			return
		}

		comments, err := h.commentRepo.FindByBlog(blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comments", "comments", err))
			return
		}

		views := make([]CommentWithUser, 0, len(comments))
		for _, comment := range comments {
			views = append(views, commentView(comment))
		}

		h.responder.WriteJSON(w, CommentCollection{Comments: views, Total: len(views)})
	}
}

// createComment adds a comment to a post
// @Summary Create comment
// @Description Adds a comment by the current user to a blog post
// @Tags Comments
// @Accept json
// @Produce json
// @Param blogID path string true "Blog Post ID" format(uuid)
// @Param comment body map[string]string true "Comment content"
// @Success 201 {object} CommentWithUser "Created comment with commenter"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing content"
// @Failure 401 {object} ErrorResponse "Unauthorized - No valid session"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error creating comment"
// @Router /blogs/{blogID}/comments [post]
func (h commentHandler) createComment() http.HandlerFunc {
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

		var req struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode comment request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			h.responder.WriteError(w, errs.NewValidationError("content", "content is required"))
			return
		}

		comment := models.Comment{
			BlogID:  blogID,
			UserID:  user.ID,
			Content: req.Content,
		}
		if err := h.commentRepo.Add(&comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create comment", "comment", err))
			return
		}

		// Reload to pick up the commenter join
		created, err := h.commentRepo.FindByID(comment.ID)
		if err != nil || created == nil {
			h.responder.WriteError(w, wrapDatabaseError("find created comment", "comment", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, commentView(created))
	}
}

// deleteComment deletes a comment by ID
// @Summary Delete comment
// @Description Deletes a comment; only the commenter or an admin may do so
// @Tags Comments
// @Accept json
// @Produce json
// @Param commentID path string true "Comment ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid commentID"
// @Failure 403 {object} ErrorResponse "Forbidden - Not the commenter"
// @Failure 404 {object} ErrorResponse "Not Found - Comment not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error deleting comment"
// @Router /comments/{commentID} [delete]
func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		commentID, err := uuid.Parse(chi.URLParam(r, "commentID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid commentID"))
			return
		}

		comment, err := h.commentRepo.FindByID(commentID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comment", "comment", err))
			return
		}
		if comment == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("comment not found"))
			return
		}
		if comment.UserID != user.ID && !user.IsAdmin {
			h.responder.WriteError(w, errs.NewForbiddenError("only the commenter may delete this comment"))
			return
		}

		if err := h.commentRepo.Delete(commentID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete comment", "comment", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "comment deleted successfully",
		})
	}
}
