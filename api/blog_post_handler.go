package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/rpupo63/bloghub-backend/database"
	"github.com/rpupo63/bloghub-backend/errs"
	"github.com/rpupo63/bloghub-backend/models"
	"github.com/rpupo63/bloghub-backend/services"
)

type blogPostHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo *database.BlogPostRepo
	likeRepo     *database.LikeRepo
}

func newBlogPostHandler(blogPostRepo *database.BlogPostRepo, likeRepo *database.LikeRepo) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
		likeRepo:     likeRepo,
	}
}

// blogAuthor is the author projection embedded in post responses. Email is
// only populated on the detail endpoint.
type blogAuthor struct {
	models.PublicProfile
	Email string `json:"email,omitempty"`
}

// BlogPostWithAuthor represents a blog post joined with its author's profile
type BlogPostWithAuthor struct {
	models.BlogPost
	Author    *blogAuthor `json:"author,omitempty"`
	LikedByMe bool        `json:"likedByMe"`
}

// BlogPostCollection represents multiple blog posts with their authors
type BlogPostCollection struct {
	BlogPosts []BlogPostWithAuthor `json:"blogPosts"`
	Total     int                  `json:"total,omitempty"`
}

func blogPostView(post *models.BlogPost, includeEmail, likedByMe bool) BlogPostWithAuthor {
	view := BlogPostWithAuthor{BlogPost: *post, LikedByMe: likedByMe}
	if post.Author != nil {
		view.Author = &blogAuthor{PublicProfile: post.Author.Public()}
		if includeEmail {
			view.Author.Email = post.Author.Email
		}
	}
	return view
}

// likedByViewer returns which of the listed posts the requesting user has
// liked; anonymous requests get an empty map.
func (h blogPostHandler) likedByViewer(r *http.Request, posts []*models.BlogPost) map[uuid.UUID]bool {
	userID, err := ctxGetUserID(r.Context())
	if err != nil {
		return map[uuid.UUID]bool{}
	}

	ids := make([]uuid.UUID, len(posts))
	for i, post := range posts {
		ids[i] = post.ID
	}

	liked, err := h.likeRepo.LikedBlogIDs(userID, ids)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load liked posts for viewer")
		return map[uuid.UUID]bool{}
	}
	return liked
}

type blogPostRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	Category   *string `json:"category"`
	CoverImage *string `json:"coverImage"`
	Tags       *string `json:"tags"`
}

// getAllBlogPosts lists blog posts with optional category and search filters
// @Summary Get blog posts
// @Description Lists blog posts newest-first with author profiles, filtered by category and a search term matched against title, excerpt, and tags
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param category query string false "Category filter; All passes everything"
// @Param search query string false "Case-insensitive search term"
// @Success 200 {object} BlogPostCollection "List of blog posts with authors"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching blog posts"
// @Router /blogs [get]
func (h blogPostHandler) getAllBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		search := r.URL.Query().Get("search")

		blogPosts, err := h.blogPostRepo.FindAll(category)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog posts", "blog_posts", err))
			return
		}

		blogPosts = services.FilterPosts(blogPosts, category, search)
		liked := h.likedByViewer(r, blogPosts)

		views := make([]BlogPostWithAuthor, 0, len(blogPosts))
		for _, post := range blogPosts {
			views = append(views, blogPostView(post, false, liked[post.ID]))
		}

		h.responder.WriteJSON(w, BlogPostCollection{
			BlogPosts: views,
			Total:     len(views),
		})
	}
}

// getBlogPost retrieves a specific blog post by ID and counts the view
// @Summary Get blog post
// @Description Retrieves a blog post with extended author fields and increments its view counter by one
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param blogID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} BlogPostWithAuthor "Blog post details with author"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blogID"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching blog post"
// @Router /blogs/{blogID} [get]
func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		// Every detail fetch counts, at least once; a failed bump never
		// blocks the read.
		if err := h.blogPostRepo.IncrementViews(blogID); err != nil {
			h.logger.Error().Err(err).Str("blogID", blogID.String()).Msg("Failed to increment views")
		} else {
			blogPost.Views++
		}

		liked := h.likedByViewer(r, []*models.BlogPost{blogPost})

		h.responder.WriteJSON(w, blogPostView(blogPost, true, liked[blogPost.ID]))
	}
}

// createBlogPost creates a new blog post
// @Summary Create blog post
// @Description Creates a blog post authored by the current user; excerpt and tags are derived server-side
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param blogPost body blogPostRequest true "Blog post data"
// @Success 201 {object} BlogPostWithAuthor "Created blog post with author"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blog post data"
// @Failure 401 {object} ErrorResponse "Unauthorized - No valid session"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error creating blog post"
// @Router /blogs [post]
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var req blogPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog post request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Title == nil || *req.Title == "" {
			h.responder.WriteError(w, errs.NewValidationError("title", "title is required"))
			return
		}
		if req.Content == nil || *req.Content == "" {
			h.responder.WriteError(w, errs.NewValidationError("content", "content is required"))
			return
		}
		if req.Category == nil || !models.ValidCategory(*req.Category) {
			h.responder.WriteError(w, errs.NewValidationError("category", "unknown category"))
			return
		}

		tags := []string{}
		if req.Tags != nil {
			tags = services.ParseTags(*req.Tags)
		}

		blogPost := models.BlogPost{
			Title:      *req.Title,
			Content:    *req.Content,
			Excerpt:    services.MakeExcerpt(*req.Content),
			Category:   *req.Category,
			CoverImage: req.CoverImage,
			Tags:       datatypes.JSONSlice[string](tags),
			AuthorID:   user.ID,
		}
		if err := h.blogPostRepo.Add(&blogPost); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create blog post", "blog_post", err))
			return
		}

		// Reload to pick up the author join
		createdBlogPost, err := h.blogPostRepo.FindByID(blogPost.ID)
		if err != nil || createdBlogPost == nil {
			h.responder.WriteError(w, wrapDatabaseError("find created blog post", "blog_post", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, blogPostView(createdBlogPost, false, false))
	}
}

// updateBlogPost updates an existing blog post
// @Summary Update blog post
// @Description Updates a blog post; only its author or an admin may do so
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param blogID path string true "Blog Post ID" format(uuid)
// @Param blogPost body blogPostRequest true "Updated blog post data"
// @Success 200 {object} BlogPostWithAuthor "Updated blog post with author"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blog post data"
// @Failure 403 {object} ErrorResponse "Forbidden - Not the author"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error updating blog post"
// @Router /blogs/{blogID} [put]
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
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

		existing, err := h.blogPostRepo.FindByID(blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}
		if existing.AuthorID != user.ID && !user.IsAdmin {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author may update this post"))
			return
		}

		var req blogPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog post request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Title != nil && *req.Title != "" {
			existing.Title = *req.Title
		}
		if req.Content != nil && *req.Content != "" {
			existing.Content = *req.Content
			existing.Excerpt = services.MakeExcerpt(*req.Content)
		}
		if req.Category != nil {
			if !models.ValidCategory(*req.Category) {
				h.responder.WriteError(w, errs.NewValidationError("category", "unknown category"))
				return
			}
			existing.Category = *req.Category
		}
		if req.CoverImage != nil {
			existing.CoverImage = req.CoverImage
		}
		if req.Tags != nil {
			existing.Tags = datatypes.JSONSlice[string](services.ParseTags(*req.Tags))
		}

		now := time.Now()
		existing.UpdatedAt = &now

		if err := h.blogPostRepo.Update(existing); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update blog post", "blog_post", err))
			return
		}

		updatedBlogPost, err := h.blogPostRepo.FindByID(blogID)
		if err != nil || updatedBlogPost == nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated blog post", "blog_post", err))
			return
		}

		liked := h.likedByViewer(r, []*models.BlogPost{updatedBlogPost})
		h.responder.WriteJSON(w, blogPostView(updatedBlogPost, false, liked[blogID]))
	}
}

// deleteBlogPost deletes a blog post by ID
// @Summary Delete blog post
// @Description Deletes a blog post along with its comments and likes; only its author or an admin may do so
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param blogID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blogID"
// @Failure 403 {object} ErrorResponse "Forbidden - Not the author"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error deleting blog post"
// @Router /blogs/{blogID} [delete]
func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
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

		existing, err := h.blogPostRepo.FindByID(blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}
		if existing.AuthorID != user.ID && !user.IsAdmin {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author may delete this post"))
			return
		}

		if err := h.blogPostRepo.Delete(blogID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete blog post", "blog_post", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "blog post deleted successfully",
		})
	}
}
