package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/bloghub-backend/errs"
	"github.com/rpupo63/bloghub-backend/services"
)

type mediaHandler struct {
	responder Responder
	logger    zerolog.Logger
	storage   *services.MediaStorage
}

func newMediaHandler(storage *services.MediaStorage) mediaHandler {
	logger := log.With().Str("handlerName", "mediaHandler").Logger()

	return mediaHandler{
		responder: NewResponder(logger),
		logger:    logger,
		storage:   storage,
	}
}

// createUploadURL presigns an image upload destination
// @Summary Create upload URL
// @Description Returns a presigned PUT URL for a cover or profile image plus its eventual public URL
// @Tags Media
// @Accept json
// @Produce json
// @Param upload body map[string]string true "Filename whose extension decides the content type"
// @Success 200 {object} services.UploadTarget "Upload destination"
// @Failure 400 {object} ErrorResponse "Bad Request - Unsupported extension"
// @Failure 503 {object} ErrorResponse "Service Unavailable - Media storage not configured"
// @Router /media/upload-url [post]
func (h mediaHandler) createUploadURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		if h.storage == nil {
			h.responder.WriteError(w, errs.NewApiErr(http.StatusServiceUnavailable, "media storage not configured"))
			return
		}

		var req struct {
			Filename string `json:"filename"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode upload request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.Filename == "" {
			h.responder.WriteError(w, errs.NewValidationError("filename", "filename is required"))
			return
		}

		target, err := h.storage.NewUploadTarget(r.Context(), user.ID, req.Filename)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError(err.Error()))
			return
		}

		h.responder.WriteJSON(w, target)
	}
}
