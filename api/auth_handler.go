package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/bloghub-backend/auth"
	"github.com/rpupo63/bloghub-backend/database"
	"github.com/rpupo63/bloghub-backend/errs"
	"github.com/rpupo63/bloghub-backend/models"
	"github.com/rpupo63/bloghub-backend/services"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	tokens    *auth.Tokens
	events    *services.SessionEvents
}

func newAuthHandler(userRepo *database.UserRepo, tokens *auth.Tokens, events *services.SessionEvents) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		tokens:    tokens,
		events:    events,
	}
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionResponse pairs a fresh token with the profile it belongs to.
type sessionResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// signUp creates an auth identity and its linked profile
// @Summary Sign up
// @Description Creates a new account with a deterministic default avatar and returns a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body signUpRequest true "Sign-up data"
// @Success 201 {object} sessionResponse "Session token and profile"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid credentials"
// @Failure 409 {object} ErrorResponse "Conflict - Email or username taken"
// @Router /auth/signup [post]
func (h authHandler) signUp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode sign-up request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		req.Email = strings.TrimSpace(req.Email)
		req.Username = strings.TrimSpace(req.Username)

		if req.Email == "" || !strings.Contains(req.Email, "@") {
			h.responder.WriteError(w, errs.NewValidationError("email", "a valid email is required"))
			return
		}
		if len(req.Password) < auth.MinPasswordLength {
			h.responder.WriteError(w, errs.NewValidationError("password",
				fmt.Sprintf("password must be at least %d characters", auth.MinPasswordLength)))
			return
		}
		if req.Username == "" {
			h.responder.WriteError(w, errs.NewValidationError("username", "username is required"))
			return
		}

		if existing, err := h.userRepo.FindByEmail(req.Email); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		} else if existing != nil {
			h.responder.WriteError(w, errs.NewAlreadyExists("email"))
			return
		}
		if existing, err := h.userRepo.FindByUsername(req.Username); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		} else if existing != nil {
			h.responder.WriteError(w, errs.NewAlreadyExists("username"))
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to hash password"))
			return
		}

		user := models.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: hash,
			ProfileImage: services.DefaultProfileImage(req.Username),
		}
		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create user", "user", err))
			return
		}

		token, err := h.tokens.Issue(user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to issue session token"))
			return
		}

		h.events.Publish(r.Context(), services.SessionEvent{
			Kind:     services.EventSignedIn,
			UserID:   user.ID,
			Username: user.Username,
		})

		h.responder.WriteJSONStatus(w, http.StatusCreated, sessionResponse{Token: token, User: &user})
	}
}

// signIn establishes a session from email and password
// @Summary Sign in
// @Description Verifies credentials and returns a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body signInRequest true "Sign-in data"
// @Success 200 {object} sessionResponse "Session token and profile"
// @Failure 401 {object} ErrorResponse "Unauthorized - Invalid credentials"
// @Router /auth/signin [post]
func (h authHandler) signIn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode sign-in request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		user, err := h.userRepo.FindByEmail(strings.TrimSpace(req.Email))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		// Same response for unknown email and wrong password.
		if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid email or password"))
			return
		}

		token, err := h.tokens.Issue(user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to issue session token"))
			return
		}

		h.events.Publish(r.Context(), services.SessionEvent{
			Kind:     services.EventSignedIn,
			UserID:   user.ID,
			Username: user.Username,
		})

		h.responder.WriteJSON(w, sessionResponse{Token: token, User: user})
	}
}

// signOut revokes the presented session token
// @Summary Sign out
// @Description Revokes the session token so it can no longer authenticate requests
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string "Success message"
// @Failure 401 {object} ErrorResponse "Unauthorized - No valid session"
// @Router /auth/signout [post]
func (h authHandler) signOut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		rawToken, err := ctxGetToken(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		if err := h.tokens.Revoke(r.Context(), rawToken); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.events.Publish(r.Context(), services.SessionEvent{
			Kind:     services.EventSignedOut,
			UserID:   user.ID,
			Username: user.Username,
		})

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "signed out",
		})
	}
}

func clearWriteDeadline(w http.ResponseWriter, logger zerolog.Logger) {
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		logger.Warn().Err(err).Msg("Failed to clear write deadline for event stream")
	}
}

// sessionEvents streams session-changed notifications over SSE
// @Summary Session events
// @Description Server-sent event stream of signed_in / signed_out notifications
// @Tags Auth
// @Produce text/event-stream
// @Router /auth/events [get]
func (h authHandler) sessionEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			h.responder.WriteError(w, errs.NewInternalError("streaming unsupported"))
			return
		}

		// The stream outlives the server's WriteTimeout, which sets one
		// absolute deadline per response. Clear it so the connection lives
		// until the client goes away.
		clearWriteDeadline(w, h.logger)

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		flusher.Flush()

		events := h.events.Subscribe(r.Context())
		keepalive := time.NewTicker(30 * time.Second)
		defer keepalive.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-keepalive.C:
				fmt.Fprint(w, ": keepalive\n\n")
				flusher.Flush()
			case event, ok := <-events:
				if !ok {
					return
				}
				payload, err := json.Marshal(event)
				if err != nil {
					h.logger.Error().Err(err).Msg("Failed to marshal session event")
					continue
				}
				fmt.Fprintf(w, "event: session-changed\ndata: %s\n\n", payload)
				flusher.Flush()
			}
		}
	}
}
