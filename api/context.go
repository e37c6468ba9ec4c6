package api

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rpupo63/bloghub-backend/models"
)

type keyType string

const (
	userIDKey keyType = "userID"
	userKey   keyType = "user"
	tokenKey  keyType = "token"
)

// ctxWithUser adds the authenticated user and their raw token to the context
func ctxWithUser(ctx context.Context, user *models.User, rawToken string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, user.ID)
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, tokenKey, rawToken)
}

// ctxGetUser retrieves the authenticated user from the context
func ctxGetUser(ctx context.Context) (*models.User, error) {
	user, ok := ctx.Value(userKey).(*models.User)
	if !ok || user == nil {
		return nil, errors.New("no authenticated user in context")
	}
	return user, nil
}

// ctxGetUserID retrieves the authenticated user's ID from the context
func ctxGetUserID(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("no user ID in context")
	}
	return id, nil
}

// ctxGetToken retrieves the raw bearer token from the context
func ctxGetToken(ctx context.Context) (string, error) {
	token, ok := ctx.Value(tokenKey).(string)
	if !ok || token == "" {
		return "", errors.New("no token in context")
	}
	return token, nil
}
