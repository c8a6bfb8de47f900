package services

import (
	"context"
	"errors"
	"net/http"

	chaterrors "chat-history/pkg/errors"
	"chat-history/pkg/logger"
)

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, chaterrors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, chaterrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, chaterrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, chaterrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, chaterrors.ErrAlreadyExists), errors.Is(err, chaterrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, chaterrors.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, chaterrors.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WithUserContext stores the caller's user id. The same key is read by the
// logger so request logs carry it.
func WithUserContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, logger.UserIdKey, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(logger.UserIdKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
