package handler

import (
	"errors"
	"net/http"

	"chat-history/internal/services"
	"chat-history/internal/transport/httpdto"
	chaterrors "chat-history/pkg/errors"

	"github.com/gin-gonic/gin"
)

// respondError records err for the error middleware and writes the uniform
// error body. Server-side failures keep the fallback message so internals
// never reach the client.
func respondError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)
	status := services.HTTPStatus(err)
	c.AbortWithStatusJSON(status, httpdto.NewErrorResponse(publicMessage(err, status, fallback), httpdto.CodeForStatus(status)))
}

func publicMessage(err error, status int, fallback string) string {
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		return fallback
	}
	for _, known := range []error{
		chaterrors.ErrInvalidInput,
		chaterrors.ErrUnauthorized,
		chaterrors.ErrForbidden,
		chaterrors.ErrNotFound,
		chaterrors.ErrAlreadyExists,
		chaterrors.ErrConflict,
		chaterrors.ErrRateLimited,
		chaterrors.ErrServiceUnavailable,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return fallback
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
}

func invalidRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, httpdto.NewErrorResponse(message, "INVALID_REQUEST"))
}
