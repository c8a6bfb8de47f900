package middleware

import (
	"net/http"
	"strings"

	"chat-history/internal/services"
	"chat-history/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the caller's user id. A bearer token always wins;
// without one the request runs as the default user unless auth is required.
func AuthMiddleware(service *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)

		var userID string
		switch {
		case token != "":
			claims, err := service.ParseAccessToken(token)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
				return
			}
			userID = claims.UserID
		case service.Required():
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
			return
		default:
			userID = service.DefaultUserID()
		}

		ctx := services.WithUserContext(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
