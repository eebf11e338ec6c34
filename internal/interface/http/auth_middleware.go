package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/hairmatch/internal/domain/auth"
)

func unauthorized(err error) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, "unauthorized", "Unauthorized", err)
}

// bearerToken extracts the credential of an "Authorization: Bearer <token>" header.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func authMiddleware(svc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortWithError(c, unauthorized(nil))
			return
		}
		claims, err := svc.ValidateToken(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, unauthorized(err))
			return
		}
		setUserID(c, claims.UserID)
		c.Next()
	}
}

func serviceKeyMiddleware(svc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := bearerToken(c)
		if !ok {
			abortWithError(c, unauthorized(nil))
			return
		}
		if err := svc.ValidateServiceKey(c.Request.Context(), key); err != nil {
			abortWithError(c, unauthorized(err))
			return
		}
		c.Next()
	}
}
