package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ttms-admin-api/internal/models"
	appErrors "github.com/noah-isme/ttms-admin-api/pkg/errors"
	"github.com/noah-isme/ttms-admin-api/pkg/response"
)

// LoginRedirectPath is where unauthenticated admin requests are sent.
const LoginRedirectPath = "/"

// AdminOnly gates admin routes. Requests without a valid token are redirected to the
// login page; authenticated non-admins receive 403.
func AdminOnly(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := requestToken(c)
		if !ok {
			c.Redirect(http.StatusFound, LoginRedirectPath)
			c.Abort()
			return
		}
		claims, err := validator.ValidateToken(token)
		if err != nil {
			c.Redirect(http.StatusFound, LoginRedirectPath)
			c.Abort()
			return
		}
		if !claims.IsAdmin() {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "administrator access required"))
			c.Abort()
			return
		}
		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// CurrentClaims returns the claims stored by the auth middleware, if any.
func CurrentClaims(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}
