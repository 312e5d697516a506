package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/recipebook/internal/apperrors"
	"github.com/skillsenselab/recipebook/internal/auth/authctx"
	"github.com/skillsenselab/recipebook/internal/auth/token"
)

// CookieName is the cookie carrying the signed access token.
const CookieName = "access_token"

// Authenticate is the authentication gate. It reads the access-token cookie,
// verifies it, and attaches the decoded identity to the request context.
//
// A missing cookie and a failed verification both produce 401, but with
// distinct messages: the distinction helps client UX and reveals nothing
// about why verification failed.
func Authenticate(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := c.Cookie(CookieName)
		if err != nil || value == "" {
			abort(c, apperrors.Unauthenticated("Access token is missing"))
			return
		}

		claims, err := tokens.Parse(value)
		if err != nil {
			abort(c, err)
			return
		}

		identity := authctx.Identity{UserID: claims.UserID, Role: claims.Role}
		c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), identity))
		c.Next()
	}
}
