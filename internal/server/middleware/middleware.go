// Package middleware provides the Gin middleware chain: request IDs, panic
// recovery, request logging, CORS, request timeouts, and the authentication
// and authorization gates.
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/recipebook/internal/apperrors"
)

// abort short-circuits the chain with the structured error response for err.
// Non-AppError values collapse to a generic internal error.
func abort(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Internal(err)
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
