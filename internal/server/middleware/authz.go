package middleware

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/recipebook/internal/apperrors"
	"github.com/skillsenselab/recipebook/internal/auth/authctx"
	"github.com/skillsenselab/recipebook/internal/database"
	"github.com/skillsenselab/recipebook/internal/store"
)

// Policy decides whether the authenticated identity may mutate the resource
// with the given id. It returns nil to allow, or the error to respond with.
// The gate's control flow never changes; richer policies replace only the
// predicate.
type Policy func(ctx context.Context, identity authctx.Identity, resourceID uint) error

// Authorize is the authorization gate. It runs after Authenticate, parses
// the :id path parameter, and applies the policy.
func Authorize(policy Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := authctx.GetOrError(c.Request.Context())
		if err != nil {
			abort(c, apperrors.Unauthenticated(""))
			return
		}

		id, err := ParseID(c.Param("id"))
		if err != nil {
			abort(c, err)
			return
		}

		if err := policy(c.Request.Context(), identity, id); err != nil {
			abort(c, err)
			return
		}
		c.Next()
	}
}

// SelfPolicy permits a user to mutate only their own account. Pure
// comparison, no data access.
func SelfPolicy() Policy {
	return func(_ context.Context, identity authctx.Identity, userID uint) error {
		if identity.UserID != userID {
			return apperrors.Forbidden()
		}
		return nil
	}
}

// RecipeAuthorPolicy permits only the recorded author of a recipe to mutate
// it. The recipe is re-fetched so the decision reflects stored ownership:
// an absent recipe is NOT_FOUND, a lookup failure is an internal error
// distinct from NOT_FOUND.
func RecipeAuthorPolicy(recipes *store.RecipeStore) Policy {
	return func(ctx context.Context, identity authctx.Identity, recipeID uint) error {
		recipe, err := recipes.GetByID(ctx, recipeID)
		if err != nil {
			return database.FromDatabase(err, "Recipe")
		}
		if recipe == nil {
			return apperrors.NotFound("Recipe")
		}
		if recipe.AuthorID != identity.UserID {
			return apperrors.Forbidden()
		}
		return nil
	}
}

// ParseID parses a decimal path id. Non-numeric ids cannot reference any
// resource, so they report NOT_FOUND rather than a validation failure.
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NotFound("Resource")
	}
	return uint(id), nil
}
