package server

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/recipebook/internal/apperrors"
	"github.com/skillsenselab/recipebook/internal/auth/authctx"
	"github.com/skillsenselab/recipebook/internal/database"
	"github.com/skillsenselab/recipebook/internal/server/middleware"
	"github.com/skillsenselab/recipebook/internal/store"
	"github.com/skillsenselab/recipebook/internal/validation"
)

func (a *API) listRecipes(c *gin.Context) {
	recipes, err := a.recipes.GetAll(c.Request.Context())
	if err != nil {
		Error(c, database.FromDatabase(err, "Recipe"))
		return
	}
	OK(c, recipes)
}

func (a *API) listRecipesByAuthor(c *gin.Context) {
	authorID, err := middleware.ParseID(c.Param("authorId"))
	if err != nil {
		Error(c, err)
		return
	}

	ctx := c.Request.Context()

	author, err := a.users.GetByID(ctx, authorID)
	if err != nil {
		Error(c, database.FromDatabase(err, "Author"))
		return
	}
	if author == nil {
		Error(c, apperrors.NotFound("Author"))
		return
	}

	recipes, err := a.recipes.GetAllByAuthor(ctx, authorID)
	if err != nil {
		Error(c, database.FromDatabase(err, "Recipe"))
		return
	}
	OK(c, recipes)
}

func (a *API) getRecipe(c *gin.Context) {
	id, err := middleware.ParseID(c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}

	recipe, err := a.recipes.GetByID(c.Request.Context(), id)
	if err != nil {
		Error(c, database.FromDatabase(err, "Recipe"))
		return
	}
	if recipe == nil {
		Error(c, apperrors.NotFound("Recipe"))
		return
	}
	OK(c, recipe)
}

// createRecipe persists a new recipe owned by the authenticated caller. The
// author is taken from the verified identity, never from the payload.
func (a *API) createRecipe(c *gin.Context) {
	var in validation.RecipeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, apperrors.Validation("Invalid JSON payload", nil))
		return
	}
	if err := validation.ValidateRecipe(&in); err != nil {
		Error(c, err)
		return
	}

	identity := authctx.MustGet(c.Request.Context())

	recipe := &store.Recipe{
		Name:        in.Name,
		Description: in.Description,
		Ingredients: store.StringList(in.Ingredients),
		Steps:       store.StringList(in.Steps),
		AuthorID:    identity.UserID,
	}
	created, err := a.recipes.Create(c.Request.Context(), recipe)
	if err != nil {
		Error(c, database.FromDatabase(err, "Recipe"))
		return
	}
	Created(c, created)
}

func (a *API) updateRecipe(c *gin.Context) {
	id, err := middleware.ParseID(c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}

	var in validation.RecipeUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, apperrors.Validation("Invalid JSON payload", nil))
		return
	}
	if err := validation.ValidateRecipeUpdate(&in); err != nil {
		Error(c, err)
		return
	}

	patch := store.RecipePatch{
		Name:        in.Name,
		Description: in.Description,
		Ingredients: in.Ingredients,
		Steps:       in.Steps,
	}
	updated, err := a.recipes.Update(c.Request.Context(), id, patch)
	if err != nil {
		Error(c, database.FromDatabase(err, "Recipe"))
		return
	}
	if updated == nil {
		Error(c, apperrors.NotFound("Recipe"))
		return
	}
	OK(c, updated)
}

func (a *API) deleteRecipe(c *gin.Context) {
	id, err := middleware.ParseID(c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}

	deleted, err := a.recipes.Delete(c.Request.Context(), id)
	if err != nil {
		Error(c, database.FromDatabase(err, "Recipe"))
		return
	}
	if deleted == nil {
		Error(c, apperrors.NotFound("Recipe"))
		return
	}
	NoContent(c)
}
