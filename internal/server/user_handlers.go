package server

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/recipebook/internal/apperrors"
	"github.com/skillsenselab/recipebook/internal/database"
	"github.com/skillsenselab/recipebook/internal/server/middleware"
	"github.com/skillsenselab/recipebook/internal/store"
	"github.com/skillsenselab/recipebook/internal/validation"
)

// register creates a new account: validate, pre-check both unique fields,
// hash, persist, issue a token. The pre-check names the colliding field; a
// concurrent registration that slips past it still fails at the storage
// layer and maps to the same conflict outcome.
func (a *API) register(c *gin.Context) {
	var in validation.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, apperrors.Validation("Invalid JSON payload", nil))
		return
	}
	if err := validation.ValidateRegister(&in); err != nil {
		Error(c, err)
		return
	}

	ctx := c.Request.Context()

	if existing, err := a.users.GetByUsername(ctx, in.Username); err != nil {
		Error(c, database.FromDatabase(err, "User"))
		return
	} else if existing != nil {
		Error(c, apperrors.Conflict("username"))
		return
	}
	if existing, err := a.users.GetByEmail(ctx, in.Email); err != nil {
		Error(c, database.FromDatabase(err, "User"))
		return
	} else if existing != nil {
		Error(c, apperrors.Conflict("email"))
		return
	}

	hash, err := a.hasher.Hash(in.Password)
	if err != nil {
		Error(c, apperrors.Internal(err))
		return
	}

	user := &store.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		Role:     store.DefaultRole,
	}
	created, err := a.users.Create(ctx, user)
	if err != nil {
		Error(c, database.FromDatabase(err, "User"))
		return
	}

	signed, err := a.tokens.Issue(created.ID, created.Role)
	if err != nil {
		Error(c, apperrors.Internal(err))
		return
	}

	a.setAuthCookie(c, signed)
	Created(c, created)
}

// login verifies credentials and issues a token. An unknown email and a
// wrong password produce byte-identical responses.
func (a *API) login(c *gin.Context) {
	var in validation.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, apperrors.Validation("Invalid JSON payload", nil))
		return
	}
	if err := validation.ValidateLogin(&in); err != nil {
		Error(c, err)
		return
	}

	user, err := a.users.GetByEmail(c.Request.Context(), in.Email)
	if err != nil {
		Error(c, database.FromDatabase(err, "User"))
		return
	}
	if user == nil || a.hasher.Verify(in.Password, user.Password) != nil {
		Error(c, apperrors.InvalidCredentials())
		return
	}

	signed, err := a.tokens.Issue(user.ID, user.Role)
	if err != nil {
		Error(c, apperrors.Internal(err))
		return
	}

	a.setAuthCookie(c, signed)
	Success(c, "User logged in")
}

func (a *API) listUsers(c *gin.Context) {
	users, err := a.users.GetAll(c.Request.Context())
	if err != nil {
		Error(c, database.FromDatabase(err, "User"))
		return
	}
	OK(c, users)
}

func (a *API) getUser(c *gin.Context) {
	id, err := middleware.ParseID(c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}

	user, err := a.users.GetByID(c.Request.Context(), id)
	if err != nil {
		Error(c, database.FromDatabase(err, "User"))
		return
	}
	if user == nil {
		Error(c, apperrors.NotFound("User"))
		return
	}
	OK(c, user)
}

// updateUser applies a partial update to the caller's own account. Changed
// unique fields are pre-checked against other accounts; the storage
// constraint remains the source of truth under races.
func (a *API) updateUser(c *gin.Context) {
	id, err := middleware.ParseID(c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}

	var in validation.UserUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, apperrors.Validation("Invalid JSON payload", nil))
		return
	}
	if err := validation.ValidateUserUpdate(&in); err != nil {
		Error(c, err)
		return
	}

	ctx := c.Request.Context()

	if in.Username != nil {
		if existing, err := a.users.GetByUsername(ctx, *in.Username); err != nil {
			Error(c, database.FromDatabase(err, "User"))
			return
		} else if existing != nil && existing.ID != id {
			Error(c, apperrors.Conflict("username"))
			return
		}
	}
	if in.Email != nil {
		if existing, err := a.users.GetByEmail(ctx, *in.Email); err != nil {
			Error(c, database.FromDatabase(err, "User"))
			return
		} else if existing != nil && existing.ID != id {
			Error(c, apperrors.Conflict("email"))
			return
		}
	}

	patch := store.UserPatch{Username: in.Username, Email: in.Email}
	if in.Password != nil {
		hash, err := a.hasher.Hash(*in.Password)
		if err != nil {
			Error(c, apperrors.Internal(err))
			return
		}
		patch.Password = &hash
	}

	updated, err := a.users.Update(ctx, id, patch)
	if err != nil {
		Error(c, database.FromDatabase(err, "User"))
		return
	}
	if updated == nil {
		Error(c, apperrors.NotFound("User"))
		return
	}
	OK(c, updated)
}

func (a *API) deleteUser(c *gin.Context) {
	id, err := middleware.ParseID(c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}

	deleted, err := a.users.Delete(c.Request.Context(), id)
	if err != nil {
		Error(c, database.FromDatabase(err, "User"))
		return
	}
	if deleted == nil {
		Error(c, apperrors.NotFound("User"))
		return
	}
	NoContent(c)
}
