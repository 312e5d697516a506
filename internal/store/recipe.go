package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/skillsenselab/recipebook/internal/database"
)

// RecipePatch carries the fields of a partial recipe update. Nil fields are
// left untouched. AuthorID is deliberately absent: ownership never changes.
type RecipePatch struct {
	Name        *string
	Description *string
	Ingredients *[]string
	Steps       *[]string
}

// RecipeStore provides data access for recipes.
type RecipeStore struct {
	db *database.DB
}

// NewRecipeStore creates a recipe store over the given database.
func NewRecipeStore(db *database.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

// GetAll returns all recipes.
func (s *RecipeStore) GetAll(ctx context.Context) ([]Recipe, error) {
	var recipes []Recipe
	if err := s.db.WithContext(ctx).Order("id").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetAllByAuthor returns all recipes created by the given author.
func (s *RecipeStore) GetAllByAuthor(ctx context.Context, authorID uint) ([]Recipe, error) {
	var recipes []Recipe
	if err := s.db.WithContext(ctx).Where("author_id = ?", authorID).Order("id").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetByID returns the recipe with the given id, or nil if absent.
func (s *RecipeStore) GetByID(ctx context.Context, id uint) (*Recipe, error) {
	var recipe Recipe
	if err := s.db.WithContext(ctx).First(&recipe, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &recipe, nil
}

// Create persists a new recipe and returns the stored record. AuthorID must
// already be set to the authenticated identity.
func (s *RecipeStore) Create(ctx context.Context, recipe *Recipe) (*Recipe, error) {
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// Update applies the non-nil patch fields to the recipe with the given id.
// Returns nil if the recipe is absent.
func (s *RecipeStore) Update(ctx context.Context, id uint, patch RecipePatch) (*Recipe, error) {
	var updated *Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe Recipe
		if err := tx.First(&recipe, id).Error; err != nil {
			return err
		}
		if patch.Name != nil {
			recipe.Name = *patch.Name
		}
		if patch.Description != nil {
			recipe.Description = *patch.Description
		}
		if patch.Ingredients != nil {
			recipe.Ingredients = StringList(*patch.Ingredients)
		}
		if patch.Steps != nil {
			recipe.Steps = StringList(*patch.Steps)
		}
		if err := tx.Save(&recipe).Error; err != nil {
			return err
		}
		updated = &recipe
		return nil
	})
	if err != nil {
		if database.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes the recipe with the given id and returns the deleted
// record, or nil if absent.
func (s *RecipeStore) Delete(ctx context.Context, id uint) (*Recipe, error) {
	var deleted *Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe Recipe
		if err := tx.First(&recipe, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&recipe).Error; err != nil {
			return err
		}
		deleted = &recipe
		return nil
	})
	if err != nil {
		if database.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return deleted, nil
}
