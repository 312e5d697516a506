package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/skillsenselab/recipebook/internal/database"
)

// UserPatch carries the fields of a partial user update. Nil fields are left
// untouched in storage. Password, when present, is already hashed.
type UserPatch struct {
	Username *string
	Email    *string
	Password *string
}

// UserStore provides data access for users.
type UserStore struct {
	db *database.DB
}

// NewUserStore creates a user store over the given database.
func NewUserStore(db *database.DB) *UserStore {
	return &UserStore{db: db}
}

// GetAll returns all users.
func (s *UserStore) GetAll(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID returns the user with the given id, or nil if absent.
func (s *UserStore) GetByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername returns the user with the given username, or nil if absent.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.getWhere(ctx, "username = ?", username)
}

// GetByEmail returns the user with the given email, or nil if absent.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.getWhere(ctx, "email = ?", email)
}

// GetByUsernameOrEmail returns the first user matching either value. Empty
// arguments are excluded from the match.
func (s *UserStore) GetByUsernameOrEmail(ctx context.Context, username, email string) (*User, error) {
	q := s.db.WithContext(ctx)
	switch {
	case username != "" && email != "":
		q = q.Where("username = ? OR email = ?", username, email)
	case username != "":
		q = q.Where("username = ?", username)
	case email != "":
		q = q.Where("email = ?", email)
	default:
		return nil, nil
	}

	var user User
	if err := q.First(&user).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create persists a new user and returns the stored record. A uniqueness
// violation surfaces as gorm.ErrDuplicatedKey for the caller to map.
func (s *UserStore) Create(ctx context.Context, user *User) (*User, error) {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies the non-nil patch fields to the user with the given id.
// Returns nil if the user is absent.
func (s *UserStore) Update(ctx context.Context, id uint, patch UserPatch) (*User, error) {
	var updated *User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		if patch.Username != nil {
			user.Username = *patch.Username
		}
		if patch.Email != nil {
			user.Email = *patch.Email
		}
		if patch.Password != nil {
			user.Password = *patch.Password
		}
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		updated = &user
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

// Delete removes the user with the given id and returns the deleted record,
// or nil if absent.
func (s *UserStore) Delete(ctx context.Context, id uint) (*User, error) {
	var deleted *User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&user).Error; err != nil {
			return err
		}
		deleted = &user
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

func (s *UserStore) getWhere(ctx context.Context, query string, arg interface{}) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
