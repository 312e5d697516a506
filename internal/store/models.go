// Package store implements the entity access layer over GORM. Every lookup
// distinguishes "absent" from failure: a missing row is returned as a nil
// record with a nil error, never as an error value.
package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultRole is the role claim assigned to every registered user.
const DefaultRole = "user"

// User is a registered account. The password column holds only the bcrypt
// hash and is never serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Username  string    `gorm:"size:30;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:244;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:20;not null;default:user" json:"role"`
}

// Recipe is a cooking recipe owned by its creating user. AuthorID is set
// from the authenticated identity at creation time and never changes.
type Recipe struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Ingredients StringList `gorm:"type:text;not null" json:"ingredients"`
	Steps       StringList `gorm:"type:text;not null" json:"steps"`
	AuthorID    uint       `gorm:"not null;index" json:"authorId"`

	Author *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

// StringList is an ordered sequence of strings stored as a JSON text column,
// portable across postgres and sqlite.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("store: marshal string list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("store: cannot scan %T into StringList", value)
	}
	return json.Unmarshal(data, l)
}

// Models returns every model for auto-migration, ordered so foreign key
// targets migrate first.
func Models() []interface{} {
	return []interface{}{&User{}, &Recipe{}}
}
