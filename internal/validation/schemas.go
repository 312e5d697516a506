package validation

// Character classes a password must draw from.
const (
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
	symbolChars = "@$!%*?&_-"
)

// RegisterInput is the registration payload.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,max=244,email"`
	Password string `json:"password" validate:"required,min=8,max=255"`
}

// LoginInput is the login payload. Deliberately looser than registration so
// a correctly-registered credential pair is never rejected up front.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserUpdateInput is the partial user update payload. Absent fields are left
// untouched in storage.
type UserUpdateInput struct {
	Username *string `json:"username" validate:"omitnil,min=3,max=30"`
	Email    *string `json:"email" validate:"omitnil,max=244,email"`
	Password *string `json:"password" validate:"omitnil,min=8,max=255"`
}

// RecipeInput is the recipe creation payload. The author is never part of
// the payload; it comes from the authenticated identity.
type RecipeInput struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
	Steps       []string `json:"steps" validate:"required,min=1,dive,required"`
}

// RecipeUpdateInput is the partial recipe update payload. A present list must
// still be non-empty with non-empty elements.
type RecipeUpdateInput struct {
	Name        *string   `json:"name" validate:"omitnil,min=1"`
	Description *string   `json:"description" validate:"omitnil,min=1"`
	Ingredients *[]string `json:"ingredients" validate:"omitnil,min=1,dive,required"`
	Steps       *[]string `json:"steps" validate:"omitnil,min=1,dive,required"`
}

// ValidateRegister checks a registration payload and reports every violation.
func ValidateRegister(in *RegisterInput) error {
	fieldErrors := Struct(in)
	fieldErrors = append(fieldErrors, passwordComplexity(in.Password)...)
	if err := AsError(fieldErrors); err != nil {
		return err
	}
	return nil
}

// ValidateLogin checks a login payload.
func ValidateLogin(in *LoginInput) error {
	if err := AsError(Struct(in)); err != nil {
		return err
	}
	return nil
}

// ValidateUserUpdate checks a partial user update payload.
func ValidateUserUpdate(in *UserUpdateInput) error {
	fieldErrors := Struct(in)
	if in.Password != nil {
		fieldErrors = append(fieldErrors, passwordComplexity(*in.Password)...)
	}
	if err := AsError(fieldErrors); err != nil {
		return err
	}
	return nil
}

// ValidateRecipe checks a recipe creation payload.
func ValidateRecipe(in *RecipeInput) error {
	if err := AsError(Struct(in)); err != nil {
		return err
	}
	return nil
}

// ValidateRecipeUpdate checks a partial recipe update payload.
func ValidateRecipeUpdate(in *RecipeUpdateInput) error {
	if err := AsError(Struct(in)); err != nil {
		return err
	}
	return nil
}

// passwordComplexity enforces the character-class rules: at least one
// lowercase letter, one uppercase letter, one digit, and one symbol from the
// fixed set. Length bounds are covered by struct tags. The plaintext value
// is never included in the resulting errors.
func passwordComplexity(password string) []FieldError {
	if password == "" {
		return nil // presence is reported by the required tag
	}
	v := New()
	v.ContainsAny("password", password, lowerChars, "lowercase letter").
		ContainsAny("password", password, upperChars, "uppercase letter").
		ContainsAny("password", password, digitChars, "digit").
		ContainsAny("password", password, symbolChars, "symbol ("+symbolChars+")")
	return v.Errors()
}
