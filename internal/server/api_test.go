package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"

	"github.com/skillsenselab/recipebook/internal/auth/password"
	"github.com/skillsenselab/recipebook/internal/auth/token"
	"github.com/skillsenselab/recipebook/internal/database"
	"github.com/skillsenselab/recipebook/internal/logger"
	"github.com/skillsenselab/recipebook/internal/server/middleware"
	"github.com/skillsenselab/recipebook/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	engine *gin.Engine
	tokens *token.Service
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	cfg := database.Config{MaxOpenConns: 1, MaxIdleConns: 1, MaxRetries: 1, LogLevel: "silent"}
	db, err := database.New(context.Background(), sqlite.Open(":memory:"), cfg, logger.NewDefault("test"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.AutoMigrate(store.Models()...); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}

	tokens, err := token.NewService(&token.Config{Secret: "test-secret"})
	if err != nil {
		t.Fatalf("token service: %v", err)
	}

	api := NewAPI(
		store.NewUserStore(db),
		store.NewRecipeStore(db),
		password.NewBcryptHasher(password.WithCost(4)),
		tokens,
		db,
		Config{},
		logger.NewDefault("test"),
	)

	engine := gin.New()
	api.RegisterRoutes(engine)

	return &testAPI{engine: engine, tokens: tokens}
}

func (a *testAPI) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// register creates an account and returns its id and the auth cookie.
func (a *testAPI) register(t *testing.T, username, email string) (uint, *http.Cookie) {
	t.Helper()
	body := `{"username":"` + username + `","email":"` + email + `","password":"Password7_"}`
	w := a.do(t, http.MethodPost, "/api/users/register", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", username, w.Code, w.Body.String())
	}
	var user map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode register body: %v", err)
	}
	id, ok := user["id"].(float64)
	if !ok {
		t.Fatalf("expected numeric id, got %v", user["id"])
	}
	cookie := authCookie(t, w)
	if cookie == nil {
		t.Fatal("expected access-token cookie on register")
	}
	return uint(id), cookie
}

func authCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.CookieName {
			return c
		}
	}
	return nil
}

func decodeMap(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
	return m
}

func decodeList(t *testing.T, body []byte) []map[string]any {
	t.Helper()
	var l []map[string]any
	if err := json.Unmarshal(body, &l); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
	return l
}

func TestRegister(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/users/register",
		`{"username":"Patata","email":"patata@example.com","password":"Password7_"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	user := decodeMap(t, w.Body.Bytes())
	if user["username"] != "Patata" {
		t.Errorf("unexpected username %v", user["username"])
	}
	if user["id"] != float64(1) {
		t.Errorf("expected first id 1, got %v", user["id"])
	}
	if user["role"] != "user" {
		t.Errorf("expected default role, got %v", user["role"])
	}
	if _, ok := user["password"]; ok {
		t.Error("password must never appear in a response")
	}

	cookie := authCookie(t, w)
	if cookie == nil {
		t.Fatal("expected access-token cookie")
	}
	if !cookie.HttpOnly {
		t.Error("cookie must be http-only")
	}
	if cookie.MaxAge != 3600 {
		t.Errorf("expected cookie lifetime 3600s, got %d", cookie.MaxAge)
	}

	claims, err := api.tokens.Parse(cookie.Value)
	if err != nil {
		t.Fatalf("cookie must carry a valid token: %v", err)
	}
	if claims.UserID != 1 {
		t.Errorf("expected token for user 1, got %d", claims.UserID)
	}
}

func TestRegisterLongPassword(t *testing.T) {
	api := newTestAPI(t)

	// 100 chars, all four character classes: schema-valid, beyond the
	// bcrypt key limit.
	long := "Aa7_" + strings.Repeat("x", 96)

	w := api.do(t, http.MethodPost, "/api/users/register",
		`{"username":"Longpass","email":"long@example.com","password":"`+long+`"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = api.do(t, http.MethodPost, "/api/users/login",
		`{"email":"long@example.com","password":"`+long+`"}`)
	if w.Code != http.StatusOK {
		t.Errorf("expected login with the long password to work, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRegisterDuplicates(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "Patata", "patata@example.com")

	w := api.do(t, http.MethodPost, "/api/users/register",
		`{"username":"Patata","email":"other@example.com","password":"Password7_"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if resp := decodeMap(t, w.Body.Bytes()); resp["message"] != "username already in use" {
		t.Errorf("unexpected message %v", resp["message"])
	}

	w = api.do(t, http.MethodPost, "/api/users/register",
		`{"username":"Other","email":"patata@example.com","password":"Password7_"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if resp := decodeMap(t, w.Body.Bytes()); resp["message"] != "email already in use" {
		t.Errorf("unexpected message %v", resp["message"])
	}
}

func TestRegisterInvalidPayload(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"short username", `{"username":"ab","email":"a@b.com","password":"Password7_"}`},
		{"bad email", `{"username":"Patata","email":"nope","password":"Password7_"}`},
		{"weak password", `{"username":"Patata","email":"a@b.com","password":"password"}`},
		{"malformed json", `{"username":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodPost, "/api/users/register", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			resp := decodeMap(t, w.Body.Bytes())
			if resp["status"] != "error" {
				t.Errorf("expected error body, got %v", resp)
			}
		})
	}
}

func TestRegisterValidationListsEveryViolation(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/users/register",
		`{"username":"ab","email":"nope","password":"weak"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	resp := decodeMap(t, w.Body.Bytes())
	errs, ok := resp["errors"].([]any)
	if !ok {
		t.Fatalf("expected field-error list, got %v", resp)
	}
	if len(errs) < 3 {
		t.Errorf("expected every violation listed, got %v", errs)
	}
}

func TestLogin(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "Patata", "patata@example.com")

	w := api.do(t, http.MethodPost, "/api/users/login",
		`{"email":"patata@example.com","password":"Password7_"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeMap(t, w.Body.Bytes())
	if resp["status"] != "success" || resp["message"] != "User logged in" {
		t.Errorf("unexpected body %v", resp)
	}

	cookie := authCookie(t, w)
	if cookie == nil {
		t.Fatal("expected access-token cookie")
	}
	if _, err := api.tokens.Parse(cookie.Value); err != nil {
		t.Errorf("cookie must carry a valid token: %v", err)
	}
}

func TestLoginFailureIsIndistinguishable(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "Patata", "patata@example.com")

	wrongPassword := api.do(t, http.MethodPost, "/api/users/login",
		`{"email":"patata@example.com","password":"WrongPass7_"}`)
	unknownEmail := api.do(t, http.MethodPost, "/api/users/login",
		`{"email":"nobody@example.com","password":"Password7_"}`)

	if wrongPassword.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", wrongPassword.Code)
	}
	if unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown email, got %d", unknownEmail.Code)
	}
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Errorf("failure responses must be identical: %q vs %q",
			wrongPassword.Body.String(), unknownEmail.Body.String())
	}
	if authCookie(t, wrongPassword) != nil {
		t.Error("failed login must not set a cookie")
	}
}

func TestLoginMissingFields(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/users/login", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestListAndGetUsers(t *testing.T) {
	api := newTestAPI(t)
	id, _ := api.register(t, "Patata", "patata@example.com")
	api.register(t, "Boniato", "boniato@example.com")

	w := api.do(t, http.MethodGet, "/api/users", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	users := decodeList(t, w.Body.Bytes())
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	for _, u := range users {
		if _, ok := u["password"]; ok {
			t.Error("password must never appear in listings")
		}
	}

	w = api.do(t, http.MethodGet, "/api/users/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if user := decodeMap(t, w.Body.Bytes()); user["id"] != float64(id) {
		t.Errorf("unexpected user %v", user)
	}

	w = api.do(t, http.MethodGet, "/api/users/999", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for absent user, got %d", w.Code)
	}
	if resp := decodeMap(t, w.Body.Bytes()); resp["message"] != "User not found" {
		t.Errorf("unexpected message %v", resp["message"])
	}

	// A non-numeric id is not an internal error.
	w = api.do(t, http.MethodGet, "/api/users/abc", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for non-numeric id, got %d", w.Code)
	}
}

func TestUpdateUser(t *testing.T) {
	api := newTestAPI(t)
	id, cookie := api.register(t, "Patata", "patata@example.com")

	w := api.do(t, http.MethodPatch, "/api/users/1", `{"username":"Boniato"}`, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	user := decodeMap(t, w.Body.Bytes())
	if user["username"] != "Boniato" {
		t.Errorf("expected updated username, got %v", user["username"])
	}
	if user["email"] != "patata@example.com" {
		t.Errorf("email must be untouched, got %v", user["email"])
	}
	if user["id"] != float64(id) {
		t.Errorf("unexpected id %v", user["id"])
	}
}

func TestUpdateUserRequiresAuth(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "Patata", "patata@example.com")

	w := api.do(t, http.MethodPatch, "/api/users/1", `{"username":"Boniato"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without cookie, got %d", w.Code)
	}
	if resp := decodeMap(t, w.Body.Bytes()); resp["message"] != "Access token is missing" {
		t.Errorf("unexpected message %v", resp["message"])
	}

	bad := &http.Cookie{Name: middleware.CookieName, Value: "tampered"}
	w = api.do(t, http.MethodPatch, "/api/users/1", `{"username":"Boniato"}`, bad)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", w.Code)
	}
	if resp := decodeMap(t, w.Body.Bytes()); resp["message"] != "Invalid or expired access token" {
		t.Errorf("unexpected message %v", resp["message"])
	}
}

func TestUpdateUserForbiddenForOthers(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "Patata", "patata@example.com")
	_, otherCookie := api.register(t, "Boniato", "boniato@example.com")

	w := api.do(t, http.MethodPatch, "/api/users/1", `{"username":"Hacked"}`, otherCookie)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
	if resp := decodeMap(t, w.Body.Bytes()); resp["message"] != "You don't have permission to perform this action" {
		t.Errorf("unexpected message %v", resp["message"])
	}

	// The account is unchanged.
	w = api.do(t, http.MethodGet, "/api/users/1", "")
	if user := decodeMap(t, w.Body.Bytes()); user["username"] != "Patata" {
		t.Errorf("account mutated by a forbidden request: %v", user)
	}
}

func TestUpdateUserConflict(t *testing.T) {
	api := newTestAPI(t)
	_, cookie := api.register(t, "Patata", "patata@example.com")
	api.register(t, "Boniato", "boniato@example.com")

	w := api.do(t, http.MethodPatch, "/api/users/1", `{"email":"boniato@example.com"}`, cookie)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}

	// Re-submitting one's own current value is not a conflict.
	w = api.do(t, http.MethodPatch, "/api/users/1", `{"email":"patata@example.com"}`, cookie)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for own value, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateUserPasswordChangesLogin(t *testing.T) {
	api := newTestAPI(t)
	_, cookie := api.register(t, "Patata", "patata@example.com")

	w := api.do(t, http.MethodPatch, "/api/users/1", `{"password":"NewSecret8_"}`, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = api.do(t, http.MethodPost, "/api/users/login",
		`{"email":"patata@example.com","password":"Password7_"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("old password must stop working, got %d", w.Code)
	}

	w = api.do(t, http.MethodPost, "/api/users/login",
		`{"email":"patata@example.com","password":"NewSecret8_"}`)
	if w.Code != http.StatusOK {
		t.Errorf("new password must work, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateUserLongPassword(t *testing.T) {
	api := newTestAPI(t)
	_, cookie := api.register(t, "Patata", "patata@example.com")

	long := "Aa7_" + strings.Repeat("x", 96)
	w := api.do(t, http.MethodPatch, "/api/users/1", `{"password":"`+long+`"}`, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = api.do(t, http.MethodPost, "/api/users/login",
		`{"email":"patata@example.com","password":"`+long+`"}`)
	if w.Code != http.StatusOK {
		t.Errorf("expected login with the long password to work, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteUser(t *testing.T) {
	api := newTestAPI(t)
	_, cookie := api.register(t, "Patata", "patata@example.com")

	w := api.do(t, http.MethodDelete, "/api/users/1", "", cookie)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}

	w = api.do(t, http.MethodGet, "/api/users/1", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestDeleteUserForbiddenForOthers(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "Patata", "patata@example.com")
	_, otherCookie := api.register(t, "Boniato", "boniato@example.com")

	w := api.do(t, http.MethodDelete, "/api/users/1", "", otherCookie)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestCreateRecipe(t *testing.T) {
	api := newTestAPI(t)
	id, cookie := api.register(t, "Patata", "patata@example.com")

	body := `{"name":"Tortilla","description":"Spanish omelette","ingredients":["eggs","potatoes"],"steps":["peel","fry"]}`

	// Creation requires authentication.
	w := api.do(t, http.MethodPost, "/api/recipes", body)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without cookie, got %d", w.Code)
	}

	w = api.do(t, http.MethodPost, "/api/recipes", body, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	recipe := decodeMap(t, w.Body.Bytes())
	if recipe["name"] != "Tortilla" {
		t.Errorf("unexpected name %v", recipe["name"])
	}
	// The author is the authenticated caller, whatever the payload says.
	if recipe["authorId"] != float64(id) {
		t.Errorf("expected authorId %d, got %v", id, recipe["authorId"])
	}
	if recipe["id"] != float64(1) {
		t.Errorf("expected first recipe id 1, got %v", recipe["id"])
	}
}

func TestCreateRecipeIgnoresPayloadAuthor(t *testing.T) {
	api := newTestAPI(t)
	id, cookie := api.register(t, "Patata", "patata@example.com")

	body := `{"name":"T","description":"d","ingredients":["x"],"steps":["y"],"authorId":999}`
	w := api.do(t, http.MethodPost, "/api/recipes", body, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if recipe := decodeMap(t, w.Body.Bytes()); recipe["authorId"] != float64(id) {
		t.Errorf("payload author must be ignored, got %v", recipe["authorId"])
	}
}

func TestCreateRecipeInvalidPayload(t *testing.T) {
	api := newTestAPI(t)
	_, cookie := api.register(t, "Patata", "patata@example.com")

	tests := []struct {
		name string
		body string
	}{
		{"missing everything", `{}`},
		{"empty ingredients", `{"name":"T","description":"d","ingredients":[],"steps":["y"]}`},
		{"empty step element", `{"name":"T","description":"d","ingredients":["x"],"steps":["y",""]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodPost, "/api/recipes", tt.body, cookie)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestListAndGetRecipes(t *testing.T) {
	api := newTestAPI(t)
	_, cookie := api.register(t, "Patata", "patata@example.com")

	w := api.do(t, http.MethodGet, "/api/recipes", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if recipes := decodeList(t, w.Body.Bytes()); len(recipes) != 0 {
		t.Errorf("expected empty list, got %v", recipes)
	}

	api.do(t, http.MethodPost, "/api/recipes",
		`{"name":"A","description":"d","ingredients":["x"],"steps":["y"]}`, cookie)
	api.do(t, http.MethodPost, "/api/recipes",
		`{"name":"B","description":"d","ingredients":["x"],"steps":["y"]}`, cookie)

	w = api.do(t, http.MethodGet, "/api/recipes", "")
	if recipes := decodeList(t, w.Body.Bytes()); len(recipes) != 2 {
		t.Errorf("expected 2 recipes, got %d", len(recipes))
	}

	w = api.do(t, http.MethodGet, "/api/recipes/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if recipe := decodeMap(t, w.Body.Bytes()); recipe["name"] != "A" {
		t.Errorf("unexpected recipe %v", recipe)
	}

	w = api.do(t, http.MethodGet, "/api/recipes/999", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for absent recipe, got %d", w.Code)
	}
	if resp := decodeMap(t, w.Body.Bytes()); resp["message"] != "Recipe not found" {
		t.Errorf("unexpected message %v", resp["message"])
	}
}

func TestListRecipesByAuthor(t *testing.T) {
	api := newTestAPI(t)
	chefID, chefCookie := api.register(t, "Chef", "chef@example.com")
	_, otherCookie := api.register(t, "Other", "other@example.com")

	api.do(t, http.MethodPost, "/api/recipes",
		`{"name":"A","description":"d","ingredients":["x"],"steps":["y"]}`, chefCookie)
	api.do(t, http.MethodPost, "/api/recipes",
		`{"name":"B","description":"d","ingredients":["x"],"steps":["y"]}`, otherCookie)

	w := api.do(t, http.MethodGet, "/api/recipes/author/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	recipes := decodeList(t, w.Body.Bytes())
	if len(recipes) != 1 {
		t.Fatalf("expected 1 recipe, got %d", len(recipes))
	}
	if recipes[0]["authorId"] != float64(chefID) {
		t.Errorf("unexpected author %v", recipes[0]["authorId"])
	}

	w = api.do(t, http.MethodGet, "/api/recipes/author/999", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for absent author, got %d", w.Code)
	}
	if resp := decodeMap(t, w.Body.Bytes()); resp["message"] != "Author not found" {
		t.Errorf("unexpected message %v", resp["message"])
	}
}

func TestUpdateRecipe(t *testing.T) {
	api := newTestAPI(t)
	_, cookie := api.register(t, "Patata", "patata@example.com")

	api.do(t, http.MethodPost, "/api/recipes",
		`{"name":"Tortilla","description":"Spanish omelette","ingredients":["eggs"],"steps":["fry"]}`, cookie)

	w := api.do(t, http.MethodPatch, "/api/recipes/1", `{"name":"Tortilla de patatas"}`, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	recipe := decodeMap(t, w.Body.Bytes())
	if recipe["name"] != "Tortilla de patatas" {
		t.Errorf("expected updated name, got %v", recipe["name"])
	}
	if recipe["description"] != "Spanish omelette" {
		t.Errorf("description must be untouched, got %v", recipe["description"])
	}

	w = api.do(t, http.MethodPatch, "/api/recipes/999", `{"name":"X"}`, cookie)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for absent recipe, got %d", w.Code)
	}
}

func TestUpdateRecipeOnlyAuthor(t *testing.T) {
	api := newTestAPI(t)
	_, chefCookie := api.register(t, "Chef", "chef@example.com")
	_, otherCookie := api.register(t, "Other", "other@example.com")

	api.do(t, http.MethodPost, "/api/recipes",
		`{"name":"A","description":"d","ingredients":["x"],"steps":["y"]}`, chefCookie)

	w := api.do(t, http.MethodPatch, "/api/recipes/1", `{"name":"Stolen"}`, otherCookie)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}

	w = api.do(t, http.MethodPatch, "/api/recipes/1", `{"name":"Stolen"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without cookie, got %d", w.Code)
	}

	// Unchanged.
	w = api.do(t, http.MethodGet, "/api/recipes/1", "")
	if recipe := decodeMap(t, w.Body.Bytes()); recipe["name"] != "A" {
		t.Errorf("recipe mutated by a rejected request: %v", recipe)
	}
}

func TestDeleteRecipe(t *testing.T) {
	api := newTestAPI(t)
	_, chefCookie := api.register(t, "Chef", "chef@example.com")
	_, otherCookie := api.register(t, "Other", "other@example.com")

	api.do(t, http.MethodPost, "/api/recipes",
		`{"name":"A","description":"d","ingredients":["x"],"steps":["y"]}`, chefCookie)

	w := api.do(t, http.MethodDelete, "/api/recipes/1", "", otherCookie)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-author, got %d", w.Code)
	}

	w = api.do(t, http.MethodDelete, "/api/recipes/1", "", chefCookie)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}

	w = api.do(t, http.MethodDelete, "/api/recipes/1", "", chefCookie)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for second delete, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp := decodeMap(t, w.Body.Bytes()); resp["status"] != "healthy" {
		t.Errorf("unexpected body %v", resp)
	}
}
