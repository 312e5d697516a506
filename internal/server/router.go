package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/recipebook/internal/auth/password"
	"github.com/skillsenselab/recipebook/internal/auth/token"
	"github.com/skillsenselab/recipebook/internal/database"
	"github.com/skillsenselab/recipebook/internal/logger"
	"github.com/skillsenselab/recipebook/internal/server/middleware"
	"github.com/skillsenselab/recipebook/internal/store"
)

// API bundles the dependencies of the request handlers.
type API struct {
	users   *store.UserStore
	recipes *store.RecipeStore
	hasher  password.Hasher
	tokens  *token.Service
	db      *database.DB
	cfg     Config
	log     *logger.Logger
}

// NewAPI creates the handler set.
func NewAPI(users *store.UserStore, recipes *store.RecipeStore, hasher password.Hasher, tokens *token.Service, db *database.DB, cfg Config, log *logger.Logger) *API {
	cfg.ApplyDefaults()
	return &API{
		users:   users,
		recipes: recipes,
		hasher:  hasher,
		tokens:  tokens,
		db:      db,
		cfg:     cfg,
		log:     log.WithComponent("api"),
	}
}

// RegisterRoutes mounts every route on the engine. Owner-restricted routes
// run the authentication gate and then the authorization gate; the recipe
// variant re-fetches the resource so the decision reflects stored ownership.
func (a *API) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/health", a.health)

	authn := middleware.Authenticate(a.tokens)

	users := engine.Group("/api/users")
	users.GET("", a.listUsers)
	users.POST("/register", a.register)
	users.POST("/login", a.login)
	users.GET("/:id", a.getUser)
	users.PATCH("/:id", authn, middleware.Authorize(middleware.SelfPolicy()), a.updateUser)
	users.DELETE("/:id", authn, middleware.Authorize(middleware.SelfPolicy()), a.deleteUser)

	recipes := engine.Group("/api/recipes")
	recipes.GET("", a.listRecipes)
	recipes.GET("/author/:authorId", a.listRecipesByAuthor)
	recipes.GET("/:id", a.getRecipe)
	recipes.POST("", authn, a.createRecipe)
	recipes.PATCH("/:id", authn, middleware.Authorize(middleware.RecipeAuthorPolicy(a.recipes)), a.updateRecipe)
	recipes.DELETE("/:id", authn, middleware.Authorize(middleware.RecipeAuthorPolicy(a.recipes)), a.deleteRecipe)
}

// health reports service and database liveness.
func (a *API) health(c *gin.Context) {
	status := "healthy"
	httpStatus := http.StatusOK

	if a.db != nil {
		if err := a.db.PingContext(c.Request.Context()); err != nil {
			status = "unhealthy"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	c.JSON(httpStatus, gin.H{
		"status":    status,
		"service":   "recipebook",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// setAuthCookie attaches the signed token as the http-only, same-site
// restricted access-token cookie, expiring with the token itself.
func (a *API) setAuthCookie(c *gin.Context, signed string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.CookieName, signed, int(a.tokens.TTL().Seconds()), "/", "", a.cfg.SecureCookies, true)
}
