package routes

import (
	"net/http"

	"foodgram/config"
	"foodgram/controllers"
	"foodgram/middleware"
	"foodgram/services"
	"foodgram/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupRouter создаёт gin.Engine, регистрирует все маршруты и возвращает роутер.
// БД и Redis берутся из utils.GetDB / utils.GetRedis.
func SetupRouter(cfg *config.Config) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := utils.RegisterValidators(v); err != nil {
			utils.LogError(err, "register validators")
		}
	}

	r := gin.New()
	// Пути без завершающего слэша, редиректы 301/307 ломают POST с телом
	r.RedirectTrailingSlash = false
	r.Use(middleware.RecoveryMiddleware(), middleware.RequestLogger())
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"result": nil, "success": false, "error": "Страница не найдена"})
	})

	// CORS middleware ДО роутов
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Static(cfg.MediaURL, cfg.MediaRoot)

	api := r.Group("/api")
	setupAuthRoutes(api, cfg)
	setupUserRoutes(api, cfg)
	setupCatalogRoutes(api)
	setupRecipeRoutes(api, cfg)

	return r
}

func setupAuthRoutes(api *gin.RouterGroup, cfg *config.Config) {
	authController := controllers.NewAuthController(utils.GetDB(), utils.GetRedis(), cfg.JWTSecret)

	auth := api.Group("/auth/token")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/logout", middleware.JWTAuthMiddleware(cfg.JWTSecret), authController.Logout)
	}
}

func setupUserRoutes(api *gin.RouterGroup, cfg *config.Config) {
	db := utils.GetDB()
	userController := controllers.NewUserController(db, cfg)
	subscriptionController := controllers.NewSubscriptionController(db, cfg)
	requireAuth := middleware.JWTAuthMiddleware(cfg.JWTSecret)

	users := api.Group("/users")
	{
		users.POST("", userController.Register)
		users.GET("", middleware.OptionalJWTMiddleware(cfg.JWTSecret), userController.List)
		users.GET("/:id", middleware.OptionalJWTMiddleware(cfg.JWTSecret), userController.Get)

		users.GET("/me", requireAuth, userController.Me)
		users.POST("/set_password", requireAuth, userController.SetPassword)
		users.GET("/subscriptions", requireAuth, subscriptionController.List)
		users.POST("/:id/subscribe", requireAuth, subscriptionController.Subscribe)
		users.DELETE("/:id/subscribe", requireAuth, subscriptionController.Unsubscribe)
	}
}

func setupCatalogRoutes(api *gin.RouterGroup) {
	db := utils.GetDB()
	tagController := controllers.NewTagController(db)
	ingredientController := controllers.NewIngredientController(db)

	api.GET("/tags", tagController.List)
	api.GET("/tags/:id", tagController.Get)
	api.GET("/ingredients", ingredientController.List)
	api.GET("/ingredients/:id", ingredientController.Get)
}

func setupRecipeRoutes(api *gin.RouterGroup, cfg *config.Config) {
	db := utils.GetDB()
	recipeController := controllers.NewRecipeController(db, cfg)
	favoriteController := controllers.NewRecipeListController(db, cfg, services.Favorite)
	cartController := controllers.NewRecipeListController(db, cfg, services.ShoppingCart)
	shoppingCartController := controllers.NewShoppingCartController(db, cfg.PDFFontPath)
	requireAuth := middleware.JWTAuthMiddleware(cfg.JWTSecret)

	recipes := api.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalJWTMiddleware(cfg.JWTSecret), recipeController.List)
		recipes.GET("/:id", middleware.OptionalJWTMiddleware(cfg.JWTSecret), recipeController.Get)
		recipes.POST("", requireAuth, recipeController.Create)
		recipes.PATCH("/:id", requireAuth, recipeController.Update)
		recipes.DELETE("/:id", requireAuth, recipeController.Delete)

		recipes.GET("/download_shopping_cart", requireAuth, shoppingCartController.Download)

		recipes.POST("/:id/favorite", requireAuth, favoriteController.Add)
		recipes.DELETE("/:id/favorite", requireAuth, favoriteController.Remove)
		recipes.POST("/:id/shopping_cart", requireAuth, cartController.Add)
		recipes.DELETE("/:id/shopping_cart", requireAuth, cartController.Remove)
	}
}
