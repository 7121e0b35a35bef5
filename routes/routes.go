package routes

import (
	"time"

	"desireways/handlers"
	"desireways/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	router := gin.Default()
	Register(router)
	return router
}

// Register attaches all API routes to the given engine. Split out of
// SetupRouter so tests can mount the routes on a bare gin.New().
func Register(router *gin.Engine) {
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Desireways API is running",
			"time":    time.Now().Unix(),
		})
	})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173", "https://desireways.example"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Public routes
	auth := router.Group("/api")
	auth.Use(middleware.RateLimitMiddleware(30, time.Minute))
	auth.POST("/signup", handlers.Signup)
	auth.POST("/login", handlers.Login)
	auth.GET("/google/auth-url", handlers.GetGoogleAuthURL)
	auth.GET("/google/callback", handlers.GoogleOAuthCallback)

	router.GET("/api/products", handlers.GetProducts)
	router.GET("/api/products/:id", handlers.GetProduct)
	router.GET("/api/products/:id/reviews", handlers.GetProductReviews)
	router.GET("/api/categories", handlers.GetCategories)
	router.GET("/api/search", handlers.Search)

	// Protected routes
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware())

	protected.GET("/me", handlers.GetMe)
	protected.GET("/me/points", handlers.GetMyPoints)
	protected.GET("/me/points/log", handlers.GetPointsLog)
	protected.GET("/me/referral", handlers.GetReferral)

	protected.GET("/me/profile", handlers.GetProfile)
	protected.PUT("/me/profile", handlers.SaveProfile)
	protected.GET("/me/logs", handlers.GetMyLogs)

	protected.GET("/me/wishlist", handlers.GetWishlist)
	protected.POST("/wishlist/toggle", handlers.ToggleWishlist)
	protected.GET("/wishlist/:productId", handlers.IsWishlisted)

	protected.POST("/reviews", handlers.SubmitReview)
	protected.PUT("/reviews/:id", handlers.EditReview)
	protected.DELETE("/reviews/:id", handlers.DeleteReview)

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		c.Next()
	})
}
