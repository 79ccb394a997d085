package routes

import (
	"net/http"
	"time"

	"dairyfront/config"
	"dairyfront/handlers"
	"dairyfront/middleware"
	"dairyfront/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterAuthRoutes registers user and admin authentication endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)
		api.POST("/send-otp", hb.SendOTPHandler)
		api.POST("/admin/register", hb.AdminRegisterHandler)
		api.POST("/admin/login", hb.AdminLoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.RequireUser())
		api.GET("/me", hb.MeHandler)
		api.POST("/logout", hb.LogoutHandler)
	}
}

// RegisterCatalogRoutes registers public product browsing endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/products")
	{
		api.GET("", hb.ListProductsHandler)
		api.GET("/:id", hb.GetProductHandler)
	}
}

// RegisterCheckoutRoutes registers the subscription checkout flow.
func RegisterCheckoutRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/checkout")
	{
		api.Use(middleware.RequireUser())
		api.POST("/start", hb.CheckoutStartHandler)
		api.GET("", hb.CheckoutViewHandler)
		api.PUT("/plan", hb.CheckoutSetPlanHandler)
		api.PUT("/address", hb.CheckoutSetAddressHandler)
		api.PUT("/payment-method", hb.CheckoutSetPaymentHandler)
		api.POST("/confirm", hb.CheckoutConfirmHandler)
		api.GET("/status", hb.CheckoutStatusHandler)
		api.DELETE("", hb.CheckoutDiscardHandler)
	}
}

// RegisterProfileRoutes registers the profile/wallet endpoints.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/profile")
	{
		api.Use(middleware.RequireUser())
		api.GET("", hb.GetProfileHandler)
		api.POST("/wallet/add-money", hb.AddMoneyHandler)
		api.POST("/subscriptions/:id/pause", hb.PauseSubscriptionHandler)
		api.POST("/subscriptions/:id/cancel", hb.CancelSubscriptionHandler)
	}
}

// RegisterAdminRoutes registers catalog management, dashboard and user
// management endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.RequireAdmin())
		api.GET("/products", hb.AdminListProductsHandler)
		api.POST("/products/add", hb.AdminAddProductHandler)
		api.PUT("/products/:id", hb.AdminUpdateProductHandler)
		api.DELETE("/products/:id", hb.AdminDeleteProductHandler)
		api.GET("/stats", hb.AdminStatsHandler)
		api.GET("/users", hb.AdminListUsersHandler)
		api.PUT("/users/:id/blocked", hb.AdminBlockUserHandler)
	}
}

// RegisterChatRoutes registers the support chat widget endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.GET("/messages", hb.ChatHistoryHandler)
		api.POST("/messages", hb.ChatSendHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Health and metrics sit outside the session middleware.
	RegisterHealthRoute(r)

	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AppConfig.ClientOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-New-Session"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.SessionMiddleware(hb.Sessions))

	RegisterAuthRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterCheckoutRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterChatRoutes(r, hb)
}
