// File: dairyfront/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dairyfront/config"
	"dairyfront/cron"
	"dairyfront/handlers"
	"dairyfront/middleware"
	"dairyfront/routes"
	"dairyfront/services/account"
	"dairyfront/services/adminpanel"
	"dairyfront/services/catalog"
	"dairyfront/services/chat"
	"dairyfront/services/checkout"
	"dairyfront/services/session"
	"dairyfront/upstream"
	"dairyfront/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Upstream backend client.
	backend := upstream.NewClient(
		config.AppConfig.BackendBaseURL,
		time.Duration(config.AppConfig.BackendTimeoutSec)*time.Second,
	)

	// Session store.
	sessionStore := session.NewRedisStore(
		utils.GetSessionClient(),
		time.Duration(config.AppConfig.SessionTTLHours)*time.Hour,
	)

	// services.
	catalogService := &catalog.DefaultCatalogService{Backend: backend}
	accountService := &account.DefaultAccountService{Backend: backend}
	adminService := &adminpanel.DefaultAdminService{Backend: backend}
	chatService := &chat.DefaultChatService{
		Transport: &chat.EchoTransport{Delay: time.Second},
		Sessions:  sessionStore,
	}

	paymentScheduler := cron.NewAsynqScheduler(
		time.Duration(config.AppConfig.PaymentDelaySec) * time.Second,
	)
	checkoutService := &checkout.DefaultCheckoutService{
		Backend:  backend,
		Sessions: sessionStore,
		Tasks:    paymentScheduler,
	}

	// Deferred payment-completion worker.
	cron.InitPaymentWorker(backend, sessionStore)

	// Backend/redis health snapshots for /health.
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetSessionClient()},
		config.AppConfig.BackendBaseURL+"/health",
	)

	authHandler := handlers.NewAuthHandler(backend, sessionStore)
	productHandler := handlers.NewProductHandler(catalogService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	profileHandler := handlers.NewProfileHandler(accountService)
	adminHandler := handlers.NewAdminHandler(adminService)
	chatHandler := handlers.NewChatHandler(chatService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Sessions: sessionStore,

		// Auth endpoints.
		LoginHandler:         authHandler.LoginHandler,
		RegisterHandler:      authHandler.RegisterHandler,
		SendOTPHandler:       authHandler.SendOTPHandler,
		LogoutHandler:        authHandler.LogoutHandler,
		MeHandler:            authHandler.MeHandler,
		AdminLoginHandler:    authHandler.AdminLoginHandler,
		AdminRegisterHandler: authHandler.AdminRegisterHandler,

		// Catalog endpoints.
		ListProductsHandler: productHandler.ListProductsHandler,
		GetProductHandler:   productHandler.GetProductHandler,

		// Checkout endpoints.
		CheckoutStartHandler:      checkoutHandler.StartHandler,
		CheckoutViewHandler:       checkoutHandler.ViewHandler,
		CheckoutSetPlanHandler:    checkoutHandler.SetPlanHandler,
		CheckoutSetAddressHandler: checkoutHandler.SetAddressHandler,
		CheckoutSetPaymentHandler: checkoutHandler.SetPaymentMethodHandler,
		CheckoutConfirmHandler:    checkoutHandler.ConfirmHandler,
		CheckoutStatusHandler:     checkoutHandler.StatusHandler,
		CheckoutDiscardHandler:    checkoutHandler.DiscardHandler,

		// Profile endpoints.
		GetProfileHandler:         profileHandler.GetProfileHandler,
		AddMoneyHandler:           profileHandler.AddMoneyHandler,
		PauseSubscriptionHandler:  profileHandler.PauseSubscriptionHandler,
		CancelSubscriptionHandler: profileHandler.CancelSubscriptionHandler,

		// Admin endpoints.
		AdminListProductsHandler:  adminHandler.ListProductsHandler,
		AdminAddProductHandler:    adminHandler.AddProductHandler,
		AdminUpdateProductHandler: adminHandler.UpdateProductHandler,
		AdminDeleteProductHandler: adminHandler.DeleteProductHandler,
		AdminStatsHandler:         adminHandler.StatsHandler,
		AdminListUsersHandler:     adminHandler.ListUsersHandler,
		AdminBlockUserHandler:     adminHandler.SetUserBlockedHandler,

		// Chat endpoints.
		ChatHistoryHandler: chatHandler.HistoryHandler,
		ChatSendHandler:    chatHandler.SendHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
