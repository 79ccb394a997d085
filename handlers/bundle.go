// File: dairyfront/handlers/bundle.go
package handlers

import (
	"dairyfront/services/session"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Sessions session.Store

	// Auth endpoints
	LoginHandler         gin.HandlerFunc
	RegisterHandler      gin.HandlerFunc
	SendOTPHandler       gin.HandlerFunc
	LogoutHandler        gin.HandlerFunc
	MeHandler            gin.HandlerFunc
	AdminLoginHandler    gin.HandlerFunc
	AdminRegisterHandler gin.HandlerFunc

	// Catalog endpoints
	ListProductsHandler gin.HandlerFunc
	GetProductHandler   gin.HandlerFunc

	// Checkout endpoints
	CheckoutStartHandler      gin.HandlerFunc
	CheckoutViewHandler       gin.HandlerFunc
	CheckoutSetPlanHandler    gin.HandlerFunc
	CheckoutSetAddressHandler gin.HandlerFunc
	CheckoutSetPaymentHandler gin.HandlerFunc
	CheckoutConfirmHandler    gin.HandlerFunc
	CheckoutStatusHandler     gin.HandlerFunc
	CheckoutDiscardHandler    gin.HandlerFunc

	// Profile endpoints
	GetProfileHandler         gin.HandlerFunc
	AddMoneyHandler           gin.HandlerFunc
	PauseSubscriptionHandler  gin.HandlerFunc
	CancelSubscriptionHandler gin.HandlerFunc

	// Admin endpoints
	AdminListProductsHandler  gin.HandlerFunc
	AdminAddProductHandler    gin.HandlerFunc
	AdminUpdateProductHandler gin.HandlerFunc
	AdminDeleteProductHandler gin.HandlerFunc
	AdminStatsHandler         gin.HandlerFunc
	AdminListUsersHandler     gin.HandlerFunc
	AdminBlockUserHandler     gin.HandlerFunc

	// Chat endpoints
	ChatHistoryHandler gin.HandlerFunc
	ChatSendHandler    gin.HandlerFunc
}
