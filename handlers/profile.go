package handlers

import (
	"errors"
	"net/http"

	"dairyfront/middleware"
	"dairyfront/services/account"
	"dairyfront/upstream"
	"dairyfront/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfileHandler serves the profile/wallet screen.
type ProfileHandler struct {
	Account account.AccountService
}

func NewProfileHandler(svc account.AccountService) *ProfileHandler {
	return &ProfileHandler{Account: svc}
}

func surfaceBackendError(c *gin.Context, err error, fallback string) {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		utils.JSONError(c, apiErr.Status, apiErr.Error(), "")
		return
	}
	utils.JSONError(c, http.StatusBadGateway, fallback, "")
}

func (h *ProfileHandler) GetProfileHandler(c *gin.Context) {
	sess := middleware.GetSession(c)
	profile, err := h.Account.GetProfile(c.Request.Context(), sess.UpstreamToken, sess.User)
	if err != nil {
		getLogger(c).Error("Failed to assemble profile", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to retrieve profile", "")
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) AddMoneyHandler(c *gin.Context) {
	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error(), "")
		return
	}

	sess := middleware.GetSession(c)
	wallet, err := h.Account.AddMoney(c.Request.Context(), sess.UpstreamToken, req.Amount)
	if err != nil {
		if req.Amount <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "Amount must be positive", "")
			return
		}
		surfaceBackendError(c, err, "Could not add money to wallet")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Money added to wallet", "wallet": wallet})
}

func (h *ProfileHandler) PauseSubscriptionHandler(c *gin.Context) {
	sess := middleware.GetSession(c)
	id := c.Param("id")
	if err := h.Account.PauseSubscription(c.Request.Context(), sess.UpstreamToken, id); err != nil {
		surfaceBackendError(c, err, "Could not pause subscription")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subscription paused"})
}

func (h *ProfileHandler) CancelSubscriptionHandler(c *gin.Context) {
	sess := middleware.GetSession(c)
	id := c.Param("id")
	if err := h.Account.CancelSubscription(c.Request.Context(), sess.UpstreamToken, id); err != nil {
		surfaceBackendError(c, err, "Could not cancel subscription")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subscription cancelled"})
}
