package handlers

import (
	"errors"
	"net/http"

	"dairyfront/middleware"
	"dairyfront/models"
	"dairyfront/services/checkout"
	"dairyfront/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckoutHandler exposes the subscription checkout flow.
type CheckoutHandler struct {
	Checkout *checkout.DefaultCheckoutService
}

func NewCheckoutHandler(svc *checkout.DefaultCheckoutService) *CheckoutHandler {
	return &CheckoutHandler{Checkout: svc}
}

// respondCheckoutError maps checkout errors to responses: entry errors carry
// a navigation hint, validation problems are 422, everything else 500.
func respondCheckoutError(c *gin.Context, err error) {
	var entryErr *checkout.EntryError
	if errors.As(err, &entryErr) {
		utils.JSONRedirectError(c, http.StatusBadRequest, entryErr.Message, entryErr.Redirect)
		return
	}
	if errors.Is(err, checkout.ErrSubmissionInFlight) {
		utils.JSONError(c, http.StatusConflict, err.Error(), "")
		return
	}
	getLogger(c).Error("Checkout operation failed", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "Something went wrong, please try again", "")
}

// StartHandler opens checkout with the product selection carried over from
// the product page.
func (h *CheckoutHandler) StartHandler(c *gin.Context) {
	var input models.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONRedirectError(c, http.StatusBadRequest,
			"Invalid subscription data. Please select a product first.", "/products")
		return
	}

	sess := middleware.GetSession(c)
	if err := h.Checkout.Start(c.Request.Context(), sess, input); err != nil {
		respondCheckoutError(c, err)
		return
	}

	view, err := h.Checkout.View(sess)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ViewHandler returns the current checkout screen state.
func (h *CheckoutHandler) ViewHandler(c *gin.Context) {
	view, err := h.Checkout.View(middleware.GetSession(c))
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) SetPlanHandler(c *gin.Context) {
	var req struct {
		SubscriptionPlan string `json:"subscriptionPlan"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.SubscriptionPlan == "" {
		utils.JSONError(c, http.StatusBadRequest, "Please select a subscription plan.", "")
		return
	}

	sess := middleware.GetSession(c)
	if err := h.Checkout.SetPlan(c.Request.Context(), sess, req.SubscriptionPlan); err != nil {
		respondCheckoutError(c, err)
		return
	}
	view, err := h.Checkout.View(sess)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) SetAddressHandler(c *gin.Context) {
	var addr models.Address
	if err := c.ShouldBindJSON(&addr); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid address: "+err.Error(), "")
		return
	}

	sess := middleware.GetSession(c)
	if err := h.Checkout.SetAddress(c.Request.Context(), sess, addr); err != nil {
		respondCheckoutError(c, err)
		return
	}
	view, err := h.Checkout.View(sess)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) SetPaymentMethodHandler(c *gin.Context) {
	var req struct {
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.PaymentMethod == "" {
		utils.JSONError(c, http.StatusBadRequest, "Please select a payment method.", "")
		return
	}

	sess := middleware.GetSession(c)
	if err := h.Checkout.SetPaymentMethod(c.Request.Context(), sess, req.PaymentMethod); err != nil {
		var entryErr *checkout.EntryError
		if errors.As(err, &entryErr) {
			respondCheckoutError(c, err)
			return
		}
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	view, err := h.Checkout.View(sess)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ConfirmHandler runs the submission state machine. Validation and
// insufficient-balance failures come back as 422 with the draft intact.
func (h *CheckoutHandler) ConfirmHandler(c *gin.Context) {
	sess := middleware.GetSession(c)
	status, err := h.Checkout.Confirm(c.Request.Context(), sess)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	if status.State == models.CheckoutFailed {
		c.JSON(http.StatusUnprocessableEntity, status)
		return
	}
	c.JSON(http.StatusOK, status)
}

// StatusHandler reports the submission state, including the outcome of the
// deferred payment-completion call.
func (h *CheckoutHandler) StatusHandler(c *gin.Context) {
	status, err := h.Checkout.Status(middleware.GetSession(c))
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// DiscardHandler drops the draft, as when the user navigates away.
func (h *CheckoutHandler) DiscardHandler(c *gin.Context) {
	sess := middleware.GetSession(c)
	if err := h.Checkout.Discard(c.Request.Context(), sess); err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Checkout discarded"})
}
