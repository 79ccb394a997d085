package handlers

import (
	"net/http"

	"dairyfront/middleware"
	"dairyfront/models"
	"dairyfront/services/adminpanel"
	"dairyfront/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the admin screens: catalog management, dashboard and
// user management.
type AdminHandler struct {
	Admin adminpanel.AdminService
}

func NewAdminHandler(svc adminpanel.AdminService) *AdminHandler {
	return &AdminHandler{Admin: svc}
}

func (h *AdminHandler) ListProductsHandler(c *gin.Context) {
	sess := middleware.GetSession(c)
	products, err := h.Admin.ListProducts(c.Request.Context(), sess.UpstreamToken)
	if err != nil {
		surfaceBackendError(c, err, "Could not load products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *AdminHandler) AddProductHandler(c *gin.Context) {
	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error(), "")
		return
	}

	sess := middleware.GetSession(c)
	product, err := h.Admin.AddProduct(c.Request.Context(), sess.UpstreamToken, input)
	if err != nil {
		getLogger(c).Warn("Add product failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

func (h *AdminHandler) UpdateProductHandler(c *gin.Context) {
	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error(), "")
		return
	}

	sess := middleware.GetSession(c)
	product, err := h.Admin.UpdateProduct(c.Request.Context(), sess.UpstreamToken, c.Param("id"), input)
	if err != nil {
		getLogger(c).Warn("Update product failed", zap.String("id", c.Param("id")), zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h *AdminHandler) DeleteProductHandler(c *gin.Context) {
	sess := middleware.GetSession(c)
	if err := h.Admin.DeleteProduct(c.Request.Context(), sess.UpstreamToken, c.Param("id")); err != nil {
		surfaceBackendError(c, err, "Could not delete product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

func (h *AdminHandler) StatsHandler(c *gin.Context) {
	sess := middleware.GetSession(c)
	stats, err := h.Admin.Stats(c.Request.Context(), sess.UpstreamToken)
	if err != nil {
		surfaceBackendError(c, err, "Could not load dashboard stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListUsersHandler(c *gin.Context) {
	sess := middleware.GetSession(c)
	users, err := h.Admin.ListUsers(c.Request.Context(), sess.UpstreamToken)
	if err != nil {
		surfaceBackendError(c, err, "Could not load users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *AdminHandler) SetUserBlockedHandler(c *gin.Context) {
	var req struct {
		Blocked bool `json:"blocked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error(), "")
		return
	}

	sess := middleware.GetSession(c)
	if err := h.Admin.SetUserBlocked(c.Request.Context(), sess.UpstreamToken, c.Param("id"), req.Blocked); err != nil {
		surfaceBackendError(c, err, "Could not update user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated"})
}
