package handlers

import (
	"net/http"
	"strconv"

	"dairyfront/services/catalog"
	"dairyfront/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductHandler struct {
	Catalog catalog.CatalogService
}

func NewProductHandler(svc catalog.CatalogService) *ProductHandler {
	return &ProductHandler{Catalog: svc}
}

func (h *ProductHandler) ListProductsHandler(c *gin.Context) {
	products, err := h.Catalog.ListProducts(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to list products", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Could not load products", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *ProductHandler) GetProductHandler(c *gin.Context) {
	id := c.Param("id")
	product, err := h.Catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		getLogger(c).Warn("Failed to fetch product", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusNotFound, "Product not found", "")
		return
	}

	limit := 4
	if raw := c.Query("related"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	related, err := h.Catalog.RelatedProducts(c.Request.Context(), product, limit)
	if err != nil {
		// The detail view still renders without suggestions.
		getLogger(c).Warn("Failed to fetch related products", zap.Error(err))
		related = nil
	}

	c.JSON(http.StatusOK, gin.H{"product": product, "related": related})
}
