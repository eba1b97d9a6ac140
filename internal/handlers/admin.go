package handlers

import (
	"net/http"

	"launchpit/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler serves the moderation endpoints. Access control is the
// basic-auth perimeter in middleware.AdminRequired; the handlers themselves
// perform no ownership checks.
type AdminHandler struct {
	products   *services.ProductService
	moderation *services.ModerationService
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{
		products:   services.NewProductService(db),
		moderation: services.NewModerationService(db),
	}
}

func (h *AdminHandler) ListPending(c *gin.Context) {
	products, err := h.products.GetPendingProducts()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *AdminHandler) Activate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.moderation.Activate(id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *AdminHandler) Reject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.moderation.Reject(id, req.Reason); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
