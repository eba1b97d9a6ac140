package handlers

import (
	"net/http"

	"launchpit/internal/middleware"
	"launchpit/internal/services"
	"launchpit/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EngagementHandler struct {
	engagement *services.EngagementService
	products   *services.ProductService
}

func NewEngagementHandler(db *gorm.DB) *EngagementHandler {
	return &EngagementHandler{
		engagement: services.NewEngagementService(db),
		products:   services.NewProductService(db),
	}
}

// ToggleUpvote flips the caller's upvote and returns the authoritative new
// total, so multiple tabs cannot drift from the server truth.
func (h *EngagementHandler) ToggleUpvote(c *gin.Context) {
	user := middleware.CurrentUser(c)

	product, err := h.products.GetBySlug(c.Param("slug"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	upvoted, total, err := h.engagement.ToggleUpvote(user.ID, product.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"upvoted": upvoted, "total": total})
}

type commentRequest struct {
	Body string `json:"body"`
}

func (h *EngagementHandler) CreateComment(c *gin.Context) {
	user := middleware.CurrentUser(c)

	product, err := h.products.GetBySlug(c.Param("slug"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comment, err := h.engagement.AddComment(user.ID, product.ID, req.Body)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"comment":   comment,
		"body_html": utils.RenderMarkdown(comment.Body),
	})
}

func (h *EngagementHandler) DeleteComment(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.engagement.DeleteComment(user.ID, id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
