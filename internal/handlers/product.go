package handlers

import (
	"net/http"
	"strconv"
	"time"

	"launchpit/internal/middleware"
	"launchpit/internal/models"
	"launchpit/internal/services"
	"launchpit/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const categoriesCacheKey = "categories:all"

type ProductHandler struct {
	products    *services.ProductService
	ranking     *services.RankingService
	entitlement *services.EntitlementService
	db          *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{
		products:    services.NewProductService(db),
		ranking:     services.NewRankingService(db),
		entitlement: services.NewEntitlementService(db),
		db:          db,
	}
}

// rankMap indexes the current leaderboard by product ID.
func rankMap(ranked []services.RankedProduct) map[uint]int {
	m := make(map[uint]int, len(ranked))
	for _, r := range ranked {
		m[r.ProductID] = r.Rank
	}
	return m
}

// ListActive serves the home feed: ACTIVE products with their computed ranks.
func (h *ProductHandler) ListActive(c *gin.Context) {
	products, err := h.products.GetActiveProducts()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	ranked, err := h.ranking.Rank()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	ranks := rankMap(ranked)

	for i := range products {
		products[i].Rank = ranks[products[i].ID]
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

type commentView struct {
	models.Comment
	BodyHTML string `json:"body_html"`
}

// Detail serves one product by slug, with comments rendered from markdown to
// sanitized HTML and the caller's upvote state.
func (h *ProductHandler) Detail(c *gin.Context) {
	product, err := h.products.GetBySlug(c.Param("slug"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rank, err := h.ranking.RankOf(product.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	product.Rank = rank

	comments := make([]commentView, len(product.Comments))
	for i, com := range product.Comments {
		comments[i] = commentView{
			Comment:  com,
			BodyHTML: utils.RenderMarkdown(com.Body),
		}
	}

	hasUpvoted := false
	if user := middleware.CurrentUser(c); user != nil {
		for _, u := range product.Upvotes {
			if u.UserID == user.ID {
				hasUpvoted = true
				break
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"product":     product,
		"comments":    comments,
		"has_upvoted": hasUpvoted,
	})
}

// Eligibility tells the submission form whether the current user may submit.
// Submit re-checks server-side regardless.
func (h *ProductHandler) Eligibility(c *gin.Context) {
	user := middleware.CurrentUser(c)
	ok, err := h.entitlement.CanSubmit(user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"can_submit": ok, "limit": services.FreeProductLimit})
}

func (h *ProductHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var draft services.ProductDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product, err := h.products.Submit(user.ID, draft)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

func (h *ProductHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	existing, err := h.products.GetBySlug(c.Param("slug"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var draft services.ProductDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product, err := h.products.Update(user.ID, existing.ID, draft)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	existing, err := h.products.GetBySlug(c.Param("slug"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := h.products.Delete(user.ID, existing.ID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// MyProducts lists the current user's products of any status.
func (h *ProductHandler) MyProducts(c *gin.Context) {
	user := middleware.CurrentUser(c)

	products, err := h.products.GetOwnerProducts(user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// ListCategories serves the category list, cached briefly since it only
// changes when a submission introduces a new name.
func (h *ProductHandler) ListCategories(c *gin.Context) {
	if cached := utils.GetCache().Get(categoriesCacheKey); cached != nil {
		if categories, ok := cached.([]models.Category); ok {
			c.JSON(http.StatusOK, gin.H{"categories": categories})
			return
		}
	}

	categories, err := h.products.GetCategories()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	utils.GetCache().Set(categoriesCacheKey, categories, 1*time.Minute)
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// ListByCategory serves a category page.
func (h *ProductHandler) ListByCategory(c *gin.Context) {
	products, err := h.products.GetByCategory(c.Param("name"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// Search is a plain substring filter over active product names.
func (h *ProductHandler) Search(c *gin.Context) {
	products, err := h.products.Search(c.Query("q"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// parseID is shared by the admin endpoints which address products by
// numeric ID rather than slug.
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.Atoi(c.Param(param))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
