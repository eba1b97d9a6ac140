package main

import (
	"log"
	"os"

	"launchpit/internal/db"
	"launchpit/internal/handlers"
	"launchpit/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	stripe "github.com/stripe/stripe-go/v82"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading env vars from system")
	}

	// Initialize Database
	db.Init()

	// Stripe API key for checkout sessions and customer lookups
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("launchpit_session", store))

	// Middleware
	r.Use(middleware.LoadUser())

	// Handlers
	authHandler := handlers.NewAuthHandler()
	productHandler := handlers.NewProductHandler(db.DB)
	engagementHandler := handlers.NewEngagementHandler(db.DB)
	notificationHandler := handlers.NewNotificationHandler(db.DB)
	adminHandler := handlers.NewAdminHandler(db.DB)
	billingHandler := handlers.NewBillingHandler(db.DB)

	// Public Routes
	r.GET("/", productHandler.ListActive)
	r.GET("/products/:slug", productHandler.Detail)
	r.GET("/categories", productHandler.ListCategories)
	r.GET("/categories/:name", productHandler.ListByCategory)
	r.GET("/search", productHandler.Search)

	r.POST("/signup", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Stripe webhook (signature-verified, no session)
	r.POST("/webhook/stripe", billingHandler.Webhook)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/my-products", productHandler.MyProducts)
		authorized.GET("/submission/eligibility", productHandler.Eligibility)
		authorized.POST("/products", productHandler.Create)
		authorized.POST("/products/:slug/edit", productHandler.Update)
		authorized.DELETE("/products/:slug", productHandler.Delete)

		authorized.POST("/products/:slug/upvote", engagementHandler.ToggleUpvote)
		authorized.POST("/products/:slug/comments", engagementHandler.CreateComment)
		authorized.DELETE("/comments/:id", engagementHandler.DeleteComment)

		authorized.GET("/notifications", notificationHandler.List)
		authorized.POST("/notifications/read-all", notificationHandler.ReadAll)

		authorized.POST("/billing/checkout", billingHandler.Checkout)
	}

	// Admin Routes (basic-auth perimeter, separate from user sessions)
	admin := r.Group("/admin")
	admin.Use(middleware.AdminRequired())
	{
		admin.GET("/pending", adminHandler.ListPending)
		admin.POST("/products/:id/activate", adminHandler.Activate)
		admin.POST("/products/:id/reject", adminHandler.Reject)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Launchpit server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
