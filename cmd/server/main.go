package main

import (
	"log"
	"os"
	"time"

	"warung-pos/internal/catalog"
	"warung-pos/internal/drafts"
	"warung-pos/internal/handlers"
	"warung-pos/internal/middleware"
	"warung-pos/internal/sales"
	"warung-pos/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	db, err := store.Open(dataDir)
	if err != nil {
		log.Fatal("Failed to open data store:", err)
	}

	engine := sales.NewEngine(db)
	catalogMgr := catalog.NewManager(db)
	draftStore := drafts.NewStore(db)

	authHandler := handlers.NewAuthHandler(db)
	userHandler := handlers.NewUserHandler(db)
	productHandler := handlers.NewProductHandler(catalogMgr)
	categoryHandler := handlers.NewCategoryHandler(catalogMgr)
	transactionHandler := handlers.NewTransactionHandler(engine)
	draftHandler := handlers.NewDraftHandler(draftStore)
	settingsHandler := handlers.NewSettingsHandler(db)
	reportHandler := handlers.NewReportHandler(db)
	excelHandler := handlers.NewExcelHandler(db)

	r := gin.Default()

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:5173"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/api/login", authHandler.Login)
	r.GET("/api/auth/status", authHandler.Status)

	// Only opens if we explicitly allow it in .env
	if os.Getenv("ALLOW_REGISTRATION") == "true" {
		r.POST("/api/register", authHandler.Register)
		log.Println("WARNING: Registration route is OPEN. Disable this in production!")
	}

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		// STAFF & ADMIN
		api.POST("/logout", authHandler.Logout)
		api.POST("/validate-current-user-password", authHandler.ValidatePassword)

		api.GET("/products", productHandler.List)
		api.GET("/categories", categoryHandler.List)
		api.GET("/banner", settingsHandler.GetBanner)
		api.GET("/qris", settingsHandler.GetQRIS)

		api.POST("/sales", transactionHandler.Checkout)
		api.DELETE("/sales/:id", transactionHandler.Void)
		api.GET("/sales/recent", transactionHandler.Recent)
		// Aliases for the legacy POS frontend
		api.POST("/transactions", transactionHandler.Checkout)
		api.DELETE("/transactions/:id", transactionHandler.Void)
		api.GET("/recent-transactions", transactionHandler.Recent)

		api.GET("/drafts", draftHandler.List)
		api.POST("/drafts", draftHandler.Save)
		api.PUT("/drafts/:id/load", draftHandler.Load)
		api.DELETE("/drafts/:id", draftHandler.Delete)

		api.POST("/products/check-name", productHandler.CheckName)
		api.POST("/products/check-name/:id", productHandler.CheckName)
		api.POST("/categories/check-name", categoryHandler.CheckName)
		api.POST("/categories/check-name/:id", categoryHandler.CheckName)
		// Exclude-id travels as a query param here; a /:id variant would
		// put a wildcard next to this static segment, which gin's route
		// tree rejects.
		api.POST("/users/check-username", userHandler.CheckUsername)

		// ADMIN ONLY
		admin := api.Group("/")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.GET("/users", userHandler.List)
			admin.POST("/users", userHandler.Create)
			admin.PUT("/users/:id", userHandler.Update)
			admin.DELETE("/users/:id", userHandler.Delete)
			// PUT keeps this off the POST tree, where the :id wildcard
			// would collide with the static check-username route.
			admin.PUT("/users/:id/reset-password", userHandler.ResetPassword)

			admin.POST("/products", productHandler.Create)
			admin.PUT("/products/:id", productHandler.Update)
			admin.DELETE("/products/:id", productHandler.Delete)
			admin.GET("/products/export", excelHandler.Export)
			admin.GET("/products/template", excelHandler.Template)
			admin.POST("/products/import", excelHandler.Import)

			admin.POST("/categories", categoryHandler.Create)
			admin.PUT("/categories/:id", categoryHandler.Update)
			admin.DELETE("/categories/:id", categoryHandler.Delete)

			admin.GET("/transactions", transactionHandler.List)
			admin.GET("/reports/summary", reportHandler.Summary)

			admin.PUT("/banner", settingsHandler.SaveBanner)
			admin.GET("/banners", settingsHandler.ListBanners)
			admin.POST("/banners", settingsHandler.SaveBanner)
			admin.POST("/qris", settingsHandler.SaveQRIS)
			admin.PUT("/qris", settingsHandler.SaveQRIS)
			// Older admin builds address the singletons by fixed id.
			admin.GET("/banners/1", settingsHandler.GetBanner)
			admin.POST("/banners/1", settingsHandler.SaveBanner)
			admin.GET("/qris/1", settingsHandler.GetQRIS)
			admin.POST("/qris/1", settingsHandler.SaveQRIS)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Server starting on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
