package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/chrisgioia64/financial-report-tools/config"
	"github.com/chrisgioia64/financial-report-tools/handler"
	"github.com/chrisgioia64/financial-report-tools/service"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory %s: %v", cfg.UploadDir, err)
	}

	// Initialize service layer
	revenueService := service.NewRevenueService(cfg)

	// Initialize handler layer
	revenueHandler := handler.NewRevenueHandler(revenueService, cfg)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory (32 MB); larger uploads spill to disk
	router.MaxMultipartMemory = 32 << 20

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Revenue Extraction",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		revenue := api.Group("/revenue")
		{
			revenue.POST("/analyze", revenueHandler.Analyze)
			revenue.POST("/extract", revenueHandler.ExtractBatch)
			revenue.GET("/status/:session_id", revenueHandler.Status)
			revenue.GET("/csv/:filename", revenueHandler.DownloadCSV)
		}
	}

	// Start server
	log.Printf("Starting Revenue Extraction Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
