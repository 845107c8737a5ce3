package main

import (
	"fmt"
	"log"
	"os"

	"bess-sim/internal/api/handlers"
	"bess-sim/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	batteryDir := os.Getenv("BATTERY_DIR")
	if batteryDir == "" {
		batteryDir = "./configs/batteries"
	}
	if info, err := os.Stat(batteryDir); err == nil && info.IsDir() {
		log.Printf("Battery catalog: %s", batteryDir)
	} else {
		log.Printf("Battery catalog not found at %s; inline battery configs only", batteryDir)
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	simulateHandler := handlers.NewSimulateHandler(batteryDir)
	batteryHandler := handlers.NewBatteryHandler(batteryDir)
	strategyHandler := handlers.NewStrategyHandler()
	rankHandler := handlers.NewRankHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulateHandler.RunSimulation)
		api.POST("/simulate/compare", simulateHandler.CompareSimulations)
		api.POST("/validate", simulateHandler.ValidateRun)
		api.POST("/rank", rankHandler.RankSites)

		api.GET("/batteries", batteryHandler.ListBatteries)
		api.GET("/strategies", strategyHandler.ListStrategies)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
