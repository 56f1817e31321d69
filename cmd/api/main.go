package main

import (
	"fmt"
	"log"
	"os"

	"laes-sim/internal/airprops"
	"laes-sim/internal/api/handlers"
	"laes-sim/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	air := airprops.New()
	cycleHandler := handlers.NewCycleHandler(air)
	simulateHandler := handlers.NewSimulateHandler(air)
	economicsHandler := handlers.NewEconomicsHandler(air)
	sweepHandler := handlers.NewSweepHandler(air)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/rte", cycleHandler.RunRTE)
		api.POST("/simulate", simulateHandler.RunSimulation)
		api.POST("/economics", economicsHandler.RunEconomics)

		api.GET("/sweep", sweepHandler.RunSweep)
		api.GET("/schedules", handlers.ListSchedules)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
