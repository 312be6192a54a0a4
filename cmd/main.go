package main

import (
	"log"
	"skylink/internal/classifier"
	"skylink/internal/config"
	"skylink/internal/handlers"
	"skylink/internal/repository"
	"skylink/internal/services"
	"skylink/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := InitConfig()
	cls := InitClassifier(cfg)

	aircraftRepo := repository.NewAircraftRepository()
	droneRepo := repository.NewDroneRepository()
	airspaceService := services.NewAirspaceService(cfg, cls, aircraftRepo, droneRepo)
	service := services.NewInstrumentedAirspaceService(airspaceService, utils.NewMetrics())
	defer service.Close()

	// Run the first pass so dashboards have data from the start.
	if snap, err := service.Refresh(cfg.DefaultMode); err != nil {
		log.Fatalf("Initial %s pass failed: %v", cfg.DefaultMode, err)
	} else {
		log.Printf("Initial %s snapshot %s: %d aircraft, %d drones", snap.Mode, snap.ID, len(snap.Aircraft), len(snap.Drones))
	}

	app := fiber.New()

	//Register Prometheus metrics endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Set up routes for airspace, threat and dataset operations
	ah := handlers.NewAirspaceHandler(service)
	th := handlers.NewThreatHandler(service)
	dh := handlers.NewDatasetHandler(service)
	api := app.Group("/api/airspace")
	api.Get("/status", ah.GetStatus)
	api.Put("/data-source", ah.SetDataSource)
	api.Post("/refresh", ah.Refresh)
	api.Get("/pilot", ah.GetPilotView)
	api.Get("/drones", ah.GetDroneView)
	api.Get("/threats", th.GetThreats)
	api.Get("/threats/summary", th.GetSummary)
	api.Post("/threats/export", th.ExportThreats)
	api.Post("/datasets", dh.ImportDataset)

	api.Get("/swagger/*", swagger.HandlerDefault)

	// Add Health check endpoint
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	routes := app.GetRoutes()
	log.Println("Registered routes:")
	for _, r := range routes {
		log.Printf("  %s %s\n", r.Method, r.Path)
	}

	// Start the Fiber server
	port := cfg.AppPort
	if port == "" {
		port = "8080"
		log.Printf("Defaulting to port %s", port)
	}
	log.Printf("Server listening on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

func InitConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	return cfg
}

func InitClassifier(cfg *config.Config) *classifier.Classifier {
	cls, err := classifier.New(cfg.Tiers)
	if err != nil {
		log.Fatalf("Tier configuration invalid: %v", err)
	}
	return cls
}
