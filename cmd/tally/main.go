package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/mkoster/tally/internal/api"
	"github.com/mkoster/tally/internal/security"
	"github.com/mkoster/tally/internal/store"
)

func main() {
	_ = godotenv.Load()

	location := mustLoadLocation(getEnv("TZ", "Local"))
	time.Local = location

	port := getEnv("PORT", "8080")
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Never run with verification disabled: fall back to an
		// ephemeral secret, which invalidates tokens on restart.
		generated, err := security.RandomSecret(48)
		if err != nil {
			log.Fatalf("generate signing secret: %v", err)
		}
		secret = generated
		log.Print("JWT_SECRET is not set; using an ephemeral secret, tokens will not survive a restart")
	}

	documents, err := openStore()
	if err != nil {
		log.Fatalf("store init failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Tally",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	api.RegisterRoutes(app, api.NewHandler(documents, secret))

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Tally listening on http://0.0.0.0:%s (tz: %s)", port, location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func openStore() (store.Store, error) {
	switch getEnv("STORE", "sqlite") {
	case "json":
		return store.NewFileStore(getEnv("DATA_FILE", filepath.Join("data", "tally.json")))
	default:
		return store.OpenSQLite(getEnv("DB_PATH", filepath.Join("data", "tally.db")))
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
