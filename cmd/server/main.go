package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"geoboard/internal/api"
	"geoboard/internal/common/config"
	"geoboard/internal/common/middleware"
	"geoboard/internal/project"
	"geoboard/migrations"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Geoboard Server
// ============================================================

func main() {
	cfg := config.Load()

	db, err := project.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := project.NewRepository(db)
	if err := repo.Init(context.Background(), migrations.FS); err != nil {
		log.Fatalf("init db: %v", err)
	}

	engineCfg := cfg.Engine(1200, 800)
	sessions := api.NewSessionManager(engineCfg, cfg.SessionIdle())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sessions.Run(ctx, time.Minute)

	handler := api.NewHandler(repo, sessions, engineCfg)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Geoboard Server",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// ============================================================
	// Routes
	// ============================================================

	handler.Register(app)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Geoboard Server on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
