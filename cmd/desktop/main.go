package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"geoboard/internal/common/config"
	"geoboard/internal/desktop"
	"geoboard/internal/i18n"
)

// ============================================================
// Geoboard Desktop
// ============================================================

func main() {
	cfg := config.Load()
	loc := i18n.New(cfg.Language)

	game, err := desktop.NewGame(cfg, loc)
	if err != nil {
		log.Fatalf("init desktop: %v", err)
	}

	w, h := game.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowResizable(true)

	log.Printf("Starting Geoboard Desktop (lang: %s, projects: %s)", loc.Language(), cfg.ProjectsDir)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Desktop stopped: %v", err)
	}
}
