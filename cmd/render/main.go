package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"geoboard/internal/common/config"
	"geoboard/internal/project"
	"geoboard/internal/render"
)

// ============================================================
// Render CLI
// ============================================================

func main() {
	in := flag.String("in", "", "project document (.json)")
	out := flag.String("out", "", "output image (.png or .svg)")
	width := flag.Int("width", 1200, "image width in pixels")
	height := flag.Int("height", 800, "image height in pixels")
	grid := flag.Bool("grid", true, "draw the coordinate grid")
	flag.Parse()

	if *in == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*in, *out, *width, *height, *grid); err != nil {
		log.Fatalf("[RENDER] %v", err)
	}
}

func run(in, out string, width, height int, grid bool) error {
	cfg := config.Load()

	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("open %s: %w", in, err)
	}
	doc, err := project.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("read %s: %w", in, err)
	}

	frame, report := render.DocumentFrame(doc, cfg.Engine(float64(width), float64(height)), grid)
	for _, fn := range report.Functions {
		log.Printf("[RENDER] function %s (%q) skipped: %v", fn.Key, fn.Text, fn.Err)
	}
	for _, obj := range report.Objects {
		log.Printf("[RENDER] object #%d (%s) skipped: %s", obj.Position, obj.Type, obj.Reason)
	}

	painter := render.NewPainter()

	switch ext := strings.ToLower(filepath.Ext(out)); ext {
	case ".svg":
		svg := painter.SVGString(frame, float64(width), float64(height))
		if err := os.WriteFile(out, []byte(svg), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
	case ".png":
		dst, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		if err := painter.WritePNG(dst, frame, width, height); err != nil {
			dst.Close()
			return err
		}
		if err := dst.Close(); err != nil {
			return fmt.Errorf("close %s: %w", out, err)
		}
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}

	log.Printf("[RENDER] %s -> %s (%dx%d)", in, out, width, height)
	return nil
}
