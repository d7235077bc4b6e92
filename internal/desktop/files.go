package desktop

import (
	"errors"
	"log"
	"path/filepath"

	"github.com/sqweek/dialog"

	"geoboard/internal/project"
)

// ============================================================
// Save / Load
// ============================================================

const fileFilter = "Geoboard project"

func (g *Game) save() {
	if err := g.store.EnsureDir(); err != nil {
		log.Printf("[DESKTOP] %v", err)
	}

	path, err := dialog.File().
		Filter(fileFilter, "json").
		Title(g.loc.Get("dialog_save_title")).
		SetStartDir(g.store.Root()).
		Save()
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			log.Printf("[DESKTOP] Save cancelled")
			return
		}
		g.fail("msg_error_save", err)
		return
	}

	saved, err := g.engine.Save(project.NewFileStore(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		g.fail("msg_error_save", err)
		return
	}
	log.Printf("[DESKTOP] Saved %s", saved)
	g.setStatus(g.loc.Get("msg_saved", saved))
}

func (g *Game) load() {
	path, err := dialog.File().
		Filter(fileFilter, "json").
		Title(g.loc.Get("dialog_load_title")).
		SetStartDir(g.store.Root()).
		Load()
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			log.Printf("[DESKTOP] Load cancelled")
			return
		}
		g.fail("msg_error_load", err)
		return
	}

	g.prompt.Cancel()
	report, loaded, err := g.engine.Load(project.NewFileStore(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			msg := g.loc.Get("msg_file_not_found", path)
			log.Printf("[DESKTOP] %s", msg)
			g.setStatus(msg)
			showError(g.Title(), msg)
			return
		}
		g.fail("msg_error_load", err)
		return
	}

	log.Printf("[DESKTOP] Loaded %s", loaded)
	if skipped := len(report.Functions) + len(report.Objects); skipped > 0 {
		g.setStatus(g.loc.Get("msg_load_partial", skipped))
		return
	}
	g.setStatus(g.loc.Get("msg_loaded", loaded))
}

func showError(title, msg string) {
	dialog.Message("%s", msg).Title(title).Error()
}
