package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"geoboard/internal/construct"
	"geoboard/internal/function"
	"geoboard/internal/geometry"
	"geoboard/internal/project"
	"geoboard/internal/scene"
	"geoboard/internal/snap"
)

// ============================================================
// Engine
// ============================================================

// ErrUnknownTool is returned by SelectTool for names outside construct.Tools.
var ErrUnknownTool = errors.New("unknown tool")

type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Key is a keyboard key the engine reacts to.
type Key string

const KeyEscape Key = "Escape"

// Config holds the pixel-space constants of one engine instance.
type Config struct {
	Width        float64
	Height       float64
	BaseGridSize float64
	SnapRadiusPx float64
	MinZoom      float64
	MaxZoom      float64
}

const DefaultSnapRadiusPx = 15

func DefaultConfig() Config {
	return Config{
		Width:        1200,
		Height:       800,
		BaseGridSize: geometry.DefaultBaseGridSize,
		SnapRadiusPx: DefaultSnapRadiusPx,
		MinZoom:      geometry.DefaultMinZoom,
		MaxZoom:      geometry.DefaultMaxZoom,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.BaseGridSize <= 0 {
		c.BaseGridSize = d.BaseGridSize
	}
	if c.SnapRadiusPx <= 0 {
		c.SnapRadiusPx = d.SnapRadiusPx
	}
	if c.MinZoom <= 0 {
		c.MinZoom = d.MinZoom
	}
	if c.MaxZoom < c.MinZoom {
		c.MaxZoom = math.Max(d.MaxZoom, c.MinZoom)
	}
	return c
}

// Options carries optional collaborators.
type Options struct {
	// Logger receives engine events. Nil discards them.
	Logger *slog.Logger
	// Prompter answers the angle and text prompts. Nil cancels every prompt.
	Prompter construct.Prompter
}

// Engine owns one camera, one scene and one construction machine. It is
// driven from a single goroutine.
type Engine struct {
	cfg      Config
	log      *slog.Logger
	camera   *geometry.Camera
	scene    *scene.Scene
	resolver *snap.Resolver
	machine  *construct.Machine

	gridVisible bool
	cursor      geometry.Vec
	hasCursor   bool
	preview     *snap.Candidate

	panning bool
	lastPan geometry.Vec
}

func New(cfg Config, opts Options) *Engine {
	cfg = cfg.withDefaults()

	log := opts.Logger
	if log == nil {
		log = slog.New(nopHandler{})
	}

	cam := geometry.NewCamera(cfg.Width, cfg.Height)
	cam.BaseGridSize = cfg.BaseGridSize
	cam.MinZoom = cfg.MinZoom
	cam.MaxZoom = cfg.MaxZoom

	e := &Engine{
		cfg:         cfg,
		log:         log,
		camera:      cam,
		scene:       scene.New(),
		resolver:    snap.NewResolver(),
		gridVisible: true,
	}
	e.machine = construct.NewMachine(e.scene, opts.Prompter)
	e.hookMachine()
	return e
}

func (e *Engine) hookMachine() {
	e.machine.OnCommit = func(o geometry.Object) {
		e.log.Debug("object committed", "kind", o.Kind(), "objects", len(e.scene.Objects), "points", len(e.scene.Points))
	}
	e.machine.OnDelete = func(h scene.Hit) {
		e.log.Debug("object deleted", "kind", h.Kind, "index", h.Index, "standalone", h.Standalone)
	}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// SetPrompter replaces the prompt collaborator, e.g. per HTTP request.
func (e *Engine) SetPrompter(p construct.Prompter) {
	e.machine.SetPrompter(p)
}

// Tolerance is the snap radius in world units at the current zoom.
func (e *Engine) Tolerance() float64 {
	return e.camera.PixelsToWorld(e.cfg.SnapRadiusPx)
}

// ============================================================
// Collaborator operations
// ============================================================

// SelectTool activates a tool by name and abandons pending construction.
func (e *Engine) SelectTool(name string) error {
	tool, ok := construct.ParseTool(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	e.machine.SetTool(tool)
	e.refreshPreview()
	e.log.Info("tool selected", "tool", string(tool))
	return nil
}

func (e *Engine) Tool() construct.Tool {
	return e.machine.Tool()
}

// AddFunction compiles and plots text. The scene is unchanged on error.
func (e *Engine) AddFunction(text string) (*function.Function, error) {
	f, err := e.scene.Functions.Add(text)
	if err != nil {
		e.log.Warn("function rejected", "text", text, "err", err)
		return nil, err
	}
	e.log.Info("function added", "index", f.Index, "text", text)
	e.refreshPreview()
	return f, nil
}

func (e *Engine) DeleteFunction(index int) bool {
	ok := e.scene.Functions.Delete(index)
	if ok {
		e.log.Info("function deleted", "index", index)
		e.refreshPreview()
	}
	return ok
}

func (e *Engine) SetFunctionVisible(index int, visible bool) bool {
	ok := e.scene.Functions.SetVisible(index, visible)
	if ok {
		e.refreshPreview()
	}
	return ok
}

func (e *Engine) Functions() []*function.Function {
	return e.scene.Functions.All()
}

func (e *Engine) SetGridVisible(visible bool) {
	e.gridVisible = visible
}

func (e *Engine) GridVisible() bool {
	return e.gridVisible
}

// Resize updates the viewport after a window size change.
func (e *Engine) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	e.cfg.Width, e.cfg.Height = width, height
	e.camera.Resize(width, height)
}

// ============================================================
// Pointer and keyboard events
// ============================================================

func (e *Engine) pointer(screen geometry.Vec) construct.Pointer {
	raw := e.camera.ScreenToWorld(screen)
	tol := e.Tolerance()
	p := construct.Pointer{Raw: raw, Pos: raw, Tolerance: tol}
	if c, ok := e.resolve(raw); ok {
		p.Pos = c.Pos
	}
	return p
}

func (e *Engine) resolve(world geometry.Vec) (snap.Candidate, bool) {
	return e.resolver.Resolve(e.scene, snap.Query{
		Pos:    world,
		Radius: e.Tolerance(),
		Edges:  e.machine.Tool().SnapsToEdges(),
	})
}

func (e *Engine) OnClick(button Button, screen geometry.Vec) {
	e.setCursor(screen)

	switch button {
	case ButtonLeft:
		e.machine.Click(e.pointer(screen))
	case ButtonRight:
		e.machine.Delete(e.pointer(screen))
	case ButtonMiddle:
		e.panning = true
		e.lastPan = screen
	}
	e.refreshPreview()
}

func (e *Engine) OnMove(screen geometry.Vec) {
	if e.panning {
		e.camera.Pan(screen.X-e.lastPan.X, screen.Y-e.lastPan.Y)
		e.lastPan = screen
	}
	e.setCursor(screen)
	e.machine.Move(e.pointer(screen))
	e.refreshPreview()
}

func (e *Engine) OnRelease(button Button, screen geometry.Vec) {
	e.setCursor(screen)

	switch button {
	case ButtonMiddle:
		e.panning = false
	case ButtonRight:
		if e.machine.Release(e.pointer(screen)) {
			e.log.Debug("polygon closed")
		}
	}
	e.refreshPreview()
}

func (e *Engine) OnKey(key Key) {
	if key == KeyEscape {
		e.machine.Cancel()
		e.refreshPreview()
	}
}

// OnWheel zooms one step per event, in for positive deltaY, keeping the
// world point under screen fixed.
func (e *Engine) OnWheel(deltaY float64, screen geometry.Vec) {
	if deltaY == 0 {
		return
	}
	e.setCursor(screen)
	if e.camera.ZoomAt(deltaY, screen) {
		e.log.Debug("zoom", "zoom", e.camera.Zoom)
	}
	e.refreshPreview()
}

func (e *Engine) setCursor(screen geometry.Vec) {
	e.cursor = screen
	e.hasCursor = true
}

// refreshPreview re-resolves the snap highlight against the latest
// committed scene.
func (e *Engine) refreshPreview() {
	e.preview = nil
	if !e.hasCursor {
		return
	}
	if c, ok := e.resolve(e.camera.ScreenToWorld(e.cursor)); ok {
		e.preview = &c
	}
}

// ============================================================
// Views
// ============================================================

// SnapPreview returns the anchor currently under the cursor.
func (e *Engine) SnapPreview() (snap.Candidate, bool) {
	if e.preview == nil {
		return snap.Candidate{}, false
	}
	return *e.preview, true
}

// Cursor returns the last pointer position in screen pixels, if any event
// has been seen yet.
func (e *Engine) Cursor() (geometry.Vec, bool) {
	return e.cursor, e.hasCursor
}

// CursorWorld returns the cursor position in world coordinates.
func (e *Engine) CursorWorld() geometry.Vec {
	return e.camera.ScreenToWorld(e.cursor)
}

func (e *Engine) Camera() geometry.Camera {
	return *e.camera
}

// Scene exposes the committed scene for read-only use by renderers.
func (e *Engine) Scene() *scene.Scene {
	return e.scene
}

func (e *Engine) Pending() construct.Pending {
	return e.machine.Pending()
}

// ============================================================
// Persistence
// ============================================================

// Document snapshots the scene and camera.
func (e *Engine) Document() project.Document {
	return project.FromScene(*e.camera, e.scene)
}

// Restore replaces the whole scene with doc. The document is rebuilt into
// a fresh scene first, so the current one is kept intact until the swap.
func (e *Engine) Restore(doc project.Document) project.LoadReport {
	sc, cam, report := project.Build(doc)

	e.machine.Reset()
	e.scene.Points = sc.Points
	e.scene.Objects = sc.Objects
	e.scene.Functions = sc.Functions

	e.camera.Zoom = cam.Zoom
	if e.camera.Zoom < e.camera.MinZoom {
		e.camera.Zoom = e.camera.MinZoom
	}
	if e.camera.Zoom > e.camera.MaxZoom {
		e.camera.Zoom = e.camera.MaxZoom
	}
	e.camera.OffsetX = cam.OffsetX
	e.camera.OffsetY = cam.OffsetY
	e.refreshPreview()

	for _, f := range report.Functions {
		e.log.Warn("function not restored", "key", f.Key, "text", f.Text, "err", f.Err)
	}
	for _, o := range report.Objects {
		e.log.Warn("object skipped", "position", o.Position, "type", o.Type, "reason", o.Reason)
	}
	e.log.Info("project restored", "objects", len(e.scene.Objects), "points", len(e.scene.Points), "functions", e.scene.Functions.Len())
	return report
}

// Store persists documents by name.
type Store interface {
	Save(name string, doc project.Document) (string, error)
	Load(name string) (project.Document, string, error)
}

// Save writes the current document to store.
func (e *Engine) Save(store Store, name string) (string, error) {
	path, err := store.Save(name, e.Document())
	if err != nil {
		return "", fmt.Errorf("save %q: %w", name, err)
	}
	e.log.Info("project saved", "path", path)
	return path, nil
}

// Load reads name from store and restores it. A failed read leaves the
// scene untouched.
func (e *Engine) Load(store Store, name string) (project.LoadReport, string, error) {
	doc, path, err := store.Load(name)
	if err != nil {
		return project.LoadReport{}, path, fmt.Errorf("load %q: %w", name, err)
	}
	return e.Restore(doc), path, nil
}

// ============================================================
// Logging
// ============================================================

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h nopHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h nopHandler) WithGroup(string) slog.Handler           { return h }
