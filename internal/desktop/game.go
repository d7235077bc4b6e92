package desktop

import (
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"geoboard/internal/common/config"
	"geoboard/internal/desktop/widget"
	"geoboard/internal/engine"
	"geoboard/internal/geometry"
	"geoboard/internal/i18n"
	"geoboard/internal/project"
	"geoboard/internal/render"
)

// ============================================================
// Game
// ============================================================

const statusTimeout = 5 * time.Second

var mouseButtons = []struct {
	ebiten ebiten.MouseButton
	engine engine.Button
}{
	{ebiten.MouseButtonLeft, engine.ButtonLeft},
	{ebiten.MouseButtonRight, engine.ButtonRight},
	{ebiten.MouseButtonMiddle, engine.ButtonMiddle},
}

// Game hosts one engine in an ebiten window: toolbar on top, function
// panel on the right, drawing canvas in the rest.
type Game struct {
	engine  *engine.Engine
	painter *render.Painter
	loc     *i18n.Localizer
	store   *project.FileStore
	fonts   *fontBank

	toolbar *widget.Toolbar
	panel   widget.FunctionPanel
	prompt  widget.PromptBox

	canvas        *ebiten.Image
	width, height int
	cursor        geometry.Vec
	chars         []rune

	status      string
	statusUntil time.Time
}

func NewGame(cfg *config.Config, loc *i18n.Localizer) (*Game, error) {
	fonts, err := newFontBank()
	if err != nil {
		return nil, err
	}

	d := engine.DefaultConfig()
	engineCfg := cfg.Engine(d.Width, d.Height)
	g := &Game{
		painter: render.NewPainter(),
		loc:     loc,
		store:   project.NewFileStore(cfg.ProjectsDir),
		fonts:   fonts,
		toolbar: widget.NewToolbar(),
		width:   int(engineCfg.Width) + widget.PanelWidth,
		height:  int(engineCfg.Height) + widget.ToolbarHeight,
	}
	g.engine = engine.New(engineCfg, engine.Options{Logger: slog.Default(), Prompter: &g.prompt})
	g.painter.Readout = func(x, y float64) string {
		return loc.Get("coord_readout", x, y)
	}
	g.setStatus(loc.Get("msg_initialized"))
	return g, nil
}

// WindowSize is the initial window size: the canvas plus toolbar and panel.
func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}

func (g *Game) Title() string {
	return g.loc.Get("window_title")
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// ============================================================
// Update
// ============================================================

func (g *Game) Update() error {
	g.layout()
	x, y := ebiten.CursorPosition()

	g.chars = ebiten.AppendInputChars(g.chars[:0])

	if g.prompt.Visible() {
		g.updatePrompt(x, y)
		return nil
	}

	if g.panel.Field.Focused {
		g.updateFunctionInput()
	} else if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.engine.OnKey(engine.KeyEscape)
	}

	g.updateMouse(x, y)
	return nil
}

// layout sizes the canvas, the engine camera and the widgets to the window.
func (g *Game) layout() {
	area := widget.Canvas(g.width, g.height)
	if area.Empty() {
		g.canvas = nil
	} else if g.canvas == nil || g.canvas.Bounds().Dx() != area.W || g.canvas.Bounds().Dy() != area.H {
		g.canvas = ebiten.NewImage(area.W, area.H)
		g.engine.Resize(float64(area.W), float64(area.H))
	}

	g.toolbar.Layout(g.width, func(key string) string { return g.loc.Get(key) }, g.measureUI)
	g.panel.Layout(widget.Panel(g.width, g.height), g.engine.Functions(), g.measureUI(g.loc.Get("function_add")))
}

func (g *Game) updatePrompt(x, y int) {
	g.prompt.Field.Insert(g.chars)
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.prompt.Field.Backspace()
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyKPEnter):
		g.prompt.Submit()
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.prompt.Cancel()
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		l := g.prompt.Layout(widget.Canvas(g.width, g.height))
		switch {
		case l.OK.Contains(x, y):
			g.prompt.Submit()
		case l.Cancel.Contains(x, y):
			g.prompt.Cancel()
		}
	}
}

func (g *Game) updateFunctionInput() {
	f := &g.panel.Field
	f.Insert(g.chars)
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		f.Backspace()
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyKPEnter):
		g.addFunction()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		f.Focused = false
	}
}

func (g *Game) updateMouse(x, y int) {
	area := widget.Canvas(g.width, g.height)
	inCanvas := area.Contains(x, y)
	local := geometry.V(float64(x-area.X), float64(y-area.Y))

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !inCanvas {
		if b, ok := g.toolbar.HitTest(x, y); ok {
			g.onToolbar(b)
		} else {
			g.onPanel(x, y)
		}
		return
	}

	panning := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if local != g.cursor && (inCanvas || panning) {
		g.engine.OnMove(local)
	}
	g.cursor = local

	for _, b := range mouseButtons {
		if inCanvas && inpututil.IsMouseButtonJustPressed(b.ebiten) {
			g.panel.Field.Focused = false
			g.engine.OnClick(b.engine, local)
		}
		if inpututil.IsMouseButtonJustReleased(b.ebiten) {
			g.engine.OnRelease(b.engine, local)
		}
	}

	if _, dy := ebiten.Wheel(); dy != 0 && inCanvas {
		g.engine.OnWheel(dy, local)
	}
}

// ============================================================
// Actions
// ============================================================

func (g *Game) onToolbar(b widget.Button) {
	switch b.Action {
	case widget.ActionTool:
		g.prompt.Cancel()
		if err := g.engine.SelectTool(string(b.Tool)); err != nil {
			g.fail("msg_error", err)
			return
		}
		g.setStatus(g.loc.Get("msg_tool_changed", b.Label))
	case widget.ActionGrid:
		g.engine.SetGridVisible(!g.engine.GridVisible())
	case widget.ActionSave:
		g.save()
	case widget.ActionLoad:
		g.load()
	case widget.ActionLanguage:
		g.loc.SetLanguage(g.loc.Next())
		ebiten.SetWindowTitle(g.Title())
		log.Printf("[DESKTOP] Language: %s", g.loc.Language())
	}
}

func (g *Game) onPanel(x, y int) {
	hit, index := g.panel.HitTest(x, y)
	g.panel.Field.Focused = hit == widget.HitInput

	switch hit {
	case widget.HitAdd:
		g.addFunction()
	case widget.HitToggle:
		if row, ok := g.panel.Row(index); ok {
			g.engine.SetFunctionVisible(index, !row.Visible)
		}
	case widget.HitDelete:
		g.engine.DeleteFunction(index)
	}
}

func (g *Game) addFunction() {
	text := strings.TrimSpace(g.panel.Field.Text())
	if text == "" {
		return
	}
	if _, err := g.engine.AddFunction(text); err != nil {
		msg := g.loc.Get("msg_function_error", text, err)
		log.Printf("[DESKTOP] %s", msg)
		g.setStatus(msg)
		showError(g.Title(), msg)
		return
	}
	g.panel.Field.Clear()
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusUntil = time.Now().Add(statusTimeout)
}

// fail reports err under the message key in the status line and a
// native message box.
func (g *Game) fail(key string, err error) {
	msg := g.loc.Get(key, err)
	log.Printf("[DESKTOP] %s", msg)
	g.setStatus(msg)
	showError(g.Title(), msg)
}

func (g *Game) measureUI(s string) int {
	w, _ := g.fonts.measure(s, uiFont)
	return int(w)
}
