package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"geoboard/internal/construct"
	"geoboard/internal/engine"
	"geoboard/internal/geometry"
	"geoboard/internal/project"
	"geoboard/internal/render"
	"geoboard/internal/snap"
)

// ============================================================
// Session payloads
// ============================================================

type functionState struct {
	Index   int    `json:"index"`
	Text    string `json:"text"`
	Visible bool   `json:"visible"`
}

type pendingState struct {
	Tool        string       `json:"tool"`
	Start       *[2]float64  `json:"start,omitempty"`
	Vertices    [][2]float64 `json:"vertices"`
	AnglePoints [][2]float64 `json:"angle_points"`
	Awaiting    bool         `json:"awaiting"`
}

type sessionState struct {
	ID          string              `json:"id"`
	Tool        string              `json:"tool"`
	GridVisible bool                `json:"grid_visible"`
	Camera      project.CameraState `json:"camera"`
	Cursor      *[2]float64         `json:"cursor,omitempty"`
	Snap        *snap.Candidate     `json:"snap,omitempty"`
	Pending     pendingState        `json:"pending"`
	Functions   []functionState     `json:"functions"`
	Objects     int                 `json:"objects"`
	Points      int                 `json:"points"`
}

// answer содержит заранее заданный ответ на промпт, который может вызвать событие.
type answer struct {
	Number *float64 `json:"number"`
	Text   *string  `json:"text"`
}

type event struct {
	Type   string  `json:"type"`
	Button string  `json:"button"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Key    string  `json:"key"`
	DeltaY float64 `json:"delta_y"`
	Answer *answer `json:"answer"`
}

type eventsRequest struct {
	Events []event `json:"events"`
}

func pair(v geometry.Vec) [2]float64 {
	return [2]float64{v.X, v.Y}
}

func pairs(vs []geometry.Vec) [][2]float64 {
	out := make([][2]float64, len(vs))
	for i, v := range vs {
		out[i] = pair(v)
	}
	return out
}

func stateOf(id string, e *engine.Engine) sessionState {
	cam := e.Camera()
	pend := e.Pending()

	st := sessionState{
		ID:          id,
		Tool:        string(e.Tool()),
		GridVisible: e.GridVisible(),
		Camera:      project.CameraState{Zoom: cam.Zoom, OffsetX: cam.OffsetX, OffsetY: cam.OffsetY},
		Pending: pendingState{
			Tool:        string(pend.Tool),
			Vertices:    pairs(pend.Vertices),
			AnglePoints: pairs(pend.AnglePoints),
			Awaiting:    pend.Awaiting,
		},
		Functions: []functionState{},
		Objects:   len(e.Scene().Objects),
		Points:    len(e.Scene().Points),
	}
	if pend.Start != nil {
		p := pair(*pend.Start)
		st.Pending.Start = &p
	}
	if _, ok := e.Cursor(); ok {
		p := pair(e.CursorWorld())
		st.Cursor = &p
	}
	if c, ok := e.SnapPreview(); ok {
		st.Snap = &c
	}
	for _, f := range e.Functions() {
		st.Functions = append(st.Functions, functionState{Index: f.Index, Text: f.Source, Visible: f.Visible})
	}
	return st
}

// ============================================================
// Session Handlers
// ============================================================

func (h *Handler) CreateSession(c fiber.Ctx) error {
	s := h.sessions.Create()
	log.Printf("[SESSION] created %s", s.ID)

	var st sessionState
	_ = s.Do(func(e *engine.Engine) error {
		st = stateOf(s.ID, e)
		return nil
	})
	return c.Status(http.StatusCreated).JSON(st)
}

func (h *Handler) DeleteSession(c fiber.Ctx) error {
	if !h.sessions.Delete(c.Params("id")) {
		return fail(c, http.StatusNotFound, "session not found")
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *Handler) GetSession(c fiber.Ctx) error {
	return h.withSession(c, func(s *Session, e *engine.Engine) error {
		return c.JSON(stateOf(s.ID, e))
	})
}

// SelectTool переключает инструмент: {"tool": "polygon"}.
func (h *Handler) SelectTool(c fiber.Ctx) error {
	var req struct {
		Tool string `json:"tool"`
	}
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid json")
	}

	return h.withSession(c, func(s *Session, e *engine.Engine) error {
		if err := e.SelectTool(req.Tool); err != nil {
			return fail(c, http.StatusBadRequest, err.Error())
		}
		return c.JSON(stateOf(s.ID, e))
	})
}

// Events применяет события указателя и клавиатуры по порядку. Промпт,
// вызванный событием без answer, отменяется.
func (h *Handler) Events(c fiber.Ctx) error {
	var req eventsRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid json")
	}
	for i, ev := range req.Events {
		if err := validateEvent(ev); err != nil {
			return fail(c, http.StatusBadRequest, "event "+strconv.Itoa(i)+": "+err.Error())
		}
	}

	return h.withSession(c, func(s *Session, e *engine.Engine) error {
		for _, ev := range req.Events {
			applyEvent(e, ev)
		}
		return c.JSON(stateOf(s.ID, e))
	})
}

var buttons = map[string]engine.Button{
	"":       engine.ButtonLeft,
	"left":   engine.ButtonLeft,
	"right":  engine.ButtonRight,
	"middle": engine.ButtonMiddle,
}

func validateEvent(ev event) error {
	switch ev.Type {
	case "click", "release":
		if _, ok := buttons[ev.Button]; !ok {
			return errors.New("unknown button " + strconv.Quote(ev.Button))
		}
	case "move", "wheel":
	case "key":
		if ev.Key == "" {
			return errors.New("key required")
		}
	default:
		return errors.New("unknown event type " + strconv.Quote(ev.Type))
	}
	return nil
}

func applyEvent(e *engine.Engine, ev event) {
	prompter := construct.Scripted{}
	if ev.Answer != nil {
		prompter = construct.Scripted{Number: ev.Answer.Number, Text: ev.Answer.Text}
	}
	e.SetPrompter(prompter)
	defer e.SetPrompter(construct.Scripted{})

	pos := geometry.V(ev.X, ev.Y)
	switch ev.Type {
	case "click":
		e.OnClick(buttons[ev.Button], pos)
	case "release":
		e.OnRelease(buttons[ev.Button], pos)
	case "move":
		e.OnMove(pos)
	case "wheel":
		e.OnWheel(ev.DeltaY, pos)
	case "key":
		e.OnKey(engine.Key(ev.Key))
	}
}

// AddFunction добавляет график: {"text": "sin(x)"}.
func (h *Handler) AddFunction(c fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid json")
	}

	return h.withSession(c, func(s *Session, e *engine.Engine) error {
		f, err := e.AddFunction(req.Text)
		if err != nil {
			return expressionError(c, err)
		}
		return c.Status(http.StatusCreated).JSON(functionState{Index: f.Index, Text: f.Source, Visible: f.Visible})
	})
}

// SetFunctionVisible меняет видимость графика: {"visible": false}.
func (h *Handler) SetFunctionVisible(c fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid index")
	}
	var req struct {
		Visible *bool `json:"visible"`
	}
	if err := json.Unmarshal(c.Body(), &req); err != nil || req.Visible == nil {
		return fail(c, http.StatusBadRequest, "visible required")
	}

	return h.withSession(c, func(s *Session, e *engine.Engine) error {
		if !e.SetFunctionVisible(index, *req.Visible) {
			return fail(c, http.StatusNotFound, "function not found")
		}
		return c.JSON(stateOf(s.ID, e))
	})
}

func (h *Handler) DeleteFunction(c fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid index")
	}

	return h.withSession(c, func(s *Session, e *engine.Engine) error {
		if !e.DeleteFunction(index) {
			return fail(c, http.StatusNotFound, "function not found")
		}
		return c.SendStatus(http.StatusNoContent)
	})
}

// SetGrid включает или скрывает сетку: {"visible": true}.
func (h *Handler) SetGrid(c fiber.Ctx) error {
	var req struct {
		Visible bool `json:"visible"`
	}
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid json")
	}

	return h.withSession(c, func(s *Session, e *engine.Engine) error {
		e.SetGridVisible(req.Visible)
		return c.JSON(stateOf(s.ID, e))
	})
}

func (h *Handler) SessionDocument(c fiber.Ctx) error {
	return h.withSession(c, func(s *Session, e *engine.Engine) error {
		return c.JSON(e.Document())
	})
}

// SaveSession сохраняет сцену в репозиторий под именем: {"name": "demo"}.
// Существующий проект с тем же именем перезаписывается.
func (h *Handler) SaveSession(c fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid json")
	}
	if strings.TrimSpace(req.Name) == "" {
		return fail(c, http.StatusBadRequest, "name required")
	}

	return h.withSession(c, func(s *Session, e *engine.Engine) error {
		rec, err := h.repo.SaveByName(c.Context(), req.Name, e.Document())
		if err != nil {
			return projectError(c, err)
		}
		log.Printf("[SESSION] %s saved as %s (%s)", s.ID, rec.Name, rec.ID)
		return c.JSON(fiber.Map{"id": rec.ID, "name": rec.Name, "updated_at": rec.UpdatedAt})
	})
}

// LoadSession заменяет сцену сессии проектом из репозитория. Пропущенные
// функции и объекты возвращаются в report.
func (h *Handler) LoadSession(c fiber.Ctx) error {
	rec, err := h.repo.Get(c.Context(), c.Params("projectID"))
	if err != nil {
		return projectError(c, err)
	}

	return h.withSession(c, func(s *Session, e *engine.Engine) error {
		report := e.Restore(rec.Document)
		return c.JSON(fiber.Map{
			"state":  stateOf(s.ID, e),
			"report": reportPayload(report),
		})
	})
}

func (h *Handler) SessionSVG(c fiber.Ctx) error {
	return h.withSession(c, func(s *Session, e *engine.Engine) error {
		return h.sendSVG(c, render.FromEngine(e))
	})
}

func (h *Handler) SessionPNG(c fiber.Ctx) error {
	return h.withSession(c, func(s *Session, e *engine.Engine) error {
		return h.sendPNG(c, render.FromEngine(e))
	})
}

// ============================================================
// Helpers
// ============================================================

func (h *Handler) withSession(c fiber.Ctx, fn func(s *Session, e *engine.Engine) error) error {
	s, ok := h.sessions.Get(c.Params("id"))
	if !ok {
		return fail(c, http.StatusNotFound, "session not found")
	}
	return s.Do(func(e *engine.Engine) error {
		return fn(s, e)
	})
}

func reportPayload(r project.LoadReport) fiber.Map {
	functions := make([]fiber.Map, 0, len(r.Functions))
	for _, f := range r.Functions {
		functions = append(functions, fiber.Map{"key": f.Key, "text": f.Text, "error": f.Err.Error()})
	}
	objects := make([]fiber.Map, 0, len(r.Objects))
	for _, o := range r.Objects {
		objects = append(objects, fiber.Map{"position": o.Position, "type": o.Type, "reason": o.Reason})
	}
	return fiber.Map{"functions": functions, "objects": objects}
}
