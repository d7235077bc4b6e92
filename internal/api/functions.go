package api

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"geoboard/internal/function"
)

// ============================================================
// Function Sampling
// ============================================================

const maxSamples = 20000

type sampleRequest struct {
	Text    string  `json:"text"`
	From    float64 `json:"from"`
	To      float64 `json:"to"`
	Samples int     `json:"samples"`
}

type sampleResponse struct {
	Text       string         `json:"text"`
	Normalized string         `json:"normalized"`
	Constant   bool           `json:"constant"`
	Segments   [][][2]float64 `json:"segments"`
}

// SampleFunction компилирует выражение и возвращает ломаные на [from, to].
// Точки, где значение не конечно, разрывают ломаную.
func (h *Handler) SampleFunction(c fiber.Ctx) error {
	var req sampleRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid json")
	}
	if req.Samples == 0 {
		req.Samples = function.RenderSamples
	}
	if req.Samples < 2 || req.Samples > maxSamples {
		return fail(c, http.StatusBadRequest, "samples out of range")
	}
	if req.From == 0 && req.To == 0 {
		req.From, req.To = -10, 10
	}
	if !(req.From < req.To) || math.IsInf(req.From, 0) || math.IsInf(req.To, 0) {
		return fail(c, http.StatusBadRequest, "from must be less than to")
	}

	fn, err := function.Compile(req.Text)
	if err != nil {
		return expressionError(c, err)
	}

	xs := function.Linspace(req.From, req.To, req.Samples)
	segments := function.Segments(xs, fn.Sample(xs))

	out := sampleResponse{
		Text:       fn.Source(),
		Normalized: fn.Normalized(),
		Constant:   fn.IsConstant(),
		Segments:   make([][][2]float64, 0, len(segments)),
	}
	for _, seg := range segments {
		pts := make([][2]float64, len(seg))
		for i, p := range seg {
			pts[i] = [2]float64{p.X, p.Y}
		}
		out.Segments = append(out.Segments, pts)
	}
	return c.JSON(out)
}
