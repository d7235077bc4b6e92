package project

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"geoboard/internal/geometry"
	"geoboard/internal/scene"
)

// ============================================================
// Document schema
// ============================================================

// Version пишется в каждый сохранённый документ.
const Version = "1.0"

// Document описывает один проект: камера, функции, объекты и отдельные точки.
type Document struct {
	Version   string                   `json:"version"`
	Camera    CameraState              `json:"camera"`
	Functions map[string]FunctionEntry `json:"functions"`
	Objects   []ObjectRecord           `json:"objects"`
	Points    []PointEntry             `json:"points"`
}

type CameraState struct {
	Zoom    float64 `json:"zoom"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

type FunctionEntry struct {
	Text    string `json:"text"`
	Visible bool   `json:"visible"`
}

type PointEntry struct {
	Pos [2]float64 `json:"pos"`
}

// ObjectRecord хранит объект сцены с тегом type. Поле points у линии плоское
// [x1,y1,x2,y2], у многоугольника это список пар.
type ObjectRecord struct {
	Type     string          `json:"type"`
	Pos      *[2]float64     `json:"pos,omitempty"`
	Points   json.RawMessage `json:"points,omitempty"`
	Infinite *bool           `json:"infinite,omitempty"`
	Center   *[2]float64     `json:"center,omitempty"`
	Radius   *float64        `json:"radius,omitempty"`
	Vertex   *[2]float64     `json:"vertex,omitempty"`
	Point1   *[2]float64     `json:"point1,omitempty"`
	Point2   *[2]float64     `json:"point2,omitempty"`
	Angle    *float64        `json:"angle,omitempty"`
	Text     *string         `json:"text,omitempty"`
	Size     *int            `json:"size,omitempty"`
}

// ============================================================
// Scene -> Document
// ============================================================

// FromScene снимает состояние камеры и сцены в документ.
func FromScene(cam geometry.Camera, sc *scene.Scene) Document {
	doc := Document{
		Version: Version,
		Camera: CameraState{
			Zoom:    cam.Zoom,
			OffsetX: cam.OffsetX,
			OffsetY: cam.OffsetY,
		},
		Functions: make(map[string]FunctionEntry),
		Objects:   make([]ObjectRecord, 0, len(sc.Objects)),
		Points:    make([]PointEntry, 0, len(sc.Points)),
	}

	for _, f := range sc.Functions.All() {
		doc.Functions[strconv.Itoa(f.Index)] = FunctionEntry{Text: f.Source, Visible: f.Visible}
	}
	for _, o := range sc.Objects {
		doc.Objects = append(doc.Objects, encodeObject(o))
	}
	for _, p := range sc.Points {
		doc.Points = append(doc.Points, PointEntry{Pos: pair(p)})
	}
	return doc
}

func encodeObject(o geometry.Object) ObjectRecord {
	rec := ObjectRecord{Type: string(o.Kind())}

	switch v := o.(type) {
	case geometry.Point:
		rec.Pos = ptr(pair(v.Pos))
	case geometry.Line:
		rec.Points = rawJSON([]float64{v.A.X, v.A.Y, v.B.X, v.B.Y})
		rec.Infinite = ptr(v.Infinite)
	case geometry.Circle:
		rec.Center = ptr(pair(v.Center))
		rec.Radius = ptr(v.Radius)
	case geometry.Polygon:
		pts := make([][2]float64, 0, len(v.Vertices))
		for _, p := range v.Vertices {
			pts = append(pts, pair(p))
		}
		rec.Points = rawJSON(pts)
	case geometry.Angle:
		rec.Vertex = ptr(pair(v.Vertex))
		rec.Point1 = ptr(pair(v.Point1))
		rec.Point2 = ptr(pair(v.Point2))
		rec.Angle = ptr(v.Degrees)
	case geometry.Text:
		rec.Pos = ptr(pair(v.Pos))
		rec.Text = ptr(v.Content)
		rec.Size = ptr(v.Size)
	}
	return rec
}

// ============================================================
// Document -> Scene
// ============================================================

// FunctionFailure описывает функцию, которую не удалось перекомпилировать.
type FunctionFailure struct {
	Key  string
	Text string
	Err  error
}

// SkippedObject описывает запись, которую не удалось восстановить.
type SkippedObject struct {
	Position int
	Type     string
	Reason   string
}

// LoadReport перечисляет нефатальные проблемы загрузки.
type LoadReport struct {
	Functions []FunctionFailure
	Objects   []SkippedObject
}

func (r LoadReport) Empty() bool {
	return len(r.Functions) == 0 && len(r.Objects) == 0
}

// Build собирает новую сцену из документа. Ошибки отдельных функций и
// объектов не прерывают загрузку и попадают в отчёт.
func Build(doc Document) (*scene.Scene, CameraState, LoadReport) {
	sc := scene.New()
	var report LoadReport

	cam := doc.Camera
	if cam.Zoom <= 0 {
		cam.Zoom = 1
	}

	keys := make([]string, 0, len(doc.Functions))
	for k := range doc.Functions {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA != nil || errB != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})

	for _, k := range keys {
		entry := doc.Functions[k]
		idx, err := strconv.Atoi(k)
		if err != nil || idx < 0 {
			report.Functions = append(report.Functions, FunctionFailure{
				Key: k, Text: entry.Text, Err: fmt.Errorf("invalid function index %q", k),
			})
			continue
		}
		if _, err := sc.Functions.Restore(idx, entry.Text, entry.Visible); err != nil {
			report.Functions = append(report.Functions, FunctionFailure{Key: k, Text: entry.Text, Err: err})
		}
	}

	for i, rec := range doc.Objects {
		o, err := decodeObject(rec)
		if err != nil {
			report.Objects = append(report.Objects, SkippedObject{Position: i, Type: rec.Type, Reason: err.Error()})
			continue
		}
		sc.AddObject(o)
	}

	for _, p := range doc.Points {
		sc.AddPoint(vec(p.Pos))
	}

	return sc, cam, report
}

func decodeObject(rec ObjectRecord) (geometry.Object, error) {
	switch geometry.Kind(rec.Type) {
	case geometry.KindPoint:
		if rec.Pos == nil {
			return nil, fmt.Errorf("point without pos")
		}
		return geometry.Point{Pos: vec(*rec.Pos)}, nil

	case geometry.KindLine:
		var pts []float64
		if err := json.Unmarshal(rec.Points, &pts); err != nil || len(pts) != 4 {
			return nil, fmt.Errorf("line needs points [x1,y1,x2,y2]")
		}
		infinite := false
		if rec.Infinite != nil {
			infinite = *rec.Infinite
		}
		return geometry.Line{
			A:        geometry.V(pts[0], pts[1]),
			B:        geometry.V(pts[2], pts[3]),
			Infinite: infinite,
		}, nil

	case geometry.KindCircle:
		if rec.Center == nil || rec.Radius == nil || *rec.Radius < 0 {
			return nil, fmt.Errorf("circle needs center and a non-negative radius")
		}
		return geometry.Circle{Center: vec(*rec.Center), Radius: *rec.Radius}, nil

	case geometry.KindPolygon:
		var pts [][2]float64
		if err := json.Unmarshal(rec.Points, &pts); err != nil {
			return nil, fmt.Errorf("polygon points: %w", err)
		}
		if len(pts) < 3 {
			return nil, fmt.Errorf("polygon has %d vertices, need at least 3", len(pts))
		}
		poly := geometry.Polygon{Vertices: make([]geometry.Vec, 0, len(pts))}
		for _, p := range pts {
			poly.Vertices = append(poly.Vertices, vec(p))
		}
		return poly, nil

	case geometry.KindAngle:
		if rec.Vertex == nil || rec.Point1 == nil || rec.Point2 == nil || rec.Angle == nil {
			return nil, fmt.Errorf("angle needs vertex, point1, point2 and angle")
		}
		return geometry.Angle{
			Vertex:  vec(*rec.Vertex),
			Point1:  vec(*rec.Point1),
			Point2:  vec(*rec.Point2),
			Degrees: *rec.Angle,
		}, nil

	case geometry.KindText:
		if rec.Pos == nil || rec.Text == nil {
			return nil, fmt.Errorf("text needs pos and text")
		}
		size := geometry.DefaultTextSize
		if rec.Size != nil {
			size = *rec.Size
		}
		return geometry.Text{Pos: vec(*rec.Pos), Content: *rec.Text, Size: size}, nil
	}

	return nil, fmt.Errorf("unknown object type %q", rec.Type)
}

func pair(v geometry.Vec) [2]float64 {
	return [2]float64{v.X, v.Y}
}

func vec(p [2]float64) geometry.Vec {
	return geometry.V(p[0], p[1])
}

func ptr[T any](v T) *T {
	return &v
}

// rawJSON кодирует координаты; нечисловые значения (NaN, Inf) дают
// пустое поле, и запись пропускается при загрузке.
func rawJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
