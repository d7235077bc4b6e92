package geometry

// ============================================================
// Camera
// ============================================================

const (
	DefaultBaseGridSize = 50.0
	DefaultMinZoom      = 0.01
	DefaultMaxZoom      = 10.0
	ZoomStep            = 1.2
)

// Camera maps world coordinates onto a pixel viewport. World Y grows
// upward, screen Y grows downward.
type Camera struct {
	Zoom         float64
	OffsetX      float64
	OffsetY      float64
	Width        float64
	Height       float64
	BaseGridSize float64
	MinZoom      float64
	MaxZoom      float64
}

// NewCamera returns a camera centred on the world origin at zoom 1.
func NewCamera(width, height float64) *Camera {
	return &Camera{
		Zoom:         1,
		Width:        width,
		Height:       height,
		BaseGridSize: DefaultBaseGridSize,
		MinZoom:      DefaultMinZoom,
		MaxZoom:      DefaultMaxZoom,
	}
}

// GridSize is the number of pixels per world unit at the current zoom.
func (c *Camera) GridSize() float64 {
	return c.BaseGridSize * c.Zoom
}

// PixelsToWorld converts a pixel length into world units.
func (c *Camera) PixelsToWorld(px float64) float64 {
	return px / c.GridSize()
}

func (c *Camera) origin() (float64, float64) {
	return c.Width/2 + c.OffsetX, c.Height/2 + c.OffsetY
}

// WorldToScreen converts a world point into pixel coordinates.
func (c *Camera) WorldToScreen(p Vec) Vec {
	cx, cy := c.origin()
	g := c.GridSize()
	return Vec{X: cx + p.X*g, Y: cy - p.Y*g}
}

// ScreenToWorld is the exact inverse of WorldToScreen.
func (c *Camera) ScreenToWorld(s Vec) Vec {
	cx, cy := c.origin()
	g := c.GridSize()
	return Vec{X: (s.X - cx) / g, Y: (cy - s.Y) / g}
}

// Resize updates the viewport size. The world origin stays at the
// viewport centre shifted by the pixel offset.
func (c *Camera) Resize(width, height float64) {
	c.Width = width
	c.Height = height
}

// Pan shifts the view by a pixel delta.
func (c *Camera) Pan(dx, dy float64) {
	c.OffsetX += dx
	c.OffsetY += dy
}

// ZoomAt applies one wheel step at the given screen position. Positive
// steps zoom in. The world point under the cursor stays under the cursor.
// It reports whether the zoom factor changed.
func (c *Camera) ZoomAt(steps float64, cursor Vec) bool {
	if steps == 0 {
		return false
	}

	before := c.ScreenToWorld(cursor)
	old := c.Zoom

	if steps > 0 {
		c.Zoom *= ZoomStep
	} else {
		c.Zoom /= ZoomStep
	}
	c.Zoom = clamp(c.Zoom, c.MinZoom, c.MaxZoom)

	if c.Zoom == old {
		return false
	}

	after := c.ScreenToWorld(cursor)
	g := c.GridSize()
	c.OffsetX += (after.X - before.X) * g
	c.OffsetY -= (after.Y - before.Y) * g
	return true
}

// VisibleRange returns the world-space x and y extents of the viewport.
func (c *Camera) VisibleRange() (left, right, bottom, top float64) {
	tl := c.ScreenToWorld(Vec{X: 0, Y: 0})
	br := c.ScreenToWorld(Vec{X: c.Width, Y: c.Height})
	return tl.X, br.X, br.Y, tl.Y
}
