package l5blobs

import (
	"image"

	"github.com/banshee-data/blobstats/internal/vision/l1math"
)

// WindowSummary is a rectangle as x, y, width, height.
type WindowSummary struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Summary is the externally visible description of a composite: enough
// for a renderer to draw it or a tracker to compare it, without the
// moment or grid internals.
type Summary struct {
	ID          string         `json:"id"`
	CenterX     float64        `json:"center_x"`
	CenterY     float64        `json:"center_y"`
	Width       float64        `json:"width"`
	Height      float64        `json:"height"`
	AngleDeg    float64        `json:"angle_deg"`
	Mass        int            `json:"mass"`
	ShapeFactor float64        `json:"shape_factor"`
	RGB         *l1math.Vec3i  `json:"rgb,omitempty"`
	HSV         *l1math.Vec3f  `json:"hsv,omitempty"`
	Window      *WindowSummary `json:"window,omitempty"`
	Samples     uint64         `json:"samples,omitempty"`
}

func windowSummary(r image.Rectangle) *WindowSummary {
	return &WindowSummary{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Summarize describes s, including colour, mask window and sample count
// when s has them.
func Summarize(s Shaped) Summary {
	e := s.Ellipse()
	out := Summary{
		ID:          s.ID().String(),
		CenterX:     e.Center().X,
		CenterY:     e.Center().Y,
		Width:       e.Width(),
		Height:      e.Height(),
		AngleDeg:    e.Angle(),
		Mass:        s.Mass(),
		ShapeFactor: s.ShapeFactor(),
	}
	if c, ok := s.(HasColor); ok {
		rgb := c.RGB().Round()
		hsv := c.HSV()
		out.RGB, out.HSV = &rgb, &hsv
	}
	if m, ok := s.(HasMask); ok && m.Mask().IsValid() {
		out.Window = windowSummary(m.Mask().Window())
	}
	if g, ok := s.(HasSamples); ok {
		out.Samples = g.Grid().TotalSamples()
	}
	return out
}
