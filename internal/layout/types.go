package layout

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// CanvasResolution is the pixel size of the mixing canvas.
type CanvasResolution struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// along returns the canvas dimension that runs parallel to the given edge's axis.
func (r CanvasResolution) along(edge Edge) float64 {
	if edge.horizontal() {
		return r.Width
	}
	return r.Height
}

// Edge names one side of a rectangle.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeTop
	EdgeRight
	EdgeBottom
)

var edgeNames = [...]string{"left", "top", "right", "bottom"}

func (e Edge) String() string {
	if e < EdgeLeft || e > EdgeBottom {
		return fmt.Sprintf("edge(%d)", int(e))
	}
	return edgeNames[e]
}

// horizontal reports whether the edge sits on the canvas x axis.
func (e Edge) horizontal() bool {
	return e == EdgeLeft || e == EdgeRight
}

// outward is the sign that moves the edge away from the rectangle's interior.
func (e Edge) outward() float64 {
	if e == EdgeLeft || e == EdgeTop {
		return -1
	}
	return 1
}

var allEdges = [...]Edge{EdgeLeft, EdgeTop, EdgeRight, EdgeBottom}

// NormalizedRect is an item position expressed as fractions of the canvas.
type NormalizedRect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Width returns Right-Left.
func (r NormalizedRect) Width() float64 { return r.Right - r.Left }

// Height returns Bottom-Top.
func (r NormalizedRect) Height() float64 { return r.Bottom - r.Top }

// Normalize swaps inverted edges so that Left <= Right and Top <= Bottom.
func (r NormalizedRect) Normalize() NormalizedRect {
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

// ToPixels scales the rectangle onto a canvas of the given resolution.
func (r NormalizedRect) ToPixels(res CanvasResolution) PixelRect {
	return PixelRect{
		Left:   r.Left * res.Width,
		Top:    r.Top * res.Height,
		Right:  r.Right * res.Width,
		Bottom: r.Bottom * res.Height,
	}
}

func (r NormalizedRect) edge(e Edge) float64 {
	switch e {
	case EdgeLeft:
		return r.Left
	case EdgeTop:
		return r.Top
	case EdgeRight:
		return r.Right
	default:
		return r.Bottom
	}
}

func (r *NormalizedRect) setEdge(e Edge, v float64) {
	switch e {
	case EdgeLeft:
		r.Left = v
	case EdgeTop:
		r.Top = v
	case EdgeRight:
		r.Right = v
	default:
		r.Bottom = v
	}
}

// PixelRect is a rectangle in canvas pixels.
type PixelRect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

func (r PixelRect) Width() float64  { return r.Right - r.Left }
func (r PixelRect) Height() float64 { return r.Bottom - r.Top }

// Center returns the midpoint of the rectangle.
func (r PixelRect) Center() (x, y float64) {
	return r.Left + r.Width()/2, r.Top + r.Height()/2
}

// extent is the rectangle's length along the axis of the given edge.
func (r PixelRect) extent(edge Edge) float64 {
	if edge.horizontal() {
		return r.Width()
	}
	return r.Height()
}

// ToNormalized converts pixel edges back to canvas fractions.
func (r PixelRect) ToNormalized(res CanvasResolution) NormalizedRect {
	return NormalizedRect{
		Left:   r.Left / res.Width,
		Top:    r.Top / res.Height,
		Right:  r.Right / res.Width,
		Bottom: r.Bottom / res.Height,
	}
}

// CropRect holds the fraction clipped from each side of the item's own
// unrotated bounding box.
type CropRect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// IsZero reports whether every side rounds to zero at two decimal places of a
// percentage, matching how the host decides an item is uncropped.
func (c CropRect) IsZero() bool {
	for _, v := range []float64{c.Left, c.Top, c.Right, c.Bottom} {
		if math.Round(v*100) != 0 {
			return false
		}
	}
	return true
}

func (c CropRect) side(e Edge) float64 {
	switch e {
	case EdgeLeft:
		return c.Left
	case EdgeTop:
		return c.Top
	case EdgeRight:
		return c.Right
	default:
		return c.Bottom
	}
}

// Values returns the crop as a fully populated CropValues map.
func (c CropRect) Values() CropValues {
	return CropValues{"left": c.Left, "top": c.Top, "right": c.Right, "bottom": c.Bottom}
}

// CropValues is caller-supplied crop input keyed by side name. Callers may
// omit keys; Rect rejects input that does not name all four sides.
type CropValues map[string]float64

// Rect converts the values into a CropRect, failing when any side is absent.
func (v CropValues) Rect() (CropRect, error) {
	var missing []string
	for _, e := range allEdges {
		if _, ok := v[e.String()]; !ok {
			missing = append(missing, e.String())
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return CropRect{}, &ValidationError{
			Field:   "crop",
			Message: fmt.Sprintf("%s: missing %s", ErrInsufficientProperties.Error(), strings.Join(missing, ", ")),
			Err:     ErrInsufficientProperties,
		}
	}
	return CropRect{Left: v["left"], Top: v["top"], Right: v["right"], Bottom: v["bottom"]}, nil
}

// CanvasRotation is the discrete rotation applied to the whole output canvas.
type CanvasRotation int

const (
	Rotate0   CanvasRotation = 0
	Rotate90  CanvasRotation = 90
	Rotate180 CanvasRotation = 180
	Rotate270 CanvasRotation = 270
)

// Valid reports whether r is one of 0, 90, 180 or 270.
func (r CanvasRotation) Valid() bool {
	switch r {
	case Rotate0, Rotate90, Rotate180, Rotate270:
		return true
	}
	return false
}

// Orientation tags which way round the canvas is for a rotation bucket.
type Orientation string

const (
	Landscape Orientation = "landscape"
	Portrait  Orientation = "portrait"
)
