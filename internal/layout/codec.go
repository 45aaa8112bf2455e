package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Property keys understood by the host.
const (
	KeyPosition        = "prop:pos"
	KeyPositionAspect  = "prop:posaspect"
	KeyCrop            = "prop:crop"
	KeyRotateX         = "prop:rotate_x"
	KeyRotateY         = "prop:rotate_y"
	KeyRotateZ         = "prop:rotate_z"
	KeyCanvasRotate    = "prop:rotate_canvas"
	KeyKeepAspectRatio = "prop:keep_ar"
	KeyPositionLocked  = "prop:lockmove"
	KeyEnhancedResize  = "prop:mipmaps"
	KeyResolution      = "mixerresolution"
)

// FormatFraction renders a position or crop component with six decimals.
func FormatFraction(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// FormatRect renders a position as "left,top,right,bottom".
func FormatRect(r NormalizedRect) string {
	return formatQuad(r.Left, r.Top, r.Right, r.Bottom)
}

// FormatCrop renders a crop as "left,top,right,bottom".
func FormatCrop(c CropRect) string {
	return formatQuad(c.Left, c.Top, c.Right, c.Bottom)
}

// FormatDegrees renders a rotation with the shortest exact representation.
func FormatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatResolution renders a canvas resolution as "width,height".
func FormatResolution(res CanvasResolution) string {
	return FormatDegrees(res.Width) + "," + FormatDegrees(res.Height)
}

func formatQuad(a, b, c, d float64) string {
	return strings.Join([]string{FormatFraction(a), FormatFraction(b), FormatFraction(c), FormatFraction(d)}, ",")
}

// ParseRect parses a "left,top,right,bottom" position.
func ParseRect(raw string) (NormalizedRect, error) {
	v, err := parseFloats(raw, 4)
	if err != nil {
		return NormalizedRect{}, err
	}
	return NormalizedRect{Left: v[0], Top: v[1], Right: v[2], Bottom: v[3]}, nil
}

// ParseCrop parses a "left,top,right,bottom" crop. A never-cropped item may
// report an empty string, which reads as no crop.
func ParseCrop(raw string) (CropRect, error) {
	if strings.TrimSpace(raw) == "" {
		return CropRect{}, nil
	}
	v, err := parseFloats(raw, 4)
	if err != nil {
		return CropRect{}, err
	}
	return CropRect{Left: v[0], Top: v[1], Right: v[2], Bottom: v[3]}, nil
}

// ParseResolution parses a "width,height" canvas resolution. Both dimensions
// must be positive.
func ParseResolution(raw string) (CanvasResolution, error) {
	v, err := parseFloats(raw, 2)
	if err != nil {
		return CanvasResolution{}, err
	}
	if v[0] <= 0 || v[1] <= 0 {
		return CanvasResolution{}, fmt.Errorf("%w: resolution %q must be positive", ErrMalformedValue, raw)
	}
	return CanvasResolution{Width: v[0], Height: v[1]}, nil
}

// ParseDegrees parses a rotation value. The host reports unset rotations as an
// empty string, which reads as zero.
func ParseDegrees(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedValue, raw)
	}
	return v, nil
}

// ParseCanvasRotation parses and validates a stored canvas rotation.
func ParseCanvasRotation(raw string) (CanvasRotation, error) {
	v, err := ParseDegrees(raw)
	if err != nil {
		return 0, err
	}
	rot := CanvasRotation(math.Round(v))
	if float64(rot) != v || !rot.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCanvasRotation, raw)
	}
	return rot, nil
}

// ParseBool reads the host's "1"/"0" flags. "true" and "false" are accepted too.
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true":
		return true, nil
	case "0", "false", "":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q is not a flag", ErrMalformedValue, raw)
	}
}

// FormatBool renders a flag the way the host stores it.
func FormatBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func parseFloats(raw string, want int) ([]float64, error) {
	parts := strings.Split(strings.TrimSpace(raw), ",")
	if len(parts) != want {
		return nil, fmt.Errorf("%w: %q has %d fields, want %d", ErrMalformedValue, raw, len(parts), want)
	}
	out := make([]float64, want)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %q field %d is not a number", ErrMalformedValue, raw, i+1)
		}
		out[i] = v
	}
	return out, nil
}
