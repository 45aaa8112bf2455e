package layout

// RotationBucket is the raw canvas/z rotation pair selected for an enhanced
// rotation value.
type RotationBucket struct {
	CanvasRotate CanvasRotation `json:"canvas_rotate"`
	ZRotate      float64        `json:"z_rotate"`
	Orientation  Orientation    `json:"orientation"`
}

// BucketFor maps an enhanced rotation in [-180,180] onto one of five 90 degree
// bands. Band edges next to the ±180 wrap and the central band are inclusive.
func BucketFor(enhanced float64) RotationBucket {
	switch {
	case enhanced <= -135:
		return RotationBucket{CanvasRotate: Rotate180, ZRotate: enhanced + 180, Orientation: Landscape}
	case enhanced < -45:
		return RotationBucket{CanvasRotate: Rotate270, ZRotate: enhanced + 90, Orientation: Portrait}
	case enhanced <= 45:
		return RotationBucket{CanvasRotate: Rotate0, ZRotate: enhanced, Orientation: Landscape}
	case enhanced < 135:
		return RotationBucket{CanvasRotate: Rotate90, ZRotate: enhanced - 90, Orientation: Portrait}
	default:
		return RotationBucket{CanvasRotate: Rotate180, ZRotate: enhanced - 180, Orientation: Landscape}
	}
}

// WrapRotation folds a canvas+z rotation sum into [-180,180].
func WrapRotation(sum float64) float64 {
	for sum > 180 {
		sum -= 360
	}
	for sum < -180 {
		sum += 360
	}
	return sum
}

// ReorientFootprint re-centres an item whose rotation moved between landscape
// and portrait. The old height becomes the horizontal extent and the old width
// the vertical extent, each clamped to the full canvas when it no longer fits.
func ReorientFootprint(pos NormalizedRect, res CanvasResolution) NormalizedRect {
	px := pos.ToPixels(res)
	width, height := px.Width(), px.Height()
	cx, cy := px.Center()

	var next PixelRect
	if height > res.Width {
		next.Left, next.Right = 0, res.Width
	} else {
		next.Left, next.Right = cx-height/2, cx+height/2
	}
	if width > res.Height {
		next.Top, next.Bottom = 0, res.Height
	} else {
		next.Top, next.Bottom = cy-width/2, cy+width/2
	}
	return next.ToNormalized(res)
}
