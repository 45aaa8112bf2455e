package layout

import "fmt"

// EdgeRoles maps each crop side, indexed by Edge in the item's unrotated
// frame, to the canvas edge it lands on once the canvas rotation is applied.
type EdgeRoles [4]Edge

// Each quarter turn moves every side one step clockwise.
var edgeRoles = map[CanvasRotation]EdgeRoles{
	Rotate0:   {EdgeLeft, EdgeTop, EdgeRight, EdgeBottom},
	Rotate90:  {EdgeTop, EdgeRight, EdgeBottom, EdgeLeft},
	Rotate180: {EdgeRight, EdgeBottom, EdgeLeft, EdgeTop},
	Rotate270: {EdgeBottom, EdgeLeft, EdgeTop, EdgeRight},
}

// EdgeRolesFor returns the side-to-canvas-edge permutation for a rotation.
func EdgeRolesFor(rot CanvasRotation) (EdgeRoles, error) {
	roles, ok := edgeRoles[rot]
	if !ok {
		return EdgeRoles{}, fmt.Errorf("%w: %d", ErrInvalidCanvasRotation, int(rot))
	}
	return roles, nil
}

// PreCropRect recovers the position the item would occupy with no crop, given
// its current cropped position and crop fractions. Sides with a zero crop keep
// the current edge.
func PreCropRect(pos NormalizedRect, crop CropRect, rot CanvasRotation, res CanvasResolution) (NormalizedRect, error) {
	roles, err := EdgeRolesFor(rot)
	if err != nil {
		return NormalizedRect{}, err
	}
	if crop.IsZero() {
		return pos, nil
	}

	visibleWidth := 1 - crop.Left - crop.Right
	visibleHeight := 1 - crop.Top - crop.Bottom
	if visibleWidth <= 0 || visibleHeight <= 0 {
		return NormalizedRect{}, fmt.Errorf("%w: crop %s", ErrDegenerateCrop, FormatCrop(crop))
	}

	// The item's own width lies along whichever canvas axis its left side maps to.
	px := pos.ToPixels(res)
	originalWidth := px.extent(roles[EdgeLeft]) / visibleWidth
	originalHeight := px.extent(roles[EdgeTop]) / visibleHeight

	pre := pos
	for _, side := range allEdges {
		fraction := crop.side(side)
		if fraction == 0 {
			continue
		}
		original := originalWidth
		if !side.horizontal() {
			original = originalHeight
		}
		edge := roles[side]
		shift := original * fraction / res.along(edge)
		pre.setEdge(edge, pos.edge(edge)+edge.outward()*shift)
	}
	return pre, nil
}

// ApplyCrop derives the cropped position from an uncropped one. Each canvas
// edge moves inward by its crop fraction of the source extent on that axis.
func ApplyCrop(preCrop NormalizedRect, crop CropRect, rot CanvasRotation, res CanvasResolution) (NormalizedRect, error) {
	roles, err := EdgeRolesFor(rot)
	if err != nil {
		return NormalizedRect{}, err
	}

	source := preCrop.ToPixels(res)
	next := preCrop
	for _, side := range allEdges {
		edge := roles[side]
		shift := crop.side(side) * source.extent(edge) / res.along(edge)
		next.setEdge(edge, preCrop.edge(edge)-edge.outward()*shift)
	}
	return next, nil
}
