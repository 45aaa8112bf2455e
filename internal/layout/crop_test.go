package layout_test

import (
	"errors"
	"testing"

	"layoutkit/internal/layout"
)

func TestEdgeRolesRotateClockwise(t *testing.T) {
	roles, err := layout.EdgeRolesFor(layout.Rotate90)
	if err != nil {
		t.Fatalf("EdgeRolesFor failed: %v", err)
	}
	want := layout.EdgeRoles{layout.EdgeTop, layout.EdgeRight, layout.EdgeBottom, layout.EdgeLeft}
	if roles != want {
		t.Fatalf("unexpected roles %v", roles)
	}
	if _, err := layout.EdgeRolesFor(45); !errors.Is(err, layout.ErrInvalidCanvasRotation) {
		t.Fatalf("expected invalid rotation error, got %v", err)
	}
}

func TestApplyCropAtZeroRotation(t *testing.T) {
	res := layout.CanvasResolution{Width: 1000, Height: 1000}
	pre := layout.NormalizedRect{Left: 0.1, Top: 0.1, Right: 0.5, Bottom: 0.5}

	got, err := layout.ApplyCrop(pre, layout.CropRect{Left: 0.1}, layout.Rotate0, res)
	if err != nil {
		t.Fatalf("ApplyCrop failed: %v", err)
	}
	want := layout.NormalizedRect{Left: 0.14, Top: 0.1, Right: 0.5, Bottom: 0.5}
	if !rectNear(got, want) {
		t.Fatalf("ApplyCrop = %+v, want %+v", got, want)
	}
}

func TestApplyCropAtQuarterTurn(t *testing.T) {
	res := layout.CanvasResolution{Width: 1000, Height: 500}
	pre := layout.NormalizedRect{Left: 0.2, Top: 0.2, Right: 0.6, Bottom: 0.8}

	// The item's left side faces the canvas top once the canvas turns 90 degrees.
	got, err := layout.ApplyCrop(pre, layout.CropRect{Left: 0.5}, layout.Rotate90, res)
	if err != nil {
		t.Fatalf("ApplyCrop failed: %v", err)
	}
	want := layout.NormalizedRect{Left: 0.2, Top: 0.5, Right: 0.6, Bottom: 0.8}
	if !rectNear(got, want) {
		t.Fatalf("ApplyCrop = %+v, want %+v", got, want)
	}
}

func TestPreCropRectInvertsApplyCrop(t *testing.T) {
	res := layout.CanvasResolution{Width: 1920, Height: 1080}
	pre := layout.NormalizedRect{Left: 0.2, Top: 0.15, Right: 0.7, Bottom: 0.85}
	crop := layout.CropRect{Left: 0.1, Top: 0.05, Right: 0.2, Bottom: 0.15}

	for _, rot := range []layout.CanvasRotation{layout.Rotate0, layout.Rotate90, layout.Rotate180, layout.Rotate270} {
		cropped, err := layout.ApplyCrop(pre, crop, rot, res)
		if err != nil {
			t.Fatalf("rotation %d: ApplyCrop failed: %v", rot, err)
		}
		recovered, err := layout.PreCropRect(cropped, crop, rot, res)
		if err != nil {
			t.Fatalf("rotation %d: PreCropRect failed: %v", rot, err)
		}
		if !rectNear(recovered, pre) {
			t.Fatalf("rotation %d: recovered %+v, want %+v", rot, recovered, pre)
		}
	}
}

func TestPreCropRectWithoutCropIsIdentity(t *testing.T) {
	res := layout.CanvasResolution{Width: 1920, Height: 1080}
	pos := layout.NormalizedRect{Left: 0.3, Top: 0.3, Right: 0.4, Bottom: 0.9}

	got, err := layout.PreCropRect(pos, layout.CropRect{Left: 0.001}, layout.Rotate270, res)
	if err != nil {
		t.Fatalf("PreCropRect failed: %v", err)
	}
	if got != pos {
		t.Fatalf("crop rounding to zero should leave position alone, got %+v", got)
	}
}

func TestPreCropRectRejectsDegenerateCrop(t *testing.T) {
	res := layout.CanvasResolution{Width: 1920, Height: 1080}
	pos := layout.NormalizedRect{Left: 0.3, Top: 0.3, Right: 0.4, Bottom: 0.9}

	_, err := layout.PreCropRect(pos, layout.CropRect{Left: 0.7, Right: 0.4}, layout.Rotate0, res)
	if !errors.Is(err, layout.ErrDegenerateCrop) {
		t.Fatalf("expected ErrDegenerateCrop, got %v", err)
	}
}

func TestCropValuesRectReportsMissingSides(t *testing.T) {
	_, err := layout.CropValues{"left": 0.1, "top": 0}.Rect()
	if !errors.Is(err, layout.ErrInsufficientProperties) {
		t.Fatalf("expected ErrInsufficientProperties, got %v", err)
	}
	if !errors.Is(err, layout.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := err.Error(); got != "insufficient properties: missing bottom, right" {
		t.Fatalf("unexpected message %q", got)
	}

	crop, err := layout.CropRect{Left: 0.1, Top: 0.2, Right: 0.3, Bottom: 0.4}.Values().Rect()
	if err != nil {
		t.Fatalf("Rect failed: %v", err)
	}
	if crop.Bottom != 0.4 {
		t.Fatalf("unexpected crop %+v", crop)
	}
}
