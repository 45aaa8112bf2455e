package layout_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"layoutkit/internal/layout"
	"layoutkit/internal/propstore"
)

func newItem(overrides map[string]string) *propstore.Memory {
	seed := propstore.DefaultItemProperties()
	seed[layout.KeyResolution] = "1920,1080"
	for k, v := range overrides {
		seed[k] = v
	}
	return propstore.NewMemory(seed)
}

func TestAxisRotationRange(t *testing.T) {
	ctx := context.Background()
	store := newItem(nil)
	engine := layout.New(store)

	setters := map[string]func(context.Context, float64) error{
		layout.KeyRotateX: engine.SetRotateX,
		layout.KeyRotateY: engine.SetRotateY,
		layout.KeyRotateZ: engine.SetRotateZ,
	}
	for key, set := range setters {
		for _, bad := range []float64{-360.5, 361} {
			err := set(ctx, bad)
			if !errors.Is(err, layout.ErrValidation) {
				t.Fatalf("%s(%v): expected validation error, got %v", key, bad, err)
			}
			if err.Error() != "Invalid value. Min: -360, Max: 360" {
				t.Fatalf("unexpected message %q", err.Error())
			}
		}
		for _, ok := range []float64{-360, 12.25, 360} {
			if err := set(ctx, ok); err != nil {
				t.Fatalf("%s(%v) failed: %v", key, ok, err)
			}
		}
		if got := store.Value(key); got != "360" {
			t.Fatalf("%s stored %q", key, got)
		}
	}

	z, err := engine.RotateZ(ctx)
	if err != nil || z != 360 {
		t.Fatalf("RotateZ = %v, %v", z, err)
	}
}

func TestSetCanvasRotate(t *testing.T) {
	ctx := context.Background()
	store := newItem(nil)
	engine := layout.New(store)

	err := engine.SetCanvasRotate(ctx, 45)
	if !errors.Is(err, layout.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Invalid value. Only possible values are 0, 90, 180 and 270" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if len(store.Writes()) != 0 {
		t.Fatal("rejected value must not be written")
	}

	if err := engine.SetCanvasRotate(ctx, 270); err != nil {
		t.Fatalf("SetCanvasRotate failed: %v", err)
	}
	got, err := engine.CanvasRotate(ctx)
	if err != nil || got != layout.Rotate270 {
		t.Fatalf("CanvasRotate = %v, %v", got, err)
	}
}

func TestEnhancedRotateRoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, value := range []float64{-180, -135, -100, -45, 0, 30.5, 45, 90, 134, 135, 180} {
		engine := layout.New(newItem(nil))
		if err := engine.SetEnhancedRotate(ctx, value); err != nil {
			t.Fatalf("SetEnhancedRotate(%v) failed: %v", value, err)
		}
		got, err := engine.EnhancedRotate(ctx)
		if err != nil {
			t.Fatalf("EnhancedRotate failed: %v", err)
		}
		want := value
		if value == -180 {
			want = 180
		}
		if !near(got, want) {
			t.Fatalf("round trip of %v read %v", value, got)
		}
	}
}

func TestSetEnhancedRotateRejectsOutOfRange(t *testing.T) {
	ctx := context.Background()
	cases := map[string]float64{
		"above max":      181,
		"below min":      -181,
		"just below min": -180.5,
		"just above max": 180.5,
		"nan":            math.NaN(),
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			store := newItem(nil)
			err := layout.New(store).SetEnhancedRotate(ctx, value)
			if !errors.Is(err, layout.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if err.Error() != "Invalid value. Min: -180, Max: 180" {
				t.Fatalf("unexpected message %q", err.Error())
			}
			if writes := store.Writes(); len(writes) != 0 {
				t.Fatalf("rejected value must not be written, got %#v", writes)
			}
		})
	}
}

func TestSetEnhancedRotateBandBoundaries(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		value  float64
		canvas string
		z      string
	}{
		{-135, "180", "45"},
		{-45, "0", "-45"},
		{45, "0", "45"},
		{135, "180", "-45"},
	}
	for _, tc := range cases {
		store := newItem(nil)
		if err := layout.New(store).SetEnhancedRotate(ctx, tc.value); err != nil {
			t.Fatalf("SetEnhancedRotate(%v) failed: %v", tc.value, err)
		}
		if got := store.Value(layout.KeyCanvasRotate); got != tc.canvas {
			t.Fatalf("SetEnhancedRotate(%v) canvas = %q, want %q", tc.value, got, tc.canvas)
		}
		if got := store.Value(layout.KeyRotateZ); got != tc.z {
			t.Fatalf("SetEnhancedRotate(%v) z = %q, want %q", tc.value, got, tc.z)
		}
	}
}

func TestSetEnhancedRotateReorientsFootprint(t *testing.T) {
	ctx := context.Background()
	store := newItem(map[string]string{layout.KeyPosition: "0.25,0.25,0.75,0.75"})

	if err := layout.New(store).SetEnhancedRotate(ctx, 100); err != nil {
		t.Fatalf("SetEnhancedRotate failed: %v", err)
	}

	want := []propstore.Write{
		{Key: layout.KeyRotateZ, Value: "10"},
		{Key: layout.KeyCanvasRotate, Value: "90"},
		{Key: layout.KeyPosition, Value: "0.359375,0.055556,0.640625,0.944444"},
		{Key: layout.KeyPosition, Value: "0.359375,0.055556,0.640625,0.944444"},
	}
	got := store.Writes()
	if len(got) != len(want) {
		t.Fatalf("unexpected writes %#v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("write %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}

func TestSetEnhancedRotatePrefersHostAspectPosition(t *testing.T) {
	ctx := context.Background()
	store := newItem(map[string]string{
		layout.KeyPosition:       "0.25,0.25,0.75,0.75",
		layout.KeyPositionAspect: "0.4,0.1,0.6,0.9",
	})

	if err := layout.New(store).SetEnhancedRotate(ctx, -90); err != nil {
		t.Fatalf("SetEnhancedRotate failed: %v", err)
	}
	if got := store.Value(layout.KeyPosition); got != "0.4,0.1,0.6,0.9" {
		t.Fatalf("expected aspect-locked position to win, got %q", got)
	}
}

func TestSetEnhancedRotateSameOrientationKeepsPosition(t *testing.T) {
	ctx := context.Background()
	store := newItem(map[string]string{layout.KeyPosition: "0.1,0.2,0.3,0.4"})

	if err := layout.New(store).SetEnhancedRotate(ctx, 170); err != nil {
		t.Fatalf("SetEnhancedRotate failed: %v", err)
	}
	for _, w := range store.Writes() {
		if w.Key == layout.KeyPosition {
			t.Fatalf("landscape to landscape must not move the item, wrote %q", w.Value)
		}
	}
	if got := store.Value(layout.KeyCanvasRotate); got != "180" {
		t.Fatalf("unexpected canvas rotation %q", got)
	}
	if got := store.Value(layout.KeyRotateZ); got != "-10" {
		t.Fatalf("unexpected z rotation %q", got)
	}
}

func TestSetEnhancedRotateLeavesPartialWrites(t *testing.T) {
	ctx := context.Background()
	store := newItem(nil)
	boom := errors.New("host unavailable")
	store.FailSet(layout.KeyCanvasRotate, boom)

	err := layout.New(store).SetEnhancedRotate(ctx, 20)
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if got := store.Value(layout.KeyRotateZ); got != "20" {
		t.Fatalf("z rotation should already be written, got %q", got)
	}
	if got := store.Value(layout.KeyCanvasRotate); got != "0" {
		t.Fatalf("canvas rotation should be untouched, got %q", got)
	}
}

func TestSetCroppingRequiresAllSides(t *testing.T) {
	ctx := context.Background()
	store := newItem(nil)
	engine := layout.New(store)

	partial := layout.CropValues{"left": 0.1, "top": 0.1, "right": 0.1}
	if err := engine.SetCropping(ctx, partial); !errors.Is(err, layout.ErrInsufficientProperties) {
		t.Fatalf("expected ErrInsufficientProperties, got %v", err)
	}
	if err := engine.SetCroppingEnhanced(ctx, partial); !errors.Is(err, layout.ErrInsufficientProperties) {
		t.Fatalf("expected ErrInsufficientProperties, got %v", err)
	}
	if len(store.Writes()) != 0 {
		t.Fatalf("no property may change, got %#v", store.Writes())
	}

	full := layout.CropValues{"left": 0.1, "top": 0.2, "right": 0.3, "bottom": 0.4}
	if err := engine.SetCropping(ctx, full); err != nil {
		t.Fatalf("SetCropping failed: %v", err)
	}
	if got := store.Value(layout.KeyCrop); got != "0.100000,0.200000,0.300000,0.400000" {
		t.Fatalf("unexpected crop %q", got)
	}
	if got := store.Value(layout.KeyPosition); got != "0.000000,0.000000,1.000000,1.000000" {
		t.Fatalf("plain crop must not move the item, got %q", got)
	}
}

func TestSetCroppingEnhancedWithoutChangeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newItem(map[string]string{
		layout.KeyPosition: "0.100000,0.200000,0.600000,0.700000",
		layout.KeyCrop:     "0.000000,0.000000,0.000000,0.000000",
	})

	if err := layout.New(store).SetCroppingEnhanced(ctx, layout.CropRect{}.Values()); err != nil {
		t.Fatalf("SetCroppingEnhanced failed: %v", err)
	}
	if got := store.Value(layout.KeyPosition); got != "0.100000,0.200000,0.600000,0.700000" {
		t.Fatalf("position changed to %q", got)
	}
}

func TestSetCroppingEnhancedMovesEdge(t *testing.T) {
	ctx := context.Background()
	store := newItem(map[string]string{
		layout.KeyResolution: "1000,1000",
		layout.KeyPosition:   "0.1,0.1,0.5,0.5",
	})
	engine := layout.New(store)

	if err := engine.SetCroppingEnhanced(ctx, layout.CropValues{"left": 0.1, "top": 0, "right": 0, "bottom": 0}); err != nil {
		t.Fatalf("SetCroppingEnhanced failed: %v", err)
	}
	pos, err := engine.Position(ctx)
	if err != nil {
		t.Fatalf("Position failed: %v", err)
	}
	want := layout.NormalizedRect{Left: 0.14, Top: 0.1, Right: 0.5, Bottom: 0.5}
	if !rectNear(pos, want) {
		t.Fatalf("position = %+v, want %+v", pos, want)
	}

	writes := store.Writes()
	if len(writes) != 2 || writes[0].Key != layout.KeyCrop || writes[1].Key != layout.KeyPosition {
		t.Fatalf("expected crop then position writes, got %#v", writes)
	}
}

func TestSetCroppingEnhancedRestoresOriginal(t *testing.T) {
	ctx := context.Background()
	for _, canvas := range []string{"0", "90", "180", "270"} {
		store := newItem(map[string]string{
			layout.KeyPosition:     "0.2,0.15,0.7,0.85",
			layout.KeyCanvasRotate: canvas,
		})
		engine := layout.New(store)

		steps := []layout.CropValues{
			{"left": 0.1, "top": 0.05, "right": 0.2, "bottom": 0.15},
			{"left": 0.25, "top": 0, "right": 0.05, "bottom": 0.3},
			layout.CropRect{}.Values(),
		}
		for _, step := range steps {
			if err := engine.SetCroppingEnhanced(ctx, step); err != nil {
				t.Fatalf("canvas %s: SetCroppingEnhanced failed: %v", canvas, err)
			}
		}
		pos, err := engine.Position(ctx)
		if err != nil {
			t.Fatalf("Position failed: %v", err)
		}
		want := layout.NormalizedRect{Left: 0.2, Top: 0.15, Right: 0.7, Bottom: 0.85}
		if !(abs(pos.Left-want.Left) < 1e-5 && abs(pos.Top-want.Top) < 1e-5 && abs(pos.Right-want.Right) < 1e-5 && abs(pos.Bottom-want.Bottom) < 1e-5) {
			t.Fatalf("canvas %s: uncropping should restore %+v, got %+v", canvas, want, pos)
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestSetCroppingEnhancedDegenerateCurrentCrop(t *testing.T) {
	ctx := context.Background()
	store := newItem(map[string]string{layout.KeyCrop: "0.7,0,0.4,0"})

	err := layout.New(store).SetCroppingEnhanced(ctx, layout.CropRect{}.Values())
	if !errors.Is(err, layout.ErrDegenerateCrop) {
		t.Fatalf("expected ErrDegenerateCrop, got %v", err)
	}
	if len(store.Writes()) != 0 {
		t.Fatal("nothing may be written when the crop cannot be reversed")
	}
}

func TestMalformedStoreValues(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name string
		seed map[string]string
		call func(*layout.Engine) error
		want error
	}{
		{"position", map[string]string{layout.KeyPosition: "0,0,1"}, func(e *layout.Engine) error { _, err := e.Position(ctx); return err }, layout.ErrMalformedValue},
		{"resolution", map[string]string{layout.KeyResolution: "0,1080"}, func(e *layout.Engine) error { _, err := e.Resolution(ctx); return err }, layout.ErrMalformedValue},
		{"rotation", map[string]string{layout.KeyRotateX: "abc"}, func(e *layout.Engine) error { _, err := e.RotateX(ctx); return err }, layout.ErrMalformedValue},
		{"canvas", map[string]string{layout.KeyCanvasRotate: "45"}, func(e *layout.Engine) error { _, err := e.EnhancedRotate(ctx); return err }, layout.ErrInvalidCanvasRotation},
		{"flag", map[string]string{layout.KeyKeepAspectRatio: "maybe"}, func(e *layout.Engine) error { _, err := e.KeepAspectRatio(ctx); return err }, layout.ErrMalformedValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call(layout.New(newItem(tc.seed)))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestFlagsAndBlankValues(t *testing.T) {
	ctx := context.Background()
	store := propstore.NewMemory(map[string]string{layout.KeyResolution: "1920,1080"})
	engine := layout.New(store)

	z, err := engine.RotateZ(ctx)
	if err != nil || z != 0 {
		t.Fatalf("blank rotation should read 0, got %v, %v", z, err)
	}
	crop, err := engine.Cropping(ctx)
	if err != nil || !crop.IsZero() {
		t.Fatalf("blank crop should read as no crop, got %+v, %v", crop, err)
	}

	if err := engine.SetPositionLocked(ctx, true); err != nil {
		t.Fatalf("SetPositionLocked failed: %v", err)
	}
	locked, err := engine.PositionLocked(ctx)
	if err != nil || !locked {
		t.Fatalf("PositionLocked = %v, %v", locked, err)
	}
	if err := engine.SetEnhancedResizeEnabled(ctx, false); err != nil {
		t.Fatalf("SetEnhancedResizeEnabled failed: %v", err)
	}
	if got := store.Value(layout.KeyEnhancedResize); got != "0" {
		t.Fatalf("unexpected flag value %q", got)
	}
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newItem(map[string]string{
		layout.KeyCanvasRotate: "270",
		layout.KeyRotateZ:      "-10",
	})
	snap, err := layout.New(store).Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if snap.EnhancedRotate != -100 {
		t.Fatalf("unexpected enhanced rotation %v", snap.EnhancedRotate)
	}
	if snap.Orientation != layout.Portrait {
		t.Fatalf("unexpected orientation %s", snap.Orientation)
	}
	if !snap.KeepAspectRatio || snap.PositionLocked || !snap.EnhancedResize {
		t.Fatalf("unexpected flags %+v", snap)
	}
	if len(store.Writes()) != 0 {
		t.Fatal("snapshot must not write")
	}
}
