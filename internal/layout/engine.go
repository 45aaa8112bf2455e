package layout

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"layoutkit/internal/logging"
)

// Store is the host property bridge: string keys in, string values out.
// Implementations decide which item a key refers to.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Engine applies layout operations to one item through a Store.
type Engine struct {
	store  Store
	logger *slog.Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger routes engine diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New builds an engine over store.
func New(store Store, opts ...Option) *Engine {
	e := &Engine{store: store, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.NewComponentLogger(e.logger, "layout")
	return e
}

// Position returns the item's normalized position.
func (e *Engine) Position(ctx context.Context) (NormalizedRect, error) {
	return e.rect(ctx, KeyPosition)
}

// SetPosition writes the item's normalized position as given.
func (e *Engine) SetPosition(ctx context.Context, pos NormalizedRect) error {
	return e.set(ctx, KeyPosition, FormatRect(pos))
}

// RotateX returns the item's x-axis rotation in degrees.
func (e *Engine) RotateX(ctx context.Context) (float64, error) { return e.degrees(ctx, KeyRotateX) }

// RotateY returns the item's y-axis rotation in degrees.
func (e *Engine) RotateY(ctx context.Context) (float64, error) { return e.degrees(ctx, KeyRotateY) }

// RotateZ returns the item's own rotation in degrees.
func (e *Engine) RotateZ(ctx context.Context) (float64, error) { return e.degrees(ctx, KeyRotateZ) }

// SetRotateX sets the x-axis rotation; value must lie in [-360,360].
func (e *Engine) SetRotateX(ctx context.Context, value float64) error {
	return e.setAxisRotation(ctx, KeyRotateX, value)
}

// SetRotateY sets the y-axis rotation; value must lie in [-360,360].
func (e *Engine) SetRotateY(ctx context.Context, value float64) error {
	return e.setAxisRotation(ctx, KeyRotateY, value)
}

// SetRotateZ sets the z-axis rotation; value must lie in [-360,360].
func (e *Engine) SetRotateZ(ctx context.Context, value float64) error {
	return e.setAxisRotation(ctx, KeyRotateZ, value)
}

func (e *Engine) setAxisRotation(ctx context.Context, key string, value float64) error {
	if math.IsNaN(value) || value < -360 || value > 360 {
		return invalid(key, msgRotateRange)
	}
	return e.set(ctx, key, FormatDegrees(value))
}

// CanvasRotate returns the canvas rotation stored for the item.
func (e *Engine) CanvasRotate(ctx context.Context) (CanvasRotation, error) {
	raw, err := e.get(ctx, KeyCanvasRotate)
	if err != nil {
		return 0, err
	}
	rot, err := ParseCanvasRotation(raw)
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", KeyCanvasRotate, err)
	}
	return rot, nil
}

// SetCanvasRotate sets the canvas rotation; only 0, 90, 180 and 270 are accepted.
func (e *Engine) SetCanvasRotate(ctx context.Context, value int) error {
	rot := CanvasRotation(value)
	if !rot.Valid() {
		return invalid(KeyCanvasRotate, msgCanvasRotate)
	}
	return e.set(ctx, KeyCanvasRotate, FormatDegrees(float64(rot)))
}

// EnhancedRotate returns canvas rotation plus z-rotation folded into [-180,180].
func (e *Engine) EnhancedRotate(ctx context.Context) (float64, error) {
	z, err := e.RotateZ(ctx)
	if err != nil {
		return 0, err
	}
	canvas, err := e.CanvasRotate(ctx)
	if err != nil {
		return 0, err
	}
	return WrapRotation(z + float64(canvas)), nil
}

// SetEnhancedRotate splits value into canvas and z rotation and writes both,
// z first. When the item moves between landscape and portrait its footprint
// is re-centred and then replaced by the host's aspect-locked position.
// A failure part way through leaves earlier writes in place.
func (e *Engine) SetEnhancedRotate(ctx context.Context, value float64) error {
	if math.IsNaN(value) || value < -180 || value > 180 {
		return invalid("enhanced_rotate", msgEnhancedRange)
	}

	current, err := e.EnhancedRotate(ctx)
	if err != nil {
		return err
	}
	former := BucketFor(current).Orientation
	target := BucketFor(value)

	e.logger.Debug("enhanced rotation bucket selected",
		logging.Float64("value", value),
		logging.Float64("previous", current),
		logging.Int("canvas_rotate", int(target.CanvasRotate)),
		logging.Float64("z_rotate", target.ZRotate),
		logging.String("orientation", string(target.Orientation)),
	)

	if err := e.set(ctx, KeyRotateZ, FormatDegrees(target.ZRotate)); err != nil {
		return err
	}
	if err := e.set(ctx, KeyCanvasRotate, FormatDegrees(float64(target.CanvasRotate))); err != nil {
		return err
	}

	if former == target.Orientation {
		return nil
	}
	return e.reorient(ctx, former, target.Orientation)
}

func (e *Engine) reorient(ctx context.Context, from, to Orientation) error {
	res, err := e.Resolution(ctx)
	if err != nil {
		return err
	}
	pos, err := e.Position(ctx)
	if err != nil {
		return err
	}
	next := ReorientFootprint(pos, res)
	e.logger.Debug("orientation changed; re-centring footprint",
		logging.String("from", string(from)),
		logging.String("to", string(to)),
		logging.String("position", FormatRect(pos)),
		logging.String("recentred", FormatRect(next)),
	)
	if err := e.SetPosition(ctx, next); err != nil {
		return err
	}

	// The host recomputes exact aspect-locked bounds; its answer wins.
	aspect, err := e.get(ctx, KeyPositionAspect)
	if err != nil {
		return err
	}
	return e.set(ctx, KeyPosition, aspect)
}

// Resolution returns the mixing canvas size.
func (e *Engine) Resolution(ctx context.Context) (CanvasResolution, error) {
	raw, err := e.get(ctx, KeyResolution)
	if err != nil {
		return CanvasResolution{}, err
	}
	res, err := ParseResolution(raw)
	if err != nil {
		return CanvasResolution{}, fmt.Errorf("get %s: %w", KeyResolution, err)
	}
	return res, nil
}

// Cropping returns the item's crop fractions.
func (e *Engine) Cropping(ctx context.Context) (CropRect, error) {
	raw, err := e.get(ctx, KeyCrop)
	if err != nil {
		return CropRect{}, err
	}
	crop, err := ParseCrop(raw)
	if err != nil {
		return CropRect{}, fmt.Errorf("get %s: %w", KeyCrop, err)
	}
	return crop, nil
}

// SetCropping writes crop fractions without touching the position. All four
// sides must be present.
func (e *Engine) SetCropping(ctx context.Context, values CropValues) error {
	crop, err := values.Rect()
	if err != nil {
		return err
	}
	return e.set(ctx, KeyCrop, FormatCrop(crop))
}

// SetCroppingEnhanced writes crop fractions and moves the position so the
// uncropped remainder of the item stays where it was on the canvas. Crop
// fractions are not range checked.
func (e *Engine) SetCroppingEnhanced(ctx context.Context, values CropValues) error {
	next, err := values.Rect()
	if err != nil {
		return err
	}

	res, err := e.Resolution(ctx)
	if err != nil {
		return err
	}
	pos, err := e.Position(ctx)
	if err != nil {
		return err
	}
	rot, err := e.CanvasRotate(ctx)
	if err != nil {
		return err
	}
	current, err := e.Cropping(ctx)
	if err != nil {
		return err
	}

	preCrop, err := PreCropRect(pos, current, rot, res)
	if err != nil {
		return err
	}
	target, err := ApplyCrop(preCrop, next, rot, res)
	if err != nil {
		return err
	}

	e.logger.Debug("enhanced crop computed",
		logging.Int("canvas_rotate", int(rot)),
		logging.Bool("was_cropped", !current.IsZero()),
		logging.String("pre_crop", FormatRect(preCrop)),
		logging.String("position", FormatRect(target)),
	)

	if err := e.set(ctx, KeyCrop, FormatCrop(next)); err != nil {
		return err
	}
	return e.SetPosition(ctx, target)
}

// KeepAspectRatio reports whether the host locks the item's aspect ratio.
func (e *Engine) KeepAspectRatio(ctx context.Context) (bool, error) {
	return e.flag(ctx, KeyKeepAspectRatio)
}

// SetKeepAspectRatio toggles the aspect ratio lock.
func (e *Engine) SetKeepAspectRatio(ctx context.Context, v bool) error {
	return e.set(ctx, KeyKeepAspectRatio, FormatBool(v))
}

// PositionLocked reports whether the item is pinned in place.
func (e *Engine) PositionLocked(ctx context.Context) (bool, error) {
	return e.flag(ctx, KeyPositionLocked)
}

// SetPositionLocked toggles the position lock.
func (e *Engine) SetPositionLocked(ctx context.Context, v bool) error {
	return e.set(ctx, KeyPositionLocked, FormatBool(v))
}

// EnhancedResizeEnabled reports whether smooth downscaling is on.
func (e *Engine) EnhancedResizeEnabled(ctx context.Context) (bool, error) {
	return e.flag(ctx, KeyEnhancedResize)
}

// SetEnhancedResizeEnabled toggles smooth downscaling.
func (e *Engine) SetEnhancedResizeEnabled(ctx context.Context, v bool) error {
	return e.set(ctx, KeyEnhancedResize, FormatBool(v))
}

func (e *Engine) get(ctx context.Context, key string) (string, error) {
	raw, err := e.store.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return raw, nil
}

func (e *Engine) set(ctx context.Context, key, value string) error {
	if err := e.store.Set(ctx, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (e *Engine) rect(ctx context.Context, key string) (NormalizedRect, error) {
	raw, err := e.get(ctx, key)
	if err != nil {
		return NormalizedRect{}, err
	}
	r, err := ParseRect(raw)
	if err != nil {
		return NormalizedRect{}, fmt.Errorf("get %s: %w", key, err)
	}
	return r, nil
}

func (e *Engine) degrees(ctx context.Context, key string) (float64, error) {
	raw, err := e.get(ctx, key)
	if err != nil {
		return 0, err
	}
	v, err := ParseDegrees(raw)
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", key, err)
	}
	return v, nil
}

func (e *Engine) flag(ctx context.Context, key string) (bool, error) {
	raw, err := e.get(ctx, key)
	if err != nil {
		return false, err
	}
	v, err := ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	return v, nil
}
