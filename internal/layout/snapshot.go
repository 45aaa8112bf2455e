package layout

import "context"

// Snapshot is a read-only view of every layout quantity of one item.
type Snapshot struct {
	Position        NormalizedRect   `json:"position"`
	Crop            CropRect         `json:"crop"`
	Resolution      CanvasResolution `json:"resolution"`
	RotateX         float64          `json:"rotate_x"`
	RotateY         float64          `json:"rotate_y"`
	RotateZ         float64          `json:"rotate_z"`
	CanvasRotate    CanvasRotation   `json:"canvas_rotate"`
	EnhancedRotate  float64          `json:"enhanced_rotate"`
	Orientation     Orientation      `json:"orientation"`
	KeepAspectRatio bool             `json:"keep_aspect_ratio"`
	PositionLocked  bool             `json:"position_locked"`
	EnhancedResize  bool             `json:"enhanced_resize"`
}

// Snapshot reads every layout property of the item. It performs no writes.
func (e *Engine) Snapshot(ctx context.Context) (Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)
	if snap.Position, err = e.Position(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Crop, err = e.Cropping(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Resolution, err = e.Resolution(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.RotateX, err = e.RotateX(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.RotateY, err = e.RotateY(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.RotateZ, err = e.RotateZ(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.CanvasRotate, err = e.CanvasRotate(ctx); err != nil {
		return Snapshot{}, err
	}
	snap.EnhancedRotate = WrapRotation(snap.RotateZ + float64(snap.CanvasRotate))
	snap.Orientation = BucketFor(snap.EnhancedRotate).Orientation
	if snap.KeepAspectRatio, err = e.KeepAspectRatio(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.PositionLocked, err = e.PositionLocked(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.EnhancedResize, err = e.EnhancedResizeEnabled(ctx); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
