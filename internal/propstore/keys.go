package propstore

import (
	"errors"
	"strings"

	"layoutkit/internal/layout"
)

// ErrNotFound indicates a missing item.
var ErrNotFound = errors.New("not found")

const itemKeyPrefix = "prop:"

// IsItemKey reports whether key is scoped to a single item.
func IsItemKey(key string) bool {
	return strings.HasPrefix(key, itemKeyPrefix)
}

// DefaultItemProperties are written when an item is created: full-canvas
// position, no crop, no rotation, aspect ratio locked.
func DefaultItemProperties() map[string]string {
	return map[string]string{
		layout.KeyPosition:        layout.FormatRect(layout.NormalizedRect{Right: 1, Bottom: 1}),
		layout.KeyCrop:            layout.FormatCrop(layout.CropRect{}),
		layout.KeyRotateX:         "0",
		layout.KeyRotateY:         "0",
		layout.KeyRotateZ:         "0",
		layout.KeyCanvasRotate:    "0",
		layout.KeyKeepAspectRatio: layout.FormatBool(true),
		layout.KeyPositionLocked:  layout.FormatBool(false),
		layout.KeyEnhancedResize:  layout.FormatBool(true),
	}
}
