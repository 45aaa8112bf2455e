// Package layout converts between the user-facing "enhanced" rotation and crop
// values of a canvas item and the raw properties the host application stores.
//
// The host keeps four independent quantities per item: a normalized position
// rectangle, a z-rotation, a discrete canvas rotation applied to the whole
// output, and crop fractions measured in the item's own unrotated frame. The
// Engine reads those through a Store port, derives new raw values, and writes
// them back. Enhanced rotation folds z-rotation and canvas rotation into one
// continuous control and re-centres the footprint when the item flips between
// landscape and portrait. Enhanced cropping reconstructs the uncropped
// rectangle so a new crop eats into the item instead of stretching it.
//
// The geometry lives in pure functions (BucketFor, ReorientFootprint,
// PreCropRect, ApplyCrop) so it can be exercised without any store. The Engine
// performs read-then-write sequences with no locking and no rollback: callers
// that race two operations against one item must serialize them.
package layout
