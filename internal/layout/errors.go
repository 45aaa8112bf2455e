package layout

import "errors"

var (
	// ErrValidation matches every caller-input rejection.
	ErrValidation = errors.New("validation failed")
	// ErrInsufficientProperties indicates crop input that does not name all four sides.
	ErrInsufficientProperties = errors.New("insufficient properties")
	// ErrMalformedValue indicates a store value that could not be parsed.
	ErrMalformedValue = errors.New("malformed property value")
	// ErrInvalidCanvasRotation indicates the store holds a canvas rotation outside 0/90/180/270.
	ErrInvalidCanvasRotation = errors.New("invalid canvas rotation")
	// ErrDegenerateCrop indicates the current crop hides an entire axis, so the
	// uncropped rectangle cannot be recovered.
	ErrDegenerateCrop = errors.New("current crop leaves no visible area")
)

const (
	msgRotateRange   = "Invalid value. Min: -360, Max: 360"
	msgEnhancedRange = "Invalid value. Min: -180, Max: 180"
	msgCanvasRotate  = "Invalid value. Only possible values are 0, 90, 180 and 270"
)

// ValidationError reports a caller-supplied value outside its documented
// domain. It is never retried.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrValidation) match any validation failure.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ErrorKind classifies the error for callers that map failures to statuses.
func (e *ValidationError) ErrorKind() string {
	return "validation"
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
