package idx

import "errors"

// Common errors.
var (
	ErrDatasetMismatch = errors.New("idx: image count does not match label count")
	ErrInvalidMagic    = errors.New("idx: invalid magic number")
	ErrShortRead       = errors.New("idx: file ends before declared data")
	ErrInvalidLabel    = errors.New("idx: label outside 0-9")
	ErrImageSize       = errors.New("idx: images are not 28x28")
)
