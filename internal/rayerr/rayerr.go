// Package rayerr defines the error-taxonomy sentinels from spec
// section 7, so callers can classify a failure with errors.Is without
// a structured exception mechanism.
package rayerr

import "errors"

// ErrIO marks a failure to open, read, or write a file.
var ErrIO = errors.New("io error")

// ErrParse marks a malformed scene or PPM file: a missing required
// key, an out-of-range numeric, trailing garbage, or a colinear
// view/up pair.
var ErrParse = errors.New("parse error")

// ErrGeometry marks a degenerate basis, a zero ray direction, invalid
// shape parameters, an unknown shape/light variant, or a face index
// out of bounds.
var ErrGeometry = errors.New("geometry error")

// ErrResource marks an allocation failure.
var ErrResource = errors.New("resource error")
