package domain

import "errors"

// ErrSchemaMismatch is returned when a property is re-created with a type
// that differs from the one it was created with.
var ErrSchemaMismatch = errors.New("schema mismatch")

// ErrPrimNotFound is returned when an operation needs a prim that is not on the stage.
var ErrPrimNotFound = errors.New("prim not found")

// ErrInvalidPath is returned for malformed prim or property paths.
var ErrInvalidPath = errors.New("invalid path")

// ErrInvalidName is returned for malformed property or port names.
var ErrInvalidName = errors.New("invalid name")

// ErrInvalidValue is returned when a value cannot be held by a property type.
var ErrInvalidValue = errors.New("invalid value")

// ErrReservedSourceType is returned when a source type collides with a reserved name.
var ErrReservedSourceType = errors.New("reserved source type")

// ErrLayerNotFound is returned when a layer ID cannot be found in the store.
var ErrLayerNotFound = errors.New("layer not found")
