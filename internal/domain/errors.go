package domain

import "errors"

// ErrNotFound is returned by store and service functions when the requested
// resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service and store functions when input fails
// business rule validation (e.g. missing required field, item referencing a
// trip that does not exist).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrFormat is returned when a persisted blob or an imported backup cannot
// be parsed as the expected JSON schema. It is always recoverable: loads
// fall back to empty collections, imports abort leaving the store untouched.
// Handlers should map this to HTTP 400.
var ErrFormat = errors.New("format error")

// ErrCapacity is returned when a single-trip backup payload is too large to
// fit the QR symbology. The export fails cleanly — data is never truncated.
// Handlers should map this to HTTP 413.
var ErrCapacity = errors.New("payload exceeds QR capacity")
