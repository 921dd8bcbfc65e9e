package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the store.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, budget out of range).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a uniqueness rule is violated
// (e.g. a username that is already taken).
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized is returned when credentials do not match a stored user.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrGeneration is returned when the generative provider fails or returns a
// payload that cannot be decoded into the expected shape. Operations with a
// fallback policy (vibe suggestion, chat) never surface it; the rest do.
// Handlers should map this to HTTP 500.
var ErrGeneration = errors.New("generation failed")
