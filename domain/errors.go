package domain

import "errors"

// ErrNotFound covers both "no such object" and "requester may not see it".
// The two causes are deliberately indistinguishable to callers so that a
// denied request never reveals whether the object exists.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput marks malformed client input: an empty follow target, an
// unsupported content type, a missing required field.
var ErrInvalidInput = errors.New("invalid input")
