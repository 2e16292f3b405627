package store

import "errors"

// ErrNotFound is returned when the targeted record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyPromoted is returned when a promotion races and loses; the caller
// should re-read the upload to obtain the winning URI.
var ErrAlreadyPromoted = errors.New("upload already promoted")
