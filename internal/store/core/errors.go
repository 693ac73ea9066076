package core

import "errors"

// Los inserts son insert-or-confirm, así que una key duplicada nunca
// llega al caller como error; por eso no hay sentinel de conflicto.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalid        = errors.New("invalid")
	ErrNotImplemented = errors.New("not implemented")
)
