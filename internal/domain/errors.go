package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrPermissionDenied indicates the caller is not allowed to write the entity.
	ErrPermissionDenied = errors.New("permission denied")
)
