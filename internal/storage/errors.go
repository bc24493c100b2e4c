package storage

import "errors"

// Repository sentinels. Services translate them with services.MapRepoError.
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record conflicts with an existing row")
)
