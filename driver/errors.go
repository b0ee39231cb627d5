package driver

import "errors"

// Sentinel errors for the driver package.
var (
	// ErrNoEmptyField indicates the continuation table never visited
	// field.Empty, which should be unreachable for any table produced by
	// cmd/continuationgen (its BFS always seeds from field.Empty).
	ErrNoEmptyField = errors.New("driver: continuation table has no entry for the empty field")
)
