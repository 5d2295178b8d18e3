package persistence

import "errors"

var (
	// ErrCheckpointNotFound is returned when a checkpoint path does not exist
	ErrCheckpointNotFound = errors.New("checkpoint not found")
	// ErrCorruptCheckpoint is returned when a checkpoint decodes but is missing or has malformed fields
	ErrCorruptCheckpoint = errors.New("corrupt checkpoint")
)
