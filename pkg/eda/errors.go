package eda

import (
	"errors"
	"fmt"
)

var (
	// ErrNotImplemented is returned by Unimplemented.Process. A stage that
	// embeds Unimplemented must override Process.
	ErrNotImplemented = errors.New("not implemented")

	// ErrMissingColumn is returned when a stage is configured with a column
	// the table does not have.
	ErrMissingColumn = errors.New("missing column")

	// ErrAlreadyRun is returned when a Pipeline is run a second time.
	ErrAlreadyRun = errors.New("pipeline already run")

	// ErrNilFrame is returned when a stage hands back no table.
	ErrNilFrame = errors.New("stage returned nil table")
)

// StageError reports which stage aborted a pipeline run.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
