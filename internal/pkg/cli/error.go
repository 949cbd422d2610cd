package cli

import (
	"fmt"

	"github.com/openshift-eng/iib-setup/internal/pkg/errcode"
)

// CodeExiter is an interface implemented by errors that result in an exit code
type CodeExiter interface {
	ExitCode() int
}

// StageError wraps a pipeline stage failure with the stage's exit code.
type StageError struct {
	Stage string
	Code  int
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func (e *StageError) ExitCode() int {
	if e == nil {
		return 0
	}
	if e.Code == 0 {
		return errcode.GenericErr
	}
	return e.Code
}

func stageErrorf(stage string, code int, err error) *StageError {
	return &StageError{Stage: stage, Code: code, Err: err}
}
