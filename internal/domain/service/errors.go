package service

import "fmt"

// Stage names the pipeline step a request failed in.
type Stage string

const (
	StageValidate Stage = "validate"
	StageColors   Stage = "colors"
	StageRender   Stage = "render"
	StageStyle    Stage = "style"
	StageIcon     Stage = "icon"
	StageVerify   Stage = "verify"
	StageWrite    Stage = "write"
)

// StageError wraps a failure with the stage that produced it. Use errors.Is
// on it to match the errorz sentinels.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}
