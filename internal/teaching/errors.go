package teaching

import "errors"

var (
	// ErrSessionNotFound means the session does not exist or belongs to a
	// different user. The two cases are deliberately indistinguishable.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidState means the session is not accepting answers, e.g. it
	// already completed or failed.
	ErrInvalidState = errors.New("session is not in progress")

	// ErrInvalidStep means a fixed-mode session points at a step the
	// script does not define.
	ErrInvalidStep = errors.New("unknown conversation step")

	// ErrGenerationFailed means lesson plan synthesis failed and the
	// session was marked failed. Terminal.
	ErrGenerationFailed = errors.New("lesson plan generation failed")
)
