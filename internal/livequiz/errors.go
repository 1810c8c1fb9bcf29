package livequiz

import "errors"

// Every failure in the live-quiz protocol is a recoverable validation error:
// the caller may retry immediately and the state machine is left exactly as
// it was before the call.
var (
	// Student join path.
	ErrEmptyName      = errors.New("display name is required")
	ErrEmptyCode      = errors.New("join code is required")
	ErrInvalidCode    = errors.New("invalid join code")
	ErrSessionExpired = errors.New("live session has ended")
	ErrAlreadyJoined  = errors.New("player already joined a session")

	// Student play path.
	ErrNotInProgress  = errors.New("no quiz in progress")
	ErrInvalidOption  = errors.New("option index out of range")
	ErrAnswerRequired = errors.New("current question has not been answered")
	ErrNotFinished    = errors.New("quiz is not finished")

	// Teacher path.
	ErrNoQuizSelected  = errors.New("no quiz selected")
	ErrNoQuestions     = errors.New("quiz has no questions")
	ErrInvalidDuration = errors.New("duration must be positive")
)
