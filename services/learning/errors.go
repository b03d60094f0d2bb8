package learning

import "fmt"

// ValidationError reports malformed quiz authoring input. Fields maps a field
// path to its message so controllers can return the whole set at once.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// NotFoundError reports a missing quiz, enrollment or course
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// AttemptLimitError reports a submission at or beyond the quiz's max attempts
type AttemptLimitError struct {
	QuizID      uint
	MaxAttempts int
}

func (e *AttemptLimitError) Error() string {
	return fmt.Sprintf("maximum of %d attempts reached for quiz %d", e.MaxAttempts, e.QuizID)
}

// AlreadyPassedError reports a submission attempted after a recorded pass
type AlreadyPassedError struct {
	QuizID uint
}

func (e *AlreadyPassedError) Error() string {
	return fmt.Sprintf("quiz %d already passed, no further attempts are allowed", e.QuizID)
}

// InvalidInputError reports a malformed answers payload
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}
