package service

import "errors"

// Domain failures. Their messages are the exact texts returned to clients.
var (
	ErrValidation     = errors.New("required field(s) missing")
	ErrMissingID      = errors.New("missing _id")
	ErrNoUpdateFields = errors.New("no update field(s) sent")
	ErrUpdateFailed   = errors.New("could not update")
	ErrDeleteFailed   = errors.New("could not delete")
)

// IssueError is a domain failure, tied to the _id it concerns when there is one.
// errors.Is matches it against the sentinels above.
type IssueError struct {
	ID  string
	Err error
}

func (e *IssueError) Error() string {
	if e.ID == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.ID
}

func (e *IssueError) Unwrap() error {
	return e.Err
}
