package schedule

import "errors"

var (
	// ErrConfiguration marks schedule inputs that cannot produce a valid
	// ExpectedSchedule. It is never defaulted away.
	ErrConfiguration = errors.New("schedule configuration error")

	ErrShiftGroupNotFound = errors.New("shift group not found")
)
