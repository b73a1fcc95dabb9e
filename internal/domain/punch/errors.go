package punch

import "errors"

var (
	ErrInvalidSequence   = errors.New("punch is out of sequence")
	ErrPunchNotFound     = errors.New("punch event not found")
	ErrTimestampNotToday = errors.New("punch timestamp must fall on the current local day")
	ErrFutureTimestamp   = errors.New("punch timestamp is in the future")
)
