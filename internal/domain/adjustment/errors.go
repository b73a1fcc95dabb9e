package adjustment

import "errors"

var (
	ErrAdjustmentNotFound         = errors.New("adjustment request not found")
	ErrAdjustmentAlreadyProcessed = errors.New("adjustment request already processed")
	ErrUnauthorized               = errors.New("not allowed to act on this adjustment request")
	ErrFutureDate                 = errors.New("adjustment date cannot be in the future")
)
