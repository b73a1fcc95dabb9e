package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidTimezone  = errors.New("employee timezone is not a valid IANA zone")
)
