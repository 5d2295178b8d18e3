package core

import "errors"

var (
	ErrInvalidAction      = errors.New("invalid action")
	ErrInvalidHeading     = errors.New("invalid heading")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)
