package policyserver

import "errors"

var (
	ErrNoTable          = errors.New("no value table loaded")
	ErrMalformedMessage = errors.New("malformed message")
)
