package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrorsSurviveWrapping(t *testing.T) {
	for _, sentinel := range []error{ErrInvalidAction, ErrInvalidHeading, ErrInvalidCoordinates} {
		wrapped := fmt.Errorf("step: %w", sentinel)
		assert.True(t, errors.Is(wrapped, sentinel), "expected %v to match", wrapped)
	}
}

func TestInvalidActionMessage(t *testing.T) {
	err := Action(5).Validate()
	assert.EqualError(t, err, "action 5: invalid action")
}
