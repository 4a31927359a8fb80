package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"invalid", Invalid("daily_goal", "must be positive"), ErrInvalidInput},
		{"ordering", &OrderingError{Entity: "streak", Last: "2025-01-03", Got: "2025-01-02"}, ErrOrderingViolation},
		{"unknown", &UnknownReferenceError{Kind: "question", ID: "q9"}, ErrUnknownReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("layer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
		})
	}
}

func TestTypedErrorsDoNotCrossMatch(t *testing.T) {
	err := Invalid("x", "bad")
	assert.False(t, errors.Is(err, ErrOrderingViolation))
	assert.False(t, errors.Is(err, ErrUnknownReference))
}

func TestInvalidInputErrorMessage(t *testing.T) {
	assert.Equal(t, "invalid input: ladder: must not be empty", Invalid("ladder", "must not be empty").Error())
	assert.Equal(t, "invalid input: bad", (&InvalidInputError{Reason: "bad"}).Error())
}

type sample struct {
	Rate  float64 `json:"success_rate" validate:"gte=0,lte=100"`
	Goal  int     `json:"daily_goal" validate:"gt=0"`
	Label string  `json:"label" validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(sample{Rate: 50, Goal: 1, Label: "x"}))

	err := ValidateStruct(sample{Rate: 101, Goal: 1, Label: "x"})
	require.ErrorIs(t, err, ErrInvalidInput)
	var ie *InvalidInputError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "success_rate", ie.Field)
	assert.Equal(t, "must be at most 100", ie.Reason)

	err = ValidateStruct(sample{Rate: 10, Goal: 0, Label: "x"})
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "daily_goal", ie.Field)
	assert.Equal(t, "must be greater than 0", ie.Reason)
}
