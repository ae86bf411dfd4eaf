package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("Doctor not found")))
	assert.Equal(t, KindInvalid, KindOf(Invalid("Invalid date")))
	assert.Equal(t, KindConflict, KindOf(Conflict("This time slot is already booked")))
	assert.Equal(t, KindInternal, KindOf(Internal("boom", errors.New("db down"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("unclassified")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("handling request: %w", Conflict("This appointment cannot be cancelled"))
	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
}

func TestInternalUnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("Failed to create appointment", cause)

	assert.Equal(t, "Failed to create appointment", err.Error())
	assert.ErrorIs(t, err, cause)
}
