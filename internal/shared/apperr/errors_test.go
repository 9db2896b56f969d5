package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfWalksWrappedChain(t *testing.T) {
	err := fmt.Errorf("create booking: %w", Conflict("venue already booked"))

	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, IsConflict(err))
	assert.Equal(t, "venue already booked", MessageOf(err))
}

func TestKindOfDefaultsToInternal(t *testing.T) {
	err := errors.New("plain")

	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "internal server error", MessageOf(err))
	assert.False(t, IsNotFound(nil))
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("failed to save booking", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to save booking: connection reset", err.Error())
	assert.Equal(t, "failed to save booking", MessageOf(err))
}

func TestUnavailableIsRetryableNotConflict(t *testing.T) {
	cause := errors.New("venue lock busy")
	err := fmt.Errorf("create booking: %w", Unavailable("venue is busy, try again", cause))

	assert.True(t, IsUnavailable(err))
	assert.False(t, IsConflict(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "venue is busy, try again", MessageOf(err))
}
