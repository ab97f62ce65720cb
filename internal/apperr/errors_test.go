package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "lease: 7 not found", NotFound("lease", 7).Error())
	assert.Equal(t, "property: status is rented",
		Conflict("property", "status is %s", "rented").Error())

	wrapped := Internal("store", errors.New("disk full"), "save failed")
	assert.Equal(t, "store: save failed: disk full", wrapped.Error())
}

func TestCodeOfThroughWrapping(t *testing.T) {
	err := fmt.Errorf("create lease: %w", Conflict("property", "not available"))

	assert.Equal(t, CodeConflict, CodeOf(err))
	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestCodeOfForeignError(t *testing.T) {
	assert.Equal(t, Code(""), CodeOf(nil))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("constraint failed")
	err := Internal("lease", cause, "insert")
	assert.ErrorIs(t, err, cause)
}
