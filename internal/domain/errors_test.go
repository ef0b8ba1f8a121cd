package domain

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	single := NewValidationError("word", "must not be empty")
	assert.Equal(t, "validation: word: must not be empty", single.Error())
	assert.True(t, errors.Is(single, ErrValidation))

	multi := NewValidationErrors([]FieldError{
		{Field: "showMeaningTimer", Message: "must be an integer"},
		{Field: "nextWordTimer", Message: "must be 0 or greater"},
	})
	assert.Contains(t, multi.Error(), "2 errors")
	assert.Contains(t, multi.Error(), "nextWordTimer: must be 0 or greater")

	wrapped := fmt.Errorf("settings: %w", multi)
	var ve *ValidationError
	assert.True(t, errors.As(wrapped, &ve))
	assert.Len(t, ve.Errors, 2)
}

func TestIOError(t *testing.T) {
	err := IOError("save words", os.ErrPermission)
	assert.True(t, errors.Is(err, ErrIO))
	assert.True(t, errors.Is(err, os.ErrPermission))
	assert.Contains(t, err.Error(), "save words")
}

func TestNewEntry(t *testing.T) {
	e, err := NewEntry("  猫 ", " ねこ", "cat  ")
	assert.NoError(t, err)
	assert.Equal(t, "猫", e.Word)
	assert.Equal(t, "ねこ", e.Reading)
	assert.Equal(t, "cat", e.Meaning)
	assert.NotEmpty(t, e.ID)

	twin, err := NewEntry("猫", "ねこ", "cat")
	assert.NoError(t, err)
	assert.NotEqual(t, e.ID, twin.ID, "identical fields must still get distinct identities")

	_, err = NewEntry("   ", "ねこ", "cat")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestIDSet(t *testing.T) {
	set := IDSet("a", "b", "a")
	assert.Len(t, set, 2)
	_, ok := set["b"]
	assert.True(t, ok)
}
