package errors

import (
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorWrapsUnknownErrors(t *testing.T) {
	err := FromError(sql.ErrConnDone)
	require.NotNil(t, err)
	assert.Equal(t, ErrInternal.Code, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("delete: %w", Clone(ErrNotFound, "event not found"))
	err := FromError(wrapped)
	assert.Equal(t, ErrNotFound.Code, err.Code)
	assert.Equal(t, "event not found", err.Message)
	assert.True(t, IsCode(wrapped, ErrNotFound.Code))
	assert.False(t, IsCode(wrapped, ErrValidation.Code))
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrValidation, "title too long")
	assert.Equal(t, "title too long", clone.Message)
	assert.Equal(t, "validation failed", ErrValidation.Message)
	assert.Nil(t, Clone(nil, "x"))
}

func TestErrorString(t *testing.T) {
	err := Wrap(sql.ErrNoRows, "NOT_FOUND", http.StatusNotFound, "event not found")
	assert.Equal(t, "event not found: sql: no rows in result set", err.Error())
	var nilErr *Error
	assert.Equal(t, "<nil>", nilErr.Error())
}
