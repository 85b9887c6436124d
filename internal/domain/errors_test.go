package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorConstructors(t *testing.T) {
	err := ErrNotFound("cube %s not found", "Finance")
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "cube Finance not found", notFound.Error())

	err2 := ErrValidation("unknown intent %q", "pivot")
	var validation *ValidationError
	require.True(t, errors.As(err2, &validation))
	assert.Contains(t, validation.Error(), "pivot")
}

func TestQueryExecutionErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("binder error")
	err := &QueryExecutionError{SQL: "SELECT 1", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "SELECT 1")
}

func TestRegistryLoadErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("no such file")
	err := &RegistryLoadError{Path: "/tmp/x.jsonl", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "/tmp/x.jsonl")
}
