// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and code matching

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "root not found",
			wantStr: "[NOT_FOUND] root not found",
		},
		{
			name:    "dependency_error",
			code:    errors.ErrDependency,
			message: "missing git",
			wantStr: "[DEPENDENCY] missing git",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrShellCommand, "command %q exited with %d", "false", 1)
	assert.Equal(t, `command "false" exited with 1`, err.Message)
	assert.Equal(t, errors.ErrShellCommand, err.Code)
}

func TestWrap(t *testing.T) {
	base := stderrors.New("permission denied")

	t.Run("wraps_error", func(t *testing.T) {
		err := errors.Wrap(base, errors.ErrPlacement, "cannot create symlink")
		require.NotNil(t, err)
		assert.Equal(t, "[PLACEMENT] cannot create symlink: permission denied", err.Error())
		assert.True(t, stderrors.Is(err, base))
	})

	t.Run("nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrPlacement, "ignored"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrPlacement, "ignored %d", 1))
	})
}

func TestIs_ComparesCodes(t *testing.T) {
	err := errors.New(errors.ErrConfigParse, "bad document")
	wrapped := fmt.Errorf("loading: %w", err)

	assert.True(t, stderrors.Is(wrapped, errors.New(errors.ErrConfigParse, "")))
	assert.False(t, stderrors.Is(wrapped, errors.New(errors.ErrDependency, "")))
}

func TestIsErrorCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", errors.New(errors.ErrDependency, "missing"))

	assert.True(t, errors.IsErrorCode(err, errors.ErrDependency))
	assert.False(t, errors.IsErrorCode(err, errors.ErrShellCommand))
	assert.False(t, errors.IsErrorCode(stderrors.New("plain"), errors.ErrDependency))
}

func TestGetErrorCodeAndDetails(t *testing.T) {
	err := errors.New(errors.ErrPlacement, "exists").
		WithDetail("path", "/home/u/bin/foo")

	assert.Equal(t, errors.ErrPlacement, errors.GetErrorCode(err))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Equal(t, "/home/u/bin/foo", errors.GetErrorDetails(err)["path"])
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}
