package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestParseStatusInfo(t *testing.T) {
	tests := []struct {
		name        string
		raw         int
		expected    StatusInfo
		expectError bool
	}{
		{name: "invalid", raw: 0, expected: StatusInvalid},
		{name: "inactive", raw: 1, expected: StatusInactive},
		{name: "active", raw: 2, expected: StatusActive},
		{name: "busy", raw: 3, expected: StatusBusy},
		{name: "out of range", raw: 4, expectError: true},
		{name: "large value", raw: 100, expectError: true},
		{name: "negative errno-style value", raw: -2, expectError: true},
		{name: "very negative", raw: -22, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := ParseStatusInfo(tt.raw)

			if tt.expectError {
				require.Error(t, err)
				var convErr *ConversionError
				require.ErrorAs(t, err, &convErr)
				assert.Equal(t, tt.raw, convErr.Raw)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, status)
			}
		})
	}
}

func TestParseStatusResult(t *testing.T) {
	t.Run("active", func(t *testing.T) {
		status, err := ParseStatusResult(2)
		require.NoError(t, err)
		assert.Equal(t, StatusActive, status)
	})

	t.Run("negative is a system error, not a conversion error", func(t *testing.T) {
		_, err := ParseStatusResult(-2)
		var sysErr *SystemError
		require.ErrorAs(t, err, &sysErr)
		assert.Equal(t, 2, sysErr.Code())
		assert.True(t, errors.Is(err, unix.ENOENT))
	})

	t.Run("unrecognized positive code", func(t *testing.T) {
		_, err := ParseStatusResult(9)
		var convErr *ConversionError
		require.ErrorAs(t, err, &convErr)
		assert.Equal(t, 9, convErr.Raw)
	})
}

func TestStatusInfoString(t *testing.T) {
	assert.Equal(t, "invalid", StatusInvalid.String())
	assert.Equal(t, "inactive", StatusInactive.String())
	assert.Equal(t, "active", StatusActive.String())
	assert.Equal(t, "busy", StatusBusy.String())
	assert.Equal(t, "unknown", StatusInfo(42).String())
}
