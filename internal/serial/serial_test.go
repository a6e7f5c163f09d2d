package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrement(t *testing.T) {
	tests := []struct {
		name          string
		serial        string
		delta         int
		preserveWidth bool
		expected      string
	}{
		{
			name:          "preserve leading zeros",
			serial:        "014501",
			delta:         1,
			preserveWidth: true,
			expected:      "014502",
		},
		{
			name:          "zero delta",
			serial:        "014501",
			delta:         0,
			preserveWidth: true,
			expected:      "014501",
		},
		{
			name:          "carry within width",
			serial:        "0099",
			delta:         1,
			preserveWidth: true,
			expected:      "0100",
		},
		{
			name:          "overflow grows the string",
			serial:        "99",
			delta:         1,
			preserveWidth: true,
			expected:      "100",
		},
		{
			name:          "no width preservation drops zeros",
			serial:        "014501",
			delta:         1,
			preserveWidth: false,
			expected:      "14502",
		},
		{
			name:          "single digit",
			serial:        "1",
			delta:         5,
			preserveWidth: true,
			expected:      "6",
		},
		{
			name:          "large delta",
			serial:        "000001",
			delta:         19999,
			preserveWidth: true,
			expected:      "020000",
		},
		{
			name:          "beyond int64 range",
			serial:        "99999999999999999999",
			delta:         1,
			preserveWidth: true,
			expected:      "100000000000000000000",
		},
		{
			name:          "beyond int64 range with leading zeros",
			serial:        "0018446744073709551616",
			delta:         1,
			preserveWidth: true,
			expected:      "0018446744073709551617",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Increment(tt.serial, tt.delta, tt.preserveWidth)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// 宽度保持属性：递增后位数不超过原位宽时，结果长度等于原长度
func TestIncrement_WidthPreservation(t *testing.T) {
	serials := []string{"0001", "014501", "9998", "00000000"}
	for _, s := range serials {
		result, err := Increment(s, 1, true)
		require.NoError(t, err)
		assert.Len(t, result, len(s), "serial %q", s)
	}
}

func TestIncrement_InvalidSerial(t *testing.T) {
	invalid := []string{"", "abc", "12a4", "-5", "1 2", "１２３"}
	for _, s := range invalid {
		_, err := Increment(s, 1, true)
		assert.ErrorIs(t, err, ErrInvalidSerial, "serial %q", s)
	}
}

func TestReplaceLast(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		old      string
		new      string
		expected string
	}{
		{
			name:     "only rightmost occurrence",
			text:     "1687/2526/1",
			old:      "1",
			new:      "2",
			expected: "1687/2526/2",
		},
		{
			name:     "single occurrence",
			text:     "CERT/014501",
			old:      "014501",
			new:      "014502",
			expected: "CERT/014502",
		},
		{
			name:     "absent old text is a no-op",
			text:     "1687/2526/1",
			old:      "999",
			new:      "000",
			expected: "1687/2526/1",
		},
		{
			name:     "different lengths",
			text:     "No. 99 of 99",
			old:      "99",
			new:      "100",
			expected: "No. 99 of 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ReplaceLast(tt.text, tt.old, tt.new))
		})
	}
}
