package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPatterns(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []Pattern
	}{
		{
			name: "slash prefixed number",
			text: "Certificate No. CERT/014501",
			expected: []Pattern{
				{FullMatch: "/014501", Number: "014501", Start: 20, End: 27, Type: PatternSlash},
			},
		},
		{
			name: "standalone number",
			text: "Serial 014501 issued",
			expected: []Pattern{
				{FullMatch: "014501", Number: "014501", Start: 7, End: 13, Type: PatternStandalone},
			},
		},
		{
			name: "slash rule wins dedup",
			text: "/014501",
			expected: []Pattern{
				{FullMatch: "/014501", Number: "014501", Start: 0, End: 7, Type: PatternSlash},
			},
		},
		{
			name: "mixed rules different numbers",
			text: "1687/2526",
			expected: []Pattern{
				{FullMatch: "/2526", Number: "2526", Start: 4, End: 9, Type: PatternSlash},
				{FullMatch: "1687", Number: "1687", Start: 0, End: 4, Type: PatternStandalone},
			},
		},
		{
			name:     "too few digits",
			text:     "room 12, ref /99",
			expected: nil,
		},
		{
			name: "slash accepts three digits",
			text: "ref /123",
			expected: []Pattern{
				{FullMatch: "/123", Number: "123", Start: 4, End: 8, Type: PatternSlash},
			},
		},
		{
			name:     "no numbers",
			text:     "plain text without serials",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FindPatterns(tt.text))
		})
	}
}

// 去重属性：/014501 只返回一个模式，虽然 014501 也满足独立数字规则
func TestFindPatterns_Dedup(t *testing.T) {
	patterns := FindPatterns("/014501")
	require.Len(t, patterns, 1)
	assert.Equal(t, PatternSlash, patterns[0].Type)
}

// 相同数字在斜杠内外出现时，独立出现的实例也会被去重（按数字内容，不按位置）
func TestFindPatterns_DedupByValue(t *testing.T) {
	patterns := FindPatterns("0145 and /0145")
	require.Len(t, patterns, 1)
	assert.Equal(t, PatternSlash, patterns[0].Type)
	assert.Equal(t, "0145", patterns[0].Number)
}
