package personarange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input    string
		expected Range
	}{
		{"", Range{Min: 1, Max: 100}},
		{"all", Range{Min: 1, Max: 100}},
		{"7", Range{Min: 7, Max: 7}},
		{"3-20", Range{Min: 3, Max: 20}},
		{"-20", Range{Min: 1, Max: 20}},
		{"3-", Range{Min: 3, Max: 100}},
	}

	for _, tc := range cases {
		parsed, err := Parse(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.expected, parsed, "input %q", tc.input)
	}
}

func TestParseRejectsInvalidRanges(t *testing.T) {
	for _, input := range []string{"0", "101", "20-3", "5-200", "abc", "1-2-3"} {
		_, err := Parse(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestIDs(t *testing.T) {
	r, err := Parse("4-7")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5, 6, 7}, r.IDs())

	full, err := Parse("all")
	require.NoError(t, err)
	assert.Len(t, full.IDs(), 100)
	assert.Equal(t, Full(), full)
}

func TestContains(t *testing.T) {
	r, err := Parse("10-20")
	require.NoError(t, err)

	assert.True(t, r.Contains(10))
	assert.True(t, r.Contains(20))
	assert.False(t, r.Contains(9))
	assert.False(t, r.Contains(21))
}
