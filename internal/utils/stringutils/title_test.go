package stringutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateTitle(t *testing.T) {
	t.Run("short content passes through", func(t *testing.T) {
		assert.Equal(t, "Trip planning", GenerateTitle("Trip planning", 30))
	})

	t.Run("strips urls and trailing punctuation", func(t *testing.T) {
		got := GenerateTitle("check https://example.com/docs please!", 30)
		assert.Equal(t, "check please", got)
	})

	t.Run("keeps markdown link text", func(t *testing.T) {
		got := GenerateTitle("see [the guide](https://example.com) first", 30)
		assert.Equal(t, "see the guide first", got)
	})

	t.Run("truncates on a word boundary", func(t *testing.T) {
		got := GenerateTitle("planning a very long trip through southeast asia", 30)
		assert.LessOrEqual(t, len(got), 30)
		assert.Equal(t, "planning a very long trip...", got)
	})

	t.Run("all-noise content yields empty", func(t *testing.T) {
		assert.Equal(t, "", GenerateTitle("https://example.com", 30))
	})
}

func TestTruncateTitle_NeverExceedsMax(t *testing.T) {
	assert.Equal(t, "abc", TruncateTitle("abc", 10))
	assert.LessOrEqual(t, len(TruncateTitle("abcdefghijklmnop", 10)), 10)
}
