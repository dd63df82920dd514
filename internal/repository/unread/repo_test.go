package unread

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyPattern(t *testing.T) {
	// The key layout is shared with every other instance reading the same
	// store; changing it silently orphans existing counters.
	assert.Equal(t, "unread_notifications:1:5", key(1, 5))
	assert.Equal(t, "unread_notifications:42:987654321", key(42, 987654321))
}

func TestNormalizeCount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int64
	}{
		{name: "plain integer", raw: "5", want: 5},
		{name: "zero", raw: "0", want: 0},
		{name: "large value", raw: "9876543210", want: 9876543210},
		{name: "unparsable text treated as zero", raw: "not-a-number", want: 0},
		{name: "empty value treated as zero", raw: "", want: 0},
		{name: "float written by an old client treated as zero", raw: "3.5", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeCount("unread_notifications:1:5", tt.raw))
		})
	}
}
