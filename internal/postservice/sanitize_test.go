package postservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeContent(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no script tag",
			input: "# Field Notes\n\nNothing suspicious here.",
			want:  "# Field Notes\n\nNothing suspicious here.",
		},
		{
			name:  "script tag removed",
			input: "<script>alert('hi');</script>",
			want:  "",
		},
		{
			name:  "script tag with attributes",
			input: "before <SCRIPT SRC=\"evil.js\"></SCRIPT> after",
			want:  "before  after",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sanitizeContent(tc.input))
		})
	}
}
