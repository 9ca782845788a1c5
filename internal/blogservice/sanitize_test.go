package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeMarkdown(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain markdown untouched",
			input:    "# Title\n\nSome **bold** text.",
			expected: "# Title\n\nSome **bold** text.",
		},
		{
			name:     "script tag removed",
			input:    "before <script>alert('x')</script> after",
			expected: "before  after",
		},
		{
			name:     "script tag with attributes removed",
			input:    `<script type="text/javascript">alert('x')</script>`,
			expected: "",
		},
		{
			name:     "mixed case script tag removed",
			input:    "a <ScRiPt>alert('x')</sCrIpT> b",
			expected: "a  b",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, sanitizeMarkdown(tc.input))
		})
	}
}
