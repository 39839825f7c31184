package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text untouched",
			input:    "The Widget costs 10.",
			expected: "The Widget costs 10.",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  An answer.\n",
			expected: "An answer.",
		},
		{
			name:     "bare fence",
			input:    "```\nAn answer.\n```",
			expected: "An answer.",
		},
		{
			name:     "fence with language tag",
			input:    "```text\nAn answer.\n```",
			expected: "An answer.",
		},
		{
			name:     "multiline body preserved",
			input:    "```\nline one\nline two\n```",
			expected: "line one\nline two",
		},
		{
			name:     "backticks inside text untouched",
			input:    "Use the `price` column.",
			expected: "Use the `price` column.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripCodeFences(tt.input))
		})
	}
}
