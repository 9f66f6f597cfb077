package scrape

import (
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "collapses whitespace runs",
			input:    "hello   world\n\t again",
			expected: "hello world again",
		},
		{
			name:     "trims leading and trailing whitespace",
			input:    "   padded   ",
			expected: "padded",
		},
		{
			name:     "strips disallowed characters",
			input:    "salary: $100k @ HQ #remote",
			expected: "salary: 100k HQ remote",
		},
		{
			name:     "keeps permitted punctuation",
			input:    `We need a "Go" dev (remote) - apply now!`,
			expected: `We need a "Go" dev (remote) - apply now!`,
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "only disallowed characters",
			input:    "@#$%^&*",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanText(tt.input)
			if result != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, result)
			}
		})
	}
}

func TestCleanTextIdempotent(t *testing.T) {
	inputs := []string{
		"hello   world",
		"salary: $100k @ HQ\n\nremote ☃ ok",
		"  a @ b @ c  ",
		"plain text",
		"",
	}

	for _, input := range inputs {
		once := CleanText(input)
		twice := CleanText(once)
		if once != twice {
			t.Errorf("CleanText not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestCleanTextNoDoubleSpaces(t *testing.T) {
	// Removing a disallowed character between two spaces must not leave a
	// doubled space behind.
	result := CleanText("left ☃ right")
	if strings.Contains(result, "  ") {
		t.Errorf("Expected no doubled spaces, got %q", result)
	}
	if result != "left right" {
		t.Errorf("Expected 'left right', got %q", result)
	}
}
