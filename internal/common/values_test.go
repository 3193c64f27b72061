package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    any
		expected any
	}{
		{name: "scalar", input: 3, expected: 3},
		{name: "nil", input: nil, expected: nil},
		{
			name:     "integer keys",
			input:    map[any]any{1: "a", true: "b"},
			expected: map[string]any{"1": "a", "true": "b"},
		},
		{
			name: "nested under string keys and lists",
			input: map[string]any{
				"tags": map[any]any{1: "${tag}"},
				"list": []any{map[any]any{2.5: "x"}},
			},
			expected: map[string]any{
				"tags": map[string]any{"1": "${tag}"},
				"list": []any{map[string]any{"2.5": "x"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, StringKeys(tt.input))
		})
	}
}
