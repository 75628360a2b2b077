// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text unchanged", "No tags here.", "No tags here."},
		{"color pair", "[color=#FFaa00]gold[/color] coin", "gold coin"},
		{"italic and bold", "[i]very[/i] [b]bold[/b]", "very bold"},
		{"other tags dropped as tokens", "[pause=0.5]Wait[speed=2] for it", "Wait for it"},
		{"nested tags", "[b][i]both[/i][/b]", "both"},
		{"unterminated tag kept", "a [b unterminated", "a [b unterminated"},
		{"empty brackets kept", "[] stays", "[] stays"},
		{"named color is a generic tag", "[color=red]x[/color]", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripMarkup(tt.in))
		})
	}
}

func TestStripMarkupIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"clean",
		"[b]x[/b]",
		"[[b]x]",
		"a[b[c]d]e",
		"[]x]",
		"[color=#000000][i]deep[/i][/color] [unclosed",
	}
	for _, in := range inputs {
		once := StripMarkup(in)
		assert.Equal(t, once, StripMarkup(once), "input %q", in)
	}
}
