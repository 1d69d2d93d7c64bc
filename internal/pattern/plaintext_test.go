package pattern

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePlaintext(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback string
		wantName string
		want     []Cell
	}{
		{
			name:     "glider with header",
			input:    "!Name: Glider\n!Author: Richard K. Guy\n.O.\n..O\nOOO\n",
			fallback: "glider",
			wantName: "Glider",
			want:     gliderCells,
		},
		{
			name:     "fallback name",
			input:    "OOO\n",
			fallback: "blinker",
			wantName: "blinker",
			want:     []Cell{{0, 0}, {0, 1}, {0, 2}},
		},
		{
			name:     "short rows are padded",
			input:    "O\n.O\n..O\n",
			fallback: "diag",
			wantName: "diag",
			want:     []Cell{{0, 0}, {1, 1}, {2, 2}},
		},
		{
			name:     "blank lines around grid and crlf",
			input:    "!Name: Tub\r\n\r\n\r\n.O.\r\nO.O\r\n.O.\r\n\r\n\r\n",
			fallback: "x",
			wantName: "Tub",
			want:     []Cell{{0, 1}, {1, 0}, {1, 2}, {2, 1}},
		},
		{
			name:     "interior blank row is dead",
			input:    "O\n\nO\n",
			fallback: "gap",
			wantName: "gap",
			want:     []Cell{{0, 0}, {2, 0}},
		},
		{
			name:     "leading dead columns normalize away",
			input:    "..OO\n..OO\n",
			fallback: "block",
			wantName: "block",
			want:     []Cell{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := ParsePlaintext(strings.NewReader(tt.input), tt.fallback)
			if err != nil {
				t.Fatalf("ParsePlaintext: %v", err)
			}
			if def.Name != tt.wantName {
				t.Fatalf("name = %q, want %q", def.Name, tt.wantName)
			}
			if diff := cmp.Diff(NormalizeCells(tt.want).Cells(), def.Shape.Cells()); diff != "" {
				t.Fatalf("cells mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParsePlaintextErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"unexpected character", ".O.\n.X.\n", ErrMalformed},
		{"rle content", "x = 3, y = 1\n3o!\n", ErrMalformed},
		{"only comments", "!Name: Nothing\n!\n", ErrEmpty},
		{"all dead", "...\n...\n", ErrEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePlaintext(strings.NewReader(tt.input), "f")
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNameFromFile(t *testing.T) {
	for in, want := range map[string]string{
		"glider.cells":           "glider",
		"dir/beacon.cells":       "beacon",
		`C:\corpus\toad.cells`:   "toad",
		"no-extension":           "no-extension",
		"two.dots.in.name.cells": "two.dots.in.name",
	} {
		if got := NameFromFile(in); got != want {
			t.Errorf("NameFromFile(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestShapeStringRoundTrip(t *testing.T) {
	shape := NormalizeCells(gliderCells)
	def, err := ParsePlaintext(strings.NewReader(shape.String()), "g")
	if err != nil {
		t.Fatalf("ParsePlaintext: %v", err)
	}
	if !def.Shape.Equal(shape) {
		t.Fatalf("round trip changed shape:\n%s", def.Shape)
	}
}
