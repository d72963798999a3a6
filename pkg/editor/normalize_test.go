package editor

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a \n", "A"},
		{" go ", "GO"},
		{"a b\tc", "ABC"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeSymbol(tt.in); got != tt.want {
			t.Errorf("NormalizeSymbol(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"Plain", "ABBA", "ABBA", nil},
		{"Keeps Whitespace", "A B\n", "A B\n", nil},
		{"Strips ANSI Escape", "A\x1b[31mB", "A[31mB", nil},
		{"Strips NUL", "A\x00B", "AB", nil},
		{"Invalid UTF-8", "A\xffB", "", ErrInvalidUTF8},
		{"Too Large", strings.Repeat("A", DefaultMaxInputSize+1), "", ErrInputTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeInput(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SanitizeInput() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("SanitizeInput() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeInput_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "3")

	if _, err := SanitizeInput("ABCD"); !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("expected ErrInputTooLarge with limit 3, got %v", err)
	}
	if _, err := SanitizeInput("ABC"); err != nil {
		t.Errorf("unexpected error at the limit: %v", err)
	}
}
