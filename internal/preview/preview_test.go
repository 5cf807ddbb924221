package preview

import (
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		content string
		opts    Options
		want    string
	}{
		{"zero lines", "a\nb", Options{Width: 10, Lines: 0, Ellipsis: true}, ""},
		{"empty content", "", Default(), ""},
		{"fits", "hello\nworld", Default(), "hello\nworld"},
		{"trailing newline is not a line", "a\nb\n", Options{Width: Unlimited, Lines: 2, Ellipsis: true}, "a\nb"},
		{"line budget spent", "a\nb\nc\nd", Options{Width: Unlimited, Lines: 2, Ellipsis: true}, "a\nb\n(...)"},
		{"no ellipsis", "a\nb\nc", Options{Width: Unlimited, Lines: 1, Ellipsis: false}, "a"},
		{"width cut", "abcdef\nxy", Options{Width: 3, Lines: Unlimited, Ellipsis: true}, "abc\nxy"},
		{"width cut counts runes", "héllo", Options{Width: 2, Lines: 1, Ellipsis: true}, "hé"},
		{"unlimited", "a\nb\nc\nd\ne", Options{Width: Unlimited, Lines: Unlimited, Ellipsis: true}, "a\nb\nc\nd\ne"},
		{"zero width keeps lines", "ab\ncd", Options{Width: 0, Lines: 2, Ellipsis: true}, "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format([]byte(tt.content), tt.opts)
			if got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestParseDimensions(t *testing.T) {
	base := Default()
	tests := []struct {
		arg       string
		wantWidth int
		wantLines int
		wantErr   bool
	}{
		{"80:3", 80, 3, false},
		{"80", 80, DefaultLines, false},
		{":5", Unlimited, 5, false},
		{"80:", 80, Unlimited, false},
		{":", Unlimited, Unlimited, false},
		{"", Unlimited, DefaultLines, false},
		{"abc:3", 0, 0, true},
		{"80:x", 0, 0, true},
		{"-1:2", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := ParseDimensions(tt.arg, base)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDimensions(%q) expected error", tt.arg)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDimensions(%q) error: %v", tt.arg, err)
			}
			if got.Width != tt.wantWidth || got.Lines != tt.wantLines {
				t.Errorf("ParseDimensions(%q) = %d:%d, want %d:%d", tt.arg, got.Width, got.Lines, tt.wantWidth, tt.wantLines)
			}
			if !got.Ellipsis {
				t.Error("Ellipsis should carry over from base")
			}
		})
	}
}
