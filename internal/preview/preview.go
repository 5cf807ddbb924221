// Package preview renders a bounded, truncated view of history content.
package preview

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Unlimited disables a bound.
const Unlimited = -1

// Marker is appended on its own line when lines were left out.
const Marker = "(...)"

const (
	DefaultWidth = 120
	DefaultLines = 3
)

// Options bounds a preview. Negative Width or Lines means no limit; Lines of
// zero renders nothing.
type Options struct {
	Width    int
	Lines    int
	Ellipsis bool
}

func Default() Options {
	return Options{Width: DefaultWidth, Lines: DefaultLines, Ellipsis: true}
}

// Format renders up to opts.Lines lines of content, each cut to opts.Width
// runes. If lines remain after the line budget is spent and opts.Ellipsis is
// set, Marker is added as a final line.
func Format(content []byte, opts Options) string {
	if opts.Lines == 0 {
		return ""
	}

	var sb strings.Builder
	rest := string(content)
	for n := 0; rest != "" && (opts.Lines < 0 || n < opts.Lines); n++ {
		var line string
		line, rest, _ = strings.Cut(rest, "\n")
		if n > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(truncate(line, opts.Width))
	}
	if rest != "" && opts.Ellipsis {
		sb.WriteString("\n" + Marker)
	}
	return sb.String()
}

func truncate(s string, width int) string {
	if width < 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	n := 0
	for i := range s {
		if n == width {
			return s[:i]
		}
		n++
	}
	return s
}

// ParseDimensions applies a "WIDTH:LINES" argument to base. An empty number
// removes that limit. Without a colon only the width changes.
func ParseDimensions(arg string, base Options) (Options, error) {
	width, lines, hasLines := strings.Cut(arg, ":")

	w, err := parseBound(width)
	if err != nil {
		return base, fmt.Errorf("invalid preview dimensions: %q isn't a valid number for width", width)
	}
	base.Width = w

	if hasLines {
		l, err := parseBound(lines)
		if err != nil {
			return base, fmt.Errorf("invalid preview dimensions: %q isn't a valid number for line count", lines)
		}
		base.Lines = l
	}
	return base, nil
}

func parseBound(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unlimited, nil
	}
	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
