package text

import "strings"

// DefaultWrapPadding is the horizontal space, before scaling, reserved
// inside a column when wrapping.
const DefaultWrapPadding = 20

// Wrap splits s into display lines that fit a column of maxWidth pixels at
// the given scale. The usable width is maxWidth - int(DefaultWrapPadding*scale).
func Wrap(s string, m Measurer, maxWidth int, scale float64) []string {
	return WrapPadded(s, m, maxWidth, int(DefaultWrapPadding*scale))
}

// WrapPadded is Wrap with an explicit, already scaled, padding.
//
// Rules:
//   - empty input yields exactly one empty line
//   - a string that fits is returned whole, even if it contains spaces
//   - otherwise words (split on any whitespace) are packed greedily and
//     re-joined with single spaces; a new line starts only when the next
//     word would overflow
//   - a word wider than the column gets a line of its own, unbroken
func WrapPadded(s string, m Measurer, maxWidth, padding int) []string {
	if s == "" {
		return []string{""}
	}

	available := maxWidth - padding
	if m.Width(s) <= available {
		return []string{s}
	}

	var lines []string
	var current []string
	for _, word := range strings.Fields(s) {
		candidate := word
		if len(current) > 0 {
			candidate = strings.Join(current, " ") + " " + word
		}
		if m.Width(candidate) <= available {
			current = append(current, word)
			continue
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = []string{word}
		} else {
			// accepted overflow
			lines = append(lines, word)
		}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}

	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
