package codec

import "strings"

// RescueCodeLength is the number of decimal digits in a rescue code.
const RescueCodeLength = 24

// FormatRescueCode renders a 24-digit rescue code in groups of four,
// the way it's displayed to a user for transcription.
func FormatRescueCode(digits string) string {
	var b strings.Builder
	for i, c := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte('-')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// ParseRescueCode strips any non-digit separators (hyphens, spaces)
// and returns the bare 24-digit string. It returns ok=false if the
// result isn't exactly RescueCodeLength decimal digits.
func ParseRescueCode(input string) (digits string, ok bool) {
	var b strings.Builder
	for i := 0; i < len(input); i++ {
		c := input[i]
		if c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	digits = b.String()
	return digits, len(digits) == RescueCodeLength
}
