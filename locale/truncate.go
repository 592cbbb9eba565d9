package locale

import "unicode/utf16"

// TruncateUTF16 caps s at n UTF-16 code units.
//
// A cut that splits a surrogate pair leaves a lone surrogate, which decodes
// to U+FFFD. The result is the same on every run.
func TruncateUTF16(s string, n int) string {
	units := utf16.Encode([]rune(s))
	if len(units) <= n {
		return s
	}
	return string(utf16.Decode(units[:n]))
}
