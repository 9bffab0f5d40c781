package tspl

import "strings"

// Escape prefixes every '"' and '\' in s with a backslash. All other bytes,
// non-ASCII included, are left untouched.
func Escape(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Unescape reverses Escape. A trailing lone backslash is kept as is.
func Unescape(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			i++
			c = s[i]
		}
		b.WriteByte(c)
	}
	return b.String()
}

// quote escapes payload and wraps it in double quotes.
func quote(payload string) (string, error) {
	escaped := Escape(payload)
	if err := checkFraming(escaped); err != nil {
		return "", err
	}
	return `"` + escaped + `"`, nil
}

// checkFraming reports a bare quote or a dangling backslash, either of which
// would end the quoted field early.
func checkFraming(escaped string) error {
	for i := 0; i < len(escaped); i++ {
		switch escaped[i] {
		case '\\':
			if i+1 == len(escaped) {
				return ErrUnescapedPayload
			}
			i++
		case '"':
			return ErrUnescapedPayload
		}
	}
	return nil
}
