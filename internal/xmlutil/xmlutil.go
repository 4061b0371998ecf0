// Package xmlutil holds the text escaping rules of the castxml wire format.
package xmlutil

import "strings"

// Encode escapes s for use inside a double-quoted XML attribute.
// With cdata set, quotes pass through untouched and only markup
// characters are replaced.
func Encode(s string, cdata bool) string {
	if !strings.ContainsAny(s, `&<>'"`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '\'':
			if cdata {
				b.WriteByte(c)
			} else {
				b.WriteString("&apos;")
			}
		case '"':
			if cdata {
				b.WriteByte(c)
			} else {
				b.WriteString("&quot;")
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Attr escapes an attribute value.
func Attr(s string) string { return Encode(s, false) }
