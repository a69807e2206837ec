package orders

import "strings"

// LinkBuilder produces wa.me deep links that open WhatsApp with the
// order message prefilled for the configured recipient.
type LinkBuilder struct {
	baseURL   string
	recipient string
}

func NewLinkBuilder(baseURL, recipient string) *LinkBuilder {
	return &LinkBuilder{baseURL: strings.TrimRight(baseURL, "/"), recipient: recipient}
}

// Link returns the deep link for text.
func (lb *LinkBuilder) Link(text string) string {
	return lb.baseURL + "/" + lb.recipient + "?text=" + encodeURIComponent(text)
}

// encodeURIComponent percent-encodes text the way browsers do for query
// components: every UTF-8 byte is escaped except ASCII alphanumerics
// and -_.!~*'(). This differs from url.QueryEscape, which would turn
// spaces into "+" and escape the mark characters.
func encodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreservedMark(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}

const upperHex = "0123456789ABCDEF"

func isUnreservedMark(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
