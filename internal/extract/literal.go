package extract

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxLiteralDepth bounds list nesting so hostile input cannot blow the stack.
const maxLiteralDepth = 32

// ParseLiteral parses a literal expression as emitted by a model asked for a
// list: quoted strings, numbers, True/False/None and bracketed lists. Names,
// calls, tuples, dicts and operators are rejected. The whole input must be
// consumed.
//
// Strings decode to string, numbers to float64, booleans to bool, None to
// nil and lists to []any, which is also the shape json.Unmarshal produces.
func ParseLiteral(src string) (any, error) {
	p := &literalParser{src: src}
	p.skipSpace()
	v, err := p.value(0)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected trailing input %q", p.rest(12))
	}
	return v, nil
}

type literalParser struct {
	src string
	pos int
}

func (p *literalParser) errorf(format string, args ...any) error {
	return fmt.Errorf("offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *literalParser) rest(n int) string {
	r := p.src[p.pos:]
	if len(r) > n {
		r = r[:n]
	}
	return r
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

func (p *literalParser) value(depth int) (any, error) {
	if p.pos >= len(p.src) {
		return nil, p.errorf("unexpected end of input")
	}
	c := p.src[p.pos]
	switch {
	case c == '[':
		return p.list(depth)
	case c == '\'' || c == '"':
		return p.str()
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return p.number()
	case isNameStart(c):
		return p.keyword()
	default:
		return nil, p.errorf("unsupported token %q", p.rest(1))
	}
}

func (p *literalParser) list(depth int) (any, error) {
	if depth >= maxLiteralDepth {
		return nil, p.errorf("list nesting deeper than %d", maxLiteralDepth)
	}
	p.pos++ // [
	items := []any{}
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errorf("unterminated list")
		}
		if p.src[p.pos] == ']' {
			p.pos++
			return items, nil
		}
		v, err := p.value(depth + 1)
		if err != nil {
			return nil, err
		}
		items = append(items, v)

		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errorf("unterminated list")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return items, nil
		default:
			return nil, p.errorf("expected ',' or ']' but found %q", p.rest(1))
		}
	}
}

// str parses one quoted string. Adjacent literals are concatenated, matching
// how the same text would evaluate.
func (p *literalParser) str() (any, error) {
	var b strings.Builder
	for {
		if err := p.quoted(&b); err != nil {
			return nil, err
		}
		save := p.pos
		p.skipSpace()
		if p.pos < len(p.src) && (p.src[p.pos] == '\'' || p.src[p.pos] == '"') {
			continue
		}
		p.pos = save
		return b.String(), nil
	}
}

func (p *literalParser) quoted(b *strings.Builder) error {
	quote := p.src[p.pos]
	p.pos++
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return nil
		case c == '\n':
			return p.errorf("newline inside string literal")
		case c == '\\':
			if err := p.escape(b); err != nil {
				return err
			}
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			b.WriteRune(r)
			p.pos += size
		}
	}
	return p.errorf("unterminated string literal")
}

func (p *literalParser) escape(b *strings.Builder) error {
	p.pos++ // backslash
	if p.pos >= len(p.src) {
		return p.errorf("dangling escape")
	}
	c := p.src[p.pos]
	p.pos++
	switch c {
	case '\\', '\'', '"':
		b.WriteByte(c)
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case '\n':
		// Line continuation.
	case 'x':
		return p.hexEscape(b, 2)
	case 'u':
		return p.hexEscape(b, 4)
	case 'U':
		return p.hexEscape(b, 8)
	default:
		// Unknown escapes are kept verbatim.
		b.WriteByte('\\')
		b.WriteByte(c)
	}
	return nil
}

func (p *literalParser) hexEscape(b *strings.Builder, digits int) error {
	if p.pos+digits > len(p.src) {
		return p.errorf("truncated \\x/\\u escape")
	}
	n, err := strconv.ParseUint(p.src[p.pos:p.pos+digits], 16, 32)
	if err != nil {
		return p.errorf("invalid hex escape %q", p.src[p.pos:p.pos+digits])
	}
	if n > unicode.MaxRune {
		return p.errorf("escape out of unicode range")
	}
	p.pos += digits
	b.WriteRune(rune(n))
	return nil
}

func (p *literalParser) number() (any, error) {
	start := p.pos
	if c := p.src[p.pos]; c == '-' || c == '+' {
		p.pos++
	}
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c >= '0' && c <= '9') || c == '.' || c == '_' || c == 'e' || c == 'E' ||
			((c == '-' || c == '+') && (p.src[p.pos-1] == 'e' || p.src[p.pos-1] == 'E')) {
			p.pos++
			continue
		}
		break
	}
	raw := p.src[start:p.pos]
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, "_", ""), 64)
	if err != nil {
		p.pos = start
		return nil, p.errorf("invalid number %q", raw)
	}
	return f, nil
}

func (p *literalParser) keyword() (any, error) {
	start := p.pos
	for p.pos < len(p.src) && isNameChar(p.src[p.pos]) {
		p.pos++
	}
	switch word := p.src[start:p.pos]; word {
	case "True":
		return true, nil
	case "False":
		return false, nil
	case "None":
		return nil, nil
	default:
		p.pos = start
		return nil, p.errorf("name %q is not a literal", word)
	}
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}

// parseLiteralPrefix parses the literal at the start of src and reports how
// many bytes it spans. Input after the literal is left alone.
func parseLiteralPrefix(src string) (any, int, error) {
	p := &literalParser{src: src}
	v, err := p.value(0)
	if err != nil {
		return nil, 0, err
	}
	return v, p.pos, nil
}
