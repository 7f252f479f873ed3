package codeparse

// The lexer splits component source into open tags, close tags and text runs.
// It is deliberately forgiving: anything that does not look like a tag is
// text, unterminated constructs run to end of input.

type tokenKind int

const (
	tokText tokenKind = iota
	tokOpen
	tokClose
)

type attr struct {
	name  string
	value string
}

type token struct {
	kind        tokenKind
	name        string
	attrs       []attr
	selfClosing bool
	text        string
}

type lexer struct {
	src string
	pos int
}

func lex(src string) []token {
	l := &lexer{src: src}
	var toks []token
	var text []byte

	flushText := func() {
		if len(text) > 0 {
			toks = append(toks, token{kind: tokText, text: string(text)})
			text = text[:0]
		}
	}

	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		if ch != '<' {
			text = append(text, ch)
			l.pos++
			continue
		}

		next := byte(0)
		if l.pos+1 < len(l.src) {
			next = l.src[l.pos+1]
		}
		switch {
		case next == '/':
			flushText()
			toks = append(toks, l.closeTag())
		case isNameStart(next):
			flushText()
			toks = append(toks, l.openTag())
		case next == '!':
			flushText()
			l.skipTo('>')
		default:
			// Stray '<' (comparison operator, arrow art): plain text.
			text = append(text, ch)
			l.pos++
		}
	}
	flushText()
	return toks
}

func (l *lexer) closeTag() token {
	l.pos += 2 // past "</"
	start := l.pos
	for l.pos < len(l.src) && isNameChar(l.src[l.pos]) {
		l.pos++
	}
	name := l.src[start:l.pos]
	l.skipTo('>')
	return token{kind: tokClose, name: name}
}

func (l *lexer) openTag() token {
	l.pos++ // past '<'
	start := l.pos
	for l.pos < len(l.src) && isNameChar(l.src[l.pos]) {
		l.pos++
	}
	tok := token{kind: tokOpen, name: l.src[start:l.pos]}

	for l.pos < len(l.src) {
		l.skipSpace()
		if l.pos >= len(l.src) {
			break
		}
		ch := l.src[l.pos]
		if ch == '>' {
			l.pos++
			break
		}
		if ch == '/' {
			l.pos++
			if l.pos < len(l.src) && l.src[l.pos] == '>' {
				l.pos++
			}
			tok.selfClosing = true
			break
		}
		if !isNameStart(ch) {
			l.pos++
			continue
		}

		aStart := l.pos
		for l.pos < len(l.src) && isNameChar(l.src[l.pos]) {
			l.pos++
		}
		a := attr{name: l.src[aStart:l.pos]}
		l.skipSpace()
		if l.pos < len(l.src) && l.src[l.pos] == '=' {
			l.pos++
			l.skipSpace()
			a.value = l.attrValue()
		}
		tok.attrs = append(tok.attrs, a)
	}
	return tok
}

// attrValue reads a quoted string, a balanced {expr} (returning the inner
// expression text), or a bare word.
func (l *lexer) attrValue() string {
	if l.pos >= len(l.src) {
		return ""
	}
	switch ch := l.src[l.pos]; ch {
	case '"', '\'':
		l.pos++
		start := l.pos
		for l.pos < len(l.src) && l.src[l.pos] != ch {
			l.pos++
		}
		v := l.src[start:l.pos]
		if l.pos < len(l.src) {
			l.pos++
		}
		return v
	case '{':
		return l.bracedValue()
	default:
		start := l.pos
		for l.pos < len(l.src) && !isSpace(l.src[l.pos]) && l.src[l.pos] != '>' && l.src[l.pos] != '/' {
			l.pos++
		}
		return l.src[start:l.pos]
	}
}

// bracedValue scans a balanced brace expression, quote-aware, and returns the
// text between the outermost braces. `style={{a: 1}}` yields "{a: 1}".
func (l *lexer) bracedValue() string {
	depth := 0
	var quote byte
	start := l.pos + 1
	for ; l.pos < len(l.src); l.pos++ {
		ch := l.src[l.pos]
		if quote != 0 {
			if ch == quote {
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"', '`':
			quote = ch
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				v := l.src[start:l.pos]
				l.pos++
				return v
			}
		}
	}
	return l.src[start:]
}

func (l *lexer) skipTo(ch byte) {
	for l.pos < len(l.src) && l.src[l.pos] != ch {
		l.pos++
	}
	if l.pos < len(l.src) {
		l.pos++
	}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isNameStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isNameChar(ch byte) bool {
	return isNameStart(ch) || (ch >= '0' && ch <= '9') || ch == '-' || ch == '_'
}
