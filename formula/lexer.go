package formula

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/javajack/vicalc/cellref"
	"github.com/javajack/vicalc/value"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokString
	tokBool
	tokError
	tokRef
	tokFunc
	tokOp
	tokLParen
	tokRParen
	tokComma
	tokColon
)

type token struct {
	kind tokenKind
	text string
	pos  int
	num  float64
	ref  cellref.Address
	err  value.ErrorKind
}

// SyntaxError reports a formula that cannot be tokenized or parsed.
type SyntaxError struct {
	Pos int // byte offset into the formula source
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d: %s", e.Pos, e.Msg)
}

func syntaxErr(pos int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// error codes sorted longest first so "#N/A" never shadows a longer code.
var errorCodes = func() []string {
	codes := value.Codes()
	sort.Slice(codes, func(i, j int) bool { return len(codes[i]) > len(codes[j]) })
	return codes
}()

type lexer struct {
	src  string
	pos  int
	base int
	toks []token
}

func lex(src string, base int) ([]token, error) {
	l := &lexer{src: src, base: base}
	for {
		l.skipSpace()
		if l.pos >= len(l.src) {
			l.toks = append(l.toks, token{kind: tokEOF, pos: l.at(l.pos)})
			return l.toks, nil
		}
		if err := l.next(); err != nil {
			return nil, err
		}
	}
}

func (l *lexer) at(p int) int { return l.base + p }

func (l *lexer) emit(t token) {
	l.toks = append(l.toks, t)
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t' || l.src[l.pos] == '\n' || l.src[l.pos] == '\r') {
		l.pos++
	}
}

func (l *lexer) next() error {
	start := l.pos
	c := l.src[l.pos]
	switch {
	case isDigit(c) || (c == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1])):
		return l.number()
	case c == '"':
		return l.text()
	case c == '#':
		return l.errorLiteral()
	case isWordStart(c):
		return l.word()
	case c == '(':
		l.pos++
		l.emit(token{kind: tokLParen, text: "(", pos: l.at(start)})
	case c == ')':
		l.pos++
		l.emit(token{kind: tokRParen, text: ")", pos: l.at(start)})
	case c == ',':
		l.pos++
		l.emit(token{kind: tokComma, text: ",", pos: l.at(start)})
	case c == ':':
		l.pos++
		l.emit(token{kind: tokColon, text: ":", pos: l.at(start)})
	case c == '<' || c == '>':
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '=' || (c == '<' && l.src[l.pos] == '>')) {
			l.pos++
		}
		l.emit(token{kind: tokOp, text: l.src[start:l.pos], pos: l.at(start)})
	case strings.IndexByte("+-*/^&=", c) >= 0:
		l.pos++
		l.emit(token{kind: tokOp, text: string(c), pos: l.at(start)})
	default:
		return syntaxErr(l.at(start), "unexpected character %q", c)
	}
	return nil
}

func (l *lexer) number() error {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		p := l.pos + 1
		if p < len(l.src) && (l.src[p] == '+' || l.src[p] == '-') {
			p++
		}
		if p < len(l.src) && isDigit(l.src[p]) {
			for p < len(l.src) && isDigit(l.src[p]) {
				p++
			}
			l.pos = p
		}
	}
	text := l.src[start:l.pos]
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return syntaxErr(l.at(start), "bad number %q", text)
	}
	l.emit(token{kind: tokNumber, text: text, num: n, pos: l.at(start)})
	return nil
}

func (l *lexer) text() error {
	start := l.pos
	l.pos++
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '"' {
			if l.pos+1 < len(l.src) && l.src[l.pos+1] == '"' {
				b.WriteByte('"')
				l.pos += 2
				continue
			}
			l.pos++
			l.emit(token{kind: tokString, text: b.String(), pos: l.at(start)})
			return nil
		}
		b.WriteByte(c)
		l.pos++
	}
	return syntaxErr(l.at(start), "unterminated string")
}

func (l *lexer) errorLiteral() error {
	rest := l.src[l.pos:]
	for _, code := range errorCodes {
		if len(rest) >= len(code) && strings.EqualFold(rest[:len(code)], code) {
			k, _ := value.ParseCode(code)
			l.emit(token{kind: tokError, text: code, err: k, pos: l.at(l.pos)})
			l.pos += len(code)
			return nil
		}
	}
	return syntaxErr(l.at(l.pos), "unknown error constant")
}

// word lexes a function name, cell reference or boolean constant.
func (l *lexer) word() error {
	start := l.pos
	for l.pos < len(l.src) && isWordChar(l.src[l.pos]) {
		l.pos++
	}
	w := l.src[start:l.pos]

	look := l.pos
	for look < len(l.src) && (l.src[look] == ' ' || l.src[look] == '\t') {
		look++
	}
	if look < len(l.src) && l.src[look] == '(' && !strings.Contains(w, "$") {
		l.emit(token{kind: tokFunc, text: strings.ToUpper(w), pos: l.at(start)})
		return nil
	}
	if a, n, ok := cellref.Scan(w); ok && n == len(w) {
		l.emit(token{kind: tokRef, text: w, ref: a, pos: l.at(start)})
		return nil
	}
	switch strings.ToUpper(w) {
	case "TRUE", "FALSE":
		l.emit(token{kind: tokBool, text: strings.ToUpper(w), pos: l.at(start)})
		return nil
	}
	return syntaxErr(l.at(start), "unknown name %q", w)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isWordStart(c byte) bool {
	return c == '$' || c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isWordChar(c byte) bool {
	return isWordStart(c) || isDigit(c) || c == '.'
}
