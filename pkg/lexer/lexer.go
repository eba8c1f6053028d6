// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package lexer implements Component A: it converts a Lua source buffer
// into a finite sequence of (start, Token, end) triples terminated by an
// EOF token at (len, EOF, len). Its architecture (stateFn-driven scanning
// with an internal queue of pending emissions) follows the teacher's own
// pkg/yang/lex.go state-machine lexer, adapted to Lua's richer token set
// (numerals, three string forms, long brackets, two-character operators).
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/luafmt/luafmt/pkg/token"
)

const eof = -1

// stateFn represents a state in the lexer as a function, returning the
// next state the lexer should move to, or nil when scanning is complete.
type stateFn func(*Lexer) stateFn

// Lexer holds the internal state of the scanner over a single source
// buffer. It is not safe for concurrent use; callers format one file
// at a time (spec.md §5: single-threaded, sequential across files).
type Lexer struct {
	file  string
	input string
	start int // start offset of the token being scanned
	pos   int // current scan offset
	line  int // current 1's based line
	col   int // current 0 based column
	sline int // line at start of current token
	scol  int // col at start of current token

	width int // width in bytes of the last rune returned by next

	pending []token.Token // queue of tokens emitted but not yet returned
	state   stateFn
	err     *Error
}

// Error is a lex error: an unrecognized symbol or an unterminated literal.
type Error struct {
	Pos token.Pos
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Col, e.Msg)
}

// New returns a Lexer scanning input. path names the source for
// diagnostics (e.g. a file name); it may be empty.
func New(input, path string) *Lexer {
	l := &Lexer{
		file:  path,
		input: input,
		line:  1,
		state: lexGround,
	}
	if strings.HasPrefix(input, "#!") {
		l.state = lexShebang
	}
	return l
}

// Next returns the next token from the input. Once EOF has been returned,
// subsequent calls keep returning EOF. If a lex error occurs, Next returns
// a zero-width token.EOF-kind token forever after and Err reports the
// error that stopped scanning.
func (l *Lexer) Next() token.Token {
	for {
		if len(l.pending) > 0 {
			t := l.pending[0]
			l.pending = l.pending[1:]
			return t
		}
		if l.err != nil || l.state == nil {
			return l.eofToken()
		}
		l.state = l.state(l)
	}
}

// Err returns the lex error that halted scanning, if any.
func (l *Lexer) Err() error {
	if l.err == nil {
		return nil
	}
	return l.err
}

func (l *Lexer) eofToken() token.Token {
	p := l.posAt(len(l.input))
	return token.Token{Kind: token.EOF, Span: token.Span{Start: p, End: p}}
}

func (l *Lexer) posAt(offset int) token.Pos {
	return token.Pos{Offset: offset, Line: l.line, Col: l.col + 1}
}

// emit queues a token of the given kind covering [start,pos) as text.
func (l *Lexer) emit(kind token.Kind) {
	l.emitText(kind, l.input[l.start:l.pos], 0)
}

func (l *Lexer) emitText(kind token.Kind, text string, level int) {
	l.pending = append(l.pending, token.Token{
		Kind:  kind,
		Text:  text,
		Level: level,
		Span: token.Span{
			Start: token.Pos{Offset: l.start, Line: l.sline, Col: l.scol + 1},
			End:   l.posAt(l.pos),
		},
	})
	l.consume()
}

func (l *Lexer) consume() { l.start = l.pos }

func (l *Lexer) fail(format string, args ...interface{}) stateFn {
	l.err = &Error{Pos: l.posAt(l.pos), Msg: fmt.Sprintf(format, args...)}
	return nil
}

func (l *Lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += w
	l.width = w
	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) backup() {
	l.pos -= l.width
	if l.width > 0 {
		if l.input[l.pos] == '\n' {
			l.line--
			// column is now unknown without rescanning; not needed since
			// backup is only ever used right after a peek-style next.
		} else {
			l.col--
		}
	}
}

func (l *Lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// peek2 looks two runes ahead without consuming either.
func (l *Lexer) peek2() rune {
	save := *l
	r1 := l.next()
	if r1 == eof {
		*l = save
		return eof
	}
	r2 := l.next()
	*l = save
	return r2
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
func isAlpha(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
func isAlphaNum(r rune) bool { return isAlpha(r) || isDigit(r) }

// lexShebang consumes a leading #!-line as a single SheBang token.
func lexShebang(l *Lexer) stateFn {
	for {
		switch l.peek() {
		case eof:
			l.emit(token.SheBang)
			return nil
		case '\n':
			l.emit(token.SheBang)
			return lexGround
		default:
			l.next()
		}
	}
}

// lexGround is the state when the lexer is not in the middle of a token.
func lexGround(l *Lexer) stateFn {
	for {
		switch r := l.peek(); r {
		case ' ', '\t', '\r', '\n':
			l.next()
			l.consume()
			continue
		}
		break
	}
	l.sline, l.scol = l.line, l.col

	r := l.peek()
	switch {
	case r == eof:
		return nil
	case r == '-' && l.peek2() == '-':
		l.next()
		l.next()
		return lexComment
	case r == '"' || r == '\'':
		l.next()
		return lexQuotedString(r)
	case r == '[':
		if k, ok := longBracketLevel(l); ok {
			return lexLongString(k)
		}
		l.next()
		l.emit(token.Punct)
		return lexGround
	case isDigit(r), r == '.' && isDigit(l.peek2()):
		return lexNumber
	case isAlpha(r):
		return lexIdentifier
	default:
		return lexOperator
	}
}

// longBracketLevel looks ahead for a long-bracket opener "[" "="*k "[" at the
// current position without consuming anything unless it matches; it
// reports (k, true) on a match.
func longBracketLevel(l *Lexer) (int, bool) {
	save := *l
	l.next() // consume '['
	k := 0
	for l.peek() == '=' {
		l.next()
		k++
	}
	if l.peek() == '[' {
		l.next()
		return k, true
	}
	*l = save
	return 0, false
}

func lexComment(l *Lexer) stateFn {
	if k, ok := longBracketLevel(l); ok {
		if !skipToLongBracketClose(l, k) {
			return l.fail("unexpected end of file in long comment")
		}
		l.consume()
		return lexGround
	}
	for {
		switch l.peek() {
		case eof, '\n':
			l.consume()
			return lexGround
		default:
			l.next()
		}
	}
}

// skipToLongBracketClose advances pos past the first closer of level k
// (a ']' + k '='s + ']'), returning false on EOF. It also skips a leading
// newline immediately after the opener, per Lua's long-bracket rule.
func skipToLongBracketClose(l *Lexer, k int) bool {
	if l.peek() == '\r' {
		l.next()
	}
	if l.peek() == '\n' {
		l.next()
	}
	for {
		switch l.peek() {
		case eof:
			return false
		case ']':
			save := *l
			l.next()
			n := 0
			for l.peek() == '=' {
				l.next()
				n++
			}
			if n == k && l.peek() == ']' {
				l.next()
				return true
			}
			*l = save
			l.next()
		default:
			l.next()
		}
	}
}

func lexLongString(k int) stateFn {
	return func(l *Lexer) stateFn {
		payloadStart := l.pos
		if !skipToLongBracketClose(l, k) {
			return l.fail("unexpected end of file in long string")
		}
		closeLen := 2 + k
		payload := l.input[payloadStart : l.pos-closeLen]
		payload = trimLongStringLeadingNewline(payload)
		l.emitText(token.LongString, payload, k)
		return lexGround
	}
}

func trimLongStringLeadingNewline(s string) string {
	if strings.HasPrefix(s, "\r\n") {
		return s[2:]
	}
	if strings.HasPrefix(s, "\n") || strings.HasPrefix(s, "\r") {
		return s[1:]
	}
	return s
}

// lexQuotedString scans a normal ('"') or char ('\'') quoted string. The
// opening quote has already been consumed; quote identifies it.
func lexQuotedString(quote rune) stateFn {
	return func(l *Lexer) stateFn {
		var text []byte
		for {
			switch r := l.next(); r {
			case eof, '\n':
				return l.fail("unterminated string")
			case quote:
				kind := token.String
				l.emitText(kind, string(text), boolToQuoteLevel(quote))
				return lexGround
			case '\\':
				esc, ok := l.scanEscape()
				if !ok {
					return l.fail("invalid escape sequence")
				}
				text = append(text, esc...)
			default:
				text = append(text, string(r)...)
			}
		}
	}
}

// boolToQuoteLevel records which quote character delimited the string in
// Token.Level (0 for '"', 1 for '\''), so the printer can tell a
// normal-quoted string from a char-quoted one (spec.md §3: Token is a
// tagged value with distinct normal- and char-quoted string variants).
func boolToQuoteLevel(quote rune) int {
	if quote == '\'' {
		return 1
	}
	return 0
}

// scanEscape consumes a backslash escape sequence (the '\\' has already
// been consumed) and returns its decoded bytes.
func (l *Lexer) scanEscape() ([]byte, bool) {
	switch r := l.next(); r {
	case 'a':
		return []byte{'\a'}, true
	case 'b':
		return []byte{'\b'}, true
	case 'f':
		return []byte{'\f'}, true
	case 'n':
		return []byte{'\n'}, true
	case 'r':
		return []byte{'\r'}, true
	case 't':
		return []byte{'\t'}, true
	case 'v':
		return []byte{'\v'}, true
	case '\\', '"', '\'', '\n':
		return []byte(string(r)), true
	case 'x':
		var h []byte
		for i := 0; i < 2 && isHexDigit(l.peek()); i++ {
			h = append(h, byte(l.next()))
		}
		if len(h) != 2 {
			return nil, false
		}
		v, err := strconv.ParseUint(string(h), 16, 8)
		if err != nil {
			return nil, false
		}
		return []byte{byte(v)}, true
	case 'z':
		for {
			switch l.peek() {
			case ' ', '\t', '\r', '\n':
				l.next()
			default:
				return []byte{}, true
			}
		}
	default:
		if isDigit(r) {
			d := []byte{byte(r)}
			for i := 0; i < 2 && isDigit(l.peek()); i++ {
				d = append(d, byte(l.next()))
			}
			v, err := strconv.ParseUint(string(d), 10, 32)
			if err != nil || v > 255 {
				return nil, false
			}
			return []byte{byte(v)}, true
		}
		return nil, false
	}
}

func lexNumber(l *Lexer) stateFn {
	if l.peek() == '0' {
		save := *l
		l.next()
		if p := l.peek(); p == 'x' || p == 'X' {
			l.next()
			hasDigits := false
			for isHexDigit(l.peek()) {
				l.next()
				hasDigits = true
			}
			if l.peek() == '.' {
				l.next()
				for isHexDigit(l.peek()) {
					l.next()
					hasDigits = true
				}
			}
			if !hasDigits {
				return l.fail("malformed number")
			}
			if p := l.peek(); p == 'p' || p == 'P' {
				l.next()
				if p := l.peek(); p == '+' || p == '-' {
					l.next()
				}
				for isDigit(l.peek()) {
					l.next()
				}
			}
			l.emit(token.Number)
			return lexGround
		}
		*l = save
	}
	for isDigit(l.peek()) {
		l.next()
	}
	if l.peek() == '.' {
		l.next()
		for isDigit(l.peek()) {
			l.next()
		}
	}
	if p := l.peek(); p == 'e' || p == 'E' {
		l.next()
		if p := l.peek(); p == '+' || p == '-' {
			l.next()
		}
		for isDigit(l.peek()) {
			l.next()
		}
	}
	l.emit(token.Number)
	return lexGround
}

func lexIdentifier(l *Lexer) stateFn {
	for isAlphaNum(l.peek()) {
		l.next()
	}
	text := l.input[l.start:l.pos]
	if token.Keywords[text] {
		l.emit(token.Keyword)
	} else {
		l.emit(token.Ident)
	}
	return lexGround
}

// threeCharOps, twoCharOps are checked longest-first so that e.g. "..." is
// never mis-scanned as ".." followed by ".".
var threeCharOps = []string{token.Ellipsis}
var twoCharOps = []string{
	token.Concat, token.FloorDiv, token.ShiftLeft, token.ShiftRight,
	token.LE, token.GE, token.EQ, token.NE, token.DoubleColon,
}

const singleCharOps = "+-*/%^#&~|<>=(){}[];:,."

func lexOperator(l *Lexer) stateFn {
	rest := l.input[l.pos:]
	for _, op := range threeCharOps {
		if strings.HasPrefix(rest, op) {
			l.pos += len(op)
			l.col += len(op)
			l.emit(token.Punct)
			return lexGround
		}
	}
	for _, op := range twoCharOps {
		if strings.HasPrefix(rest, op) {
			l.pos += len(op)
			l.col += len(op)
			l.emit(token.Punct)
			return lexGround
		}
	}
	r := l.peek()
	if strings.ContainsRune(singleCharOps, r) {
		l.next()
		l.emit(token.Punct)
		return lexGround
	}
	return l.fail("unrecognized symbol %q", r)
}
