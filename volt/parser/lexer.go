package parser

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/npillmayer/fontvolt/volt"
)

// tokenType is the type of a lexer token.
type tokenType uint8

const (
	tokenEOF tokenType = iota
	tokenKeyword // DEF_GLYPH, END_ENUM, …
	tokenString  // "quoted"
	tokenInt     // 123, -456
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "end of input"
	case tokenKeyword:
		return "keyword"
	case tokenString:
		return "string"
	case tokenInt:
		return "integer"
	}
	return "unknown token"
}

type token struct {
	typ   tokenType
	value string
	loc   volt.Location
}

func (t token) String() string {
	switch t.typ {
	case tokenEOF:
		return t.typ.String()
	case tokenString:
		return fmt.Sprintf("%q", t.value)
	}
	return t.value
}

// lexer splits VOLT text into keywords, quoted strings and integers.
// Tokens are separated by white space.
type lexer struct {
	input string
	file  string
	pos   int
	line  int
	col   int
}

func newLexer(input, file string) *lexer {
	return &lexer{input: input, file: file, line: 1, col: 1}
}

func (l *lexer) tokenize() ([]token, error) {
	var tokens []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.typ == tokenEOF {
			return tokens, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipWhitespace()
	loc := l.location()
	if l.pos >= len(l.input) {
		return token{typ: tokenEOF, loc: loc}, nil
	}
	ch := l.input[l.pos]
	switch {
	case ch == '"':
		return l.scanString(loc)
	case ch == '-' || isDigit(ch):
		return l.scanInt(loc)
	case isKeywordChar(ch):
		start := l.pos
		for l.pos < len(l.input) && isKeywordChar(l.input[l.pos]) {
			l.advance()
		}
		return token{typ: tokenKeyword, value: l.input[start:l.pos], loc: loc}, nil
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return token{}, &volt.SyntaxError{Msg: fmt.Sprintf("unexpected character %q", r), Location: loc}
}

func (l *lexer) scanString(loc volt.Location) (token, error) {
	l.advance() // opening quote
	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] != '"' {
		l.advance()
	}
	if l.pos >= len(l.input) {
		return token{}, &volt.SyntaxError{Msg: "unterminated string", Location: loc}
	}
	value := l.input[start:l.pos]
	l.advance() // closing quote
	return token{typ: tokenString, value: value, loc: loc}, nil
}

func (l *lexer) scanInt(loc volt.Location) (token, error) {
	start := l.pos
	if l.input[l.pos] == '-' {
		l.advance()
	}
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.advance()
	}
	value := l.input[start:l.pos]
	if _, err := strconv.Atoi(value); err != nil {
		return token{}, &volt.SyntaxError{Msg: fmt.Sprintf("malformed integer %q", value), Location: loc}
	}
	if l.pos < len(l.input) && !isSpace(l.input[l.pos]) {
		return token{}, &volt.SyntaxError{Msg: fmt.Sprintf("malformed integer %q", l.input[start:l.pos+1]), Location: loc}
	}
	return token{typ: tokenInt, value: value, loc: loc}, nil
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.advance()
	}
}

func (l *lexer) advance() {
	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
		l.pos++
		return
	}
	_, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	l.col++
}

func (l *lexer) location() volt.Location {
	return volt.Location{File: l.file, Line: l.line, Column: l.col}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isKeywordChar(ch byte) bool {
	return ch >= 'A' && ch <= 'Z' || ch >= 'a' && ch <= 'z' || ch == '_' || isDigit(ch)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}
