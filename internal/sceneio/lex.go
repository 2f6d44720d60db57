// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package sceneio parses the renderer's text scene format into a
// populated scene.Scene, and loads the texture files a scene declares.
package sceneio

import (
	"strconv"
)

// tokenKind enumerates the scene grammar's lexical categories. Keywords
// (Plane, Sphere, Color, LookAt, ...) are not distinct kinds - they lex
// as tIdent and the parser matches their text, since the grammar never
// needs the lexer to disambiguate them from arbitrary identifiers.
type tokenKind int

const (
	tEOF tokenKind = iota
	tError
	tLParen
	tRParen
	tLBrace
	tRBrace
	tEquals
	tComma
	tMinus
	tNumber
	tString
	tIdent
)

type token struct {
	kind      tokenKind
	text      string
	num       float32
	line, col int
}

// lexer turns scene source text into a token stream. Comments
// (`# line comment` and `#{ block comment }#`) are skipped transparently.
type lexer struct {
	src       []byte
	pos       int
	line, col int
}

func newLexer(src []byte) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

func (l *lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		b := l.peekByte()
		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			l.advance()
		case b == '#' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '{':
			l.advance()
			l.advance()
			for l.pos < len(l.src) && !(l.peekByte() == '}' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '#') {
				l.advance()
			}
			if l.pos < len(l.src) {
				l.advance()
				l.advance()
			}
		case b == '#':
			for l.pos < len(l.src) && l.peekByte() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// next returns the next token in the stream.
func (l *lexer) next() token {
	l.skipSpaceAndComments()
	line, col := l.line, l.col
	if l.pos >= len(l.src) {
		return token{kind: tEOF, line: line, col: col}
	}

	b := l.peekByte()
	switch {
	case b == '(':
		l.advance()
		return token{kind: tLParen, text: "(", line: line, col: col}
	case b == ')':
		l.advance()
		return token{kind: tRParen, text: ")", line: line, col: col}
	case b == '{':
		l.advance()
		return token{kind: tLBrace, text: "{", line: line, col: col}
	case b == '}':
		l.advance()
		return token{kind: tRBrace, text: "}", line: line, col: col}
	case b == '=':
		l.advance()
		return token{kind: tEquals, text: "=", line: line, col: col}
	case b == ',':
		l.advance()
		return token{kind: tComma, text: ",", line: line, col: col}
	case b == '-':
		l.advance()
		return token{kind: tMinus, text: "-", line: line, col: col}
	case b == '"':
		return l.lexString(line, col)
	case b >= '0' && b <= '9' || b == '.':
		return l.lexNumber(line, col)
	case isIdentStart(b):
		return l.lexIdent(line, col)
	default:
		l.advance()
		return token{kind: tError, text: string(b), line: line, col: col}
	}
}

func (l *lexer) lexString(line, col int) token {
	l.advance() // opening quote
	start := l.pos
	for l.pos < len(l.src) && l.peekByte() != '"' {
		l.advance()
	}
	text := string(l.src[start:l.pos])
	if l.pos >= len(l.src) {
		return token{kind: tError, text: text, line: line, col: col}
	}
	l.advance() // closing quote
	return token{kind: tString, text: text, line: line, col: col}
}

func (l *lexer) lexNumber(line, col int) token {
	start := l.pos
	for l.pos < len(l.src) && (isDigit(l.peekByte()) || l.peekByte() == '.') {
		l.advance()
	}
	text := string(l.src[start:l.pos])
	v, err := strconv.ParseFloat(text, 32)
	if err != nil {
		return token{kind: tError, text: text, line: line, col: col}
	}
	return token{kind: tNumber, text: text, num: float32(v), line: line, col: col}
}

func (l *lexer) lexIdent(line, col int) token {
	start := l.pos
	for l.pos < len(l.src) && (isIdentStart(l.peekByte()) || isDigit(l.peekByte())) {
		l.advance()
	}
	return token{kind: tIdent, text: string(l.src[start:l.pos]), line: line, col: col}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

var tokenNames = map[tokenKind]string{
	tEOF: "end of file", tError: "invalid character", tLParen: "'('", tRParen: "')'",
	tLBrace: "'{'", tRBrace: "'}'", tEquals: "'='", tComma: "','", tMinus: "'-'",
	tNumber: "number", tString: "string", tIdent: "identifier",
}

func (t token) describe() string {
	if t.text != "" && t.kind != tEOF {
		return t.text
	}
	return tokenNames[t.kind]
}
