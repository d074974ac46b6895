package parser

import (
	"strings"

	"github.com/Jayk56/dslyrics/pkg/token"
)

// Lexer tokenizes lyric sheet input.
//
// The grammar is line-oriented, so the lexer carries a little state:
// it knows when it sits at the start of a line, whether it has entered
// the body region (everything from the first section header on), and
// whether it is reading the value half of a metadata entry. Free lyric
// text and bare metadata values are emitted as single TEXT tokens.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	lineStart  bool // at the beginning of a line
	inBody     bool // past the first section header
	metaValue  bool // after the colon of a metadata entry
	braceDepth int  // inside a { } attribute list

	err *ParseError // first lex error, if any
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input:     input,
		line:      1,
		col:       0,
		lineStart: true,
	}
	l.readChar()
	return l
}

// Err returns the first lexical error encountered, if any.
func (l *Lexer) Err() *ParseError {
	return l.err
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() token.Token {
	if l.lineStart {
		return l.lexAtLineStart()
	}

	l.skipSpaces()

	if l.ch == '\n' {
		return l.newlineToken()
	}
	if l.ch == 0 {
		return token.Token{Type: token.EOF, Pos: l.currentPos()}
	}
	if l.metaValue {
		return l.lexMetaValue()
	}

	pos := l.currentPos()
	switch l.ch {
	case '[':
		return l.symbol(token.LBRACKET, pos)
	case ']':
		return l.symbol(token.RBRACKET, pos)
	case '{':
		l.braceDepth++
		return l.symbol(token.LBRACE, pos)
	case '}':
		if l.braceDepth > 0 {
			l.braceDepth--
		}
		return l.symbol(token.RBRACE, pos)
	case ':':
		if !l.inBody && l.braceDepth == 0 {
			l.metaValue = true
		}
		return l.symbol(token.COLON, pos)
	case ',':
		return l.symbol(token.COMMA, pos)
	case '"':
		return l.readString(pos)
	default:
		if isDigit(l.ch) {
			return l.readNumber(pos)
		}
		if isAtomChar(l.ch) {
			return l.readAtom(pos)
		}
		return l.illegalToken(pos)
	}
}

// lexAtLineStart classifies the start of a line: blank line, section
// header keyword, metadata key, or free lyric text.
func (l *Lexer) lexAtLineStart() token.Token {
	l.skipSpaces()

	if l.ch == '\n' {
		return l.newlineToken() // blank line, lineStart stays set
	}
	if l.ch == 0 {
		return token.Token{Type: token.EOF, Pos: l.currentPos()}
	}

	l.lineStart = false

	if isWordChar(l.ch) {
		pos := l.currentPos()
		word := l.readWord()
		if t := token.LookupKeyword(word); t != token.IDENT && l.atHeaderBoundary() {
			l.inBody = true
			return token.Token{Type: t, Literal: word, Pos: pos}
		}
		if !l.inBody {
			// Metadata region: the word is a metadata key.
			return token.Token{Type: token.IDENT, Literal: word, Pos: pos}
		}
		return l.readTextFrom(pos, word)
	}

	if l.inBody && l.ch != '{' {
		pos := l.currentPos()
		return l.readTextFrom(pos, "")
	}

	// Metadata region garbage or a brace-led body line. Hand the raw
	// token to the parser, which reports the mismatch.
	pos := l.currentPos()
	switch l.ch {
	case '{':
		l.braceDepth++
		return l.symbol(token.LBRACE, pos)
	case '"':
		return l.readString(pos)
	default:
		if isDigit(l.ch) {
			return l.readNumber(pos)
		}
		if isAtomChar(l.ch) {
			return l.readAtom(pos)
		}
		return l.illegalToken(pos)
	}
}

// atHeaderBoundary reports whether the character after a section keyword
// is one that may legally follow it. Anything else turns the word back
// into lyric text or a metadata key.
func (l *Lexer) atHeaderBoundary() bool {
	switch l.ch {
	case '[', '{', ' ', '\t', '\n', 0:
		return true
	default:
		return false
	}
}

// newlineToken emits a NEWLINE and resets per-line state.
func (l *Lexer) newlineToken() token.Token {
	tok := token.Token{Type: token.NEWLINE, Literal: "\n", Pos: l.currentPos()}
	l.readChar()
	l.lineStart = true
	l.metaValue = false
	l.braceDepth = 0
	return tok
}

// symbol emits a single-character token.
func (l *Lexer) symbol(t token.TokenType, pos token.Position) token.Token {
	lit := string(l.ch)
	l.readChar()
	return token.Token{Type: t, Literal: lit, Pos: pos}
}

// lexMetaValue reads the value half of a metadata entry: a quoted string
// or bare text running to the end of the line.
func (l *Lexer) lexMetaValue() token.Token {
	l.metaValue = false
	if l.ch == '"' {
		return l.readString(l.currentPos())
	}
	pos := l.currentPos()
	start := l.pos
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	lit := strings.TrimRight(l.input[start:l.pos], " \t\r")
	return token.Token{Type: token.TEXT, Literal: lit, Pos: pos}
}

// readTextFrom reads free lyric text until an attribute list or end of
// line, continuing from an already-consumed prefix.
func (l *Lexer) readTextFrom(pos token.Position, prefix string) token.Token {
	start := l.pos
	for l.ch != '{' && l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	lit := strings.TrimRight(prefix+l.input[start:l.pos], " \t\r")
	return token.Token{Type: token.TEXT, Literal: lit, Pos: pos}
}

// readWord reads a run of word characters (letters, digits, '_', '-').
func (l *Lexer) readWord() string {
	start := l.pos
	for isWordChar(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readAtom reads a run of atom characters: anything except structural
// delimiters and whitespace. Chord symbols and stress patterns are atoms.
func (l *Lexer) readAtom(pos token.Position) token.Token {
	start := l.pos
	for isAtomChar(l.ch) {
		l.readChar()
	}
	return token.Token{Type: token.IDENT, Literal: l.input[start:l.pos], Pos: pos}
}

// readNumber reads an integer or decimal literal.
func (l *Lexer) readNumber(pos token.Position) token.Token {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return token.Token{Type: token.NUMBER, Literal: l.input[start:l.pos], Pos: pos}
}

// readString reads a double-quoted string. Strings cannot span lines and
// have no escape sequences; the closing quote ends the literal.
func (l *Lexer) readString(pos token.Position) token.Token {
	l.readChar() // consume opening quote
	start := l.pos
	for l.ch != '"' && l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	if l.ch != '"' {
		if l.err == nil {
			l.err = &ParseError{Pos: pos, Message: ErrUnterminatedString}
		}
		return token.Token{Type: token.ILLEGAL, Literal: l.input[start:l.pos], Pos: pos}
	}
	lit := l.input[start:l.pos]
	l.readChar() // consume closing quote
	return token.Token{Type: token.STRING, Literal: lit, Pos: pos}
}

// illegalToken emits an ILLEGAL token for an unexpected character.
func (l *Lexer) illegalToken(pos token.Position) token.Token {
	lit := string(l.ch)
	l.readChar()
	return token.Token{Type: token.ILLEGAL, Literal: lit, Pos: pos}
}

// skipSpaces skips spaces and tabs, but never newlines.
func (l *Lexer) skipSpaces() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isWordChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_' || ch == '-'
}

// isAtomChar reports whether ch may appear in an attribute atom such as
// a chord symbol (F#m7/C#) or stress pattern (x/x/).
func isAtomChar(ch byte) bool {
	switch ch {
	case 0, '\n', '\r', ' ', '\t', '{', '}', '[', ']', ':', ',', '"':
		return false
	default:
		return true
	}
}
