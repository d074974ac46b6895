// Package token defines the token types for lyric sheet parsing.
//
// The grammar is line-oriented: NEWLINE is a real token, free lyric text is a
// single TEXT token, and the six section keywords are only recognized at the
// start of a line.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL
	NEWLINE

	// Literals
	IDENT  // metadata/attribute keys and bare attribute values
	TEXT   // free lyric text or a bare metadata value running to end of line
	NUMBER // 120, 3.5
	STRING // "Validation Blues"

	// Delimiters
	COLON    // :
	COMMA    // ,
	LBRACKET // [
	RBRACKET // ]
	LBRACE   // {
	RBRACE   // }

	// Section keywords (uppercase, line-initial only)
	VERSE
	CHORUS
	BRIDGE
	PRECHORUS // PRE-CHORUS
	OUTRO
	INTRO
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",
	NEWLINE: "NEWLINE",

	IDENT:  "IDENT",
	TEXT:   "TEXT",
	NUMBER: "NUMBER",
	STRING: "STRING",

	COLON:    ":",
	COMMA:    ",",
	LBRACKET: "[",
	RBRACKET: "]",
	LBRACE:   "{",
	RBRACE:   "}",

	VERSE:     "VERSE",
	CHORUS:    "CHORUS",
	BRIDGE:    "BRIDGE",
	PRECHORUS: "PRE-CHORUS",
	OUTRO:     "OUTRO",
	INTRO:     "INTRO",
}

// keywords maps section keyword literals to their token types.
// Keywords are case-sensitive: only the uppercase form marks a section.
var keywords = map[string]TokenType{
	"VERSE":      VERSE,
	"CHORUS":     CHORUS,
	"BRIDGE":     BRIDGE,
	"PRE-CHORUS": PRECHORUS,
	"OUTRO":      OUTRO,
	"INTRO":      INTRO,
}

// LookupKeyword returns the section keyword token type for the literal,
// or IDENT if the literal is not a section keyword.
func LookupKeyword(literal string) TokenType {
	if t, ok := keywords[literal]; ok {
		return t
	}
	return IDENT
}

// IsSectionKeyword returns true if the token type is one of the six
// section keywords.
func (t TokenType) IsSectionKeyword() bool {
	switch t {
	case VERSE, CHORUS, BRIDGE, PRECHORUS, OUTRO, INTRO:
		return true
	default:
		return false
	}
}

// Token represents a lexical token with its position.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, t.Literal, t.Pos.Line, t.Pos.Column)
}
