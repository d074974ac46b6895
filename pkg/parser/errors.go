package parser

import (
	"fmt"

	"github.com/Jayk56/dslyrics/pkg/token"
)

// ParseError represents a parsing error with position information.
// The first error halts the parse; there is no recovery.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedToken    = "unexpected token %s, expected %s"
	ErrUnterminatedString = "unterminated string literal"
	ErrExpectedMetadata   = "expected at least one metadata entry"
	ErrExpectedSection    = "expected at least one section header"
	ErrExpectedMetaValue  = "expected a value after metadata key %q"
	ErrExpectedLineEnd    = "expected end of line, got %s"
	ErrExpectedAttrKey    = "expected an attribute key, got %s"
	ErrExpectedAttrValue  = "expected an attribute value, got %s"
	ErrEmptySection       = "section %s has no lyric lines"
	ErrEmptyLineText      = "lyric line must start with text"

	// Vocabulary and value grammar violations (reported during lowering)
	ErrUnknownMetaKey     = "unknown metadata key %q"
	ErrDuplicateMetaKey   = "duplicate metadata key %q"
	ErrUnknownLineAttr    = "unknown line attribute %q"
	ErrDuplicateLineAttr  = "duplicate line attribute %q"
	ErrDuplicateAttr      = "duplicate attribute %q"
	ErrInvalidRhyme       = "rhyme must be a single uppercase letter, got %q"
	ErrInvalidStress      = "stress pattern may contain only x and /, got %q"
	ErrInvalidChord       = "invalid chord symbol %q"
	ErrInvalidTiming      = "timing must be beats:offset with numeric parts"
	ErrInvalidIndex       = "section index must be a positive integer, got %q"
	ErrIndexNotAllowed    = "section %s does not take an index"
	ErrInvalidNumericMeta = "metadata key %q requires a numeric value, got %q"
	ErrInvalidAttrValue   = "invalid value for attribute %q"
)
