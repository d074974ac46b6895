package parser

import "github.com/Jayk56/dslyrics/pkg/token"

// The parse tree mirrors the grammar one-to-one. It is purely syntactic:
// vocabulary checks and value typing happen in Lower, which turns a Sheet
// into a song.Song.

// Sheet is the root of the parse tree: one lyric sheet.
type Sheet struct {
	Metadata []*MetaEntry
	Sections []*Section
	Span     token.Span
}

// MetaEntry is one "key: value" line from the metadata block.
type MetaEntry struct {
	Key   token.Token // IDENT
	Value token.Token // STRING or TEXT
	Span  token.Span
}

// Section is a section header and its lyric lines.
type Section struct {
	Keyword token.Token  // one of the six section keyword tokens
	Index   *token.Token // NUMBER between brackets, nil when unnumbered
	Attrs   []*Attr
	Lines   []*Line
	Span    token.Span
}

// Line is one lyric line with its optional attribute list.
type Line struct {
	Text  token.Token // TEXT
	Attrs []*Attr
	Span  token.Span
}

// Attr is one "key: value" pair inside a { } attribute list. Values is a
// comma-separated list; chord annotations are the only multi-valued case.
type Attr struct {
	Key    token.Token // IDENT
	Values []*ValueItem
	Span   token.Span
}

// ValueItem is one attribute value. Parts holds the colon-joined atoms:
// a plain value has one part, a timing pair has two.
type ValueItem struct {
	Parts []token.Token
}
