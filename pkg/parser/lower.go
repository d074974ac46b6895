package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Jayk56/dslyrics/pkg/song"
	"github.com/Jayk56/dslyrics/pkg/token"
)

// Lower converts a parse tree into the analysis model. The grammar
// only constrains shape; this pass enforces the closed vocabularies
// and per-attribute value rules, so a Sheet that lowers cleanly is a
// Song the rule engine can trust.
func Lower(sheet *Sheet) (*song.Song, error) {
	s := &song.Song{
		Metadata: make(map[string]song.AttrValue, len(sheet.Metadata)),
		Span:     sheet.Span,
	}

	for _, entry := range sheet.Metadata {
		key := entry.Key.Literal
		if !song.IsMetaKey(key) {
			return nil, errAt(entry.Key.Pos, ErrUnknownMetaKey, key)
		}
		if _, dup := s.Metadata[key]; dup {
			return nil, errAt(entry.Key.Pos, ErrDuplicateMetaKey, key)
		}

		raw := entry.Value.Literal
		if song.IsNumericMetaKey(key) {
			num, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, errAt(entry.Value.Pos, ErrInvalidNumericMeta, key, raw)
			}
			s.Metadata[key] = song.NumberValue(num)
		} else {
			s.Metadata[key] = song.StringValue(raw)
		}
		s.MetaOrder = append(s.MetaOrder, key)
	}

	for _, sec := range sheet.Sections {
		lowered, err := lowerSection(sec)
		if err != nil {
			return nil, err
		}
		s.Sections = append(s.Sections, lowered)
	}

	return s, nil
}

func lowerSection(sec *Section) (*song.Section, error) {
	kind, ok := song.ParseSectionKind(sec.Keyword.Literal)
	if !ok {
		return nil, errAt(sec.Keyword.Pos, ErrExpectedSection)
	}

	out := &song.Section{Kind: kind, Span: sec.Span}

	if sec.Index != nil {
		if kind != song.Verse && kind != song.Chorus {
			return nil, errAt(sec.Index.Pos, ErrIndexNotAllowed, sec.Keyword.Literal)
		}
		n, err := strconv.Atoi(sec.Index.Literal)
		if err != nil || n < 1 {
			return nil, errAt(sec.Index.Pos, ErrInvalidIndex, sec.Index.Literal)
		}
		out.Index = n
	}

	if len(sec.Attrs) > 0 {
		attrs, err := lowerSectionAttrs(sec.Attrs)
		if err != nil {
			return nil, err
		}
		out.Attrs = attrs
	}

	for _, line := range sec.Lines {
		lowered, err := lowerLine(line)
		if err != nil {
			return nil, err
		}
		out.Lines = append(out.Lines, lowered)
	}

	return out, nil
}

// lowerSectionAttrs converts a section's attribute list. Section
// attributes are open vocabulary; each takes a single scalar value.
func lowerSectionAttrs(attrs []*Attr) (map[string]song.AttrValue, error) {
	out := make(map[string]song.AttrValue, len(attrs))
	for _, attr := range attrs {
		key := attr.Key.Literal
		if _, dup := out[key]; dup {
			return nil, errAt(attr.Key.Pos, ErrDuplicateAttr, key)
		}
		if len(attr.Values) != 1 || len(attr.Values[0].Parts) != 1 {
			return nil, errAt(attr.Key.Pos, ErrInvalidAttrValue, key)
		}

		part := attr.Values[0].Parts[0]
		switch part.Type {
		case token.NUMBER:
			num, err := strconv.ParseFloat(part.Literal, 64)
			if err != nil {
				return nil, errAt(part.Pos, ErrInvalidAttrValue, key)
			}
			out[key] = song.NumberValue(num)
		case token.IDENT:
			switch part.Literal {
			case "true":
				out[key] = song.BoolValue(true)
			case "false":
				out[key] = song.BoolValue(false)
			default:
				out[key] = song.StringValue(part.Literal)
			}
		default:
			out[key] = song.StringValue(part.Literal)
		}
	}
	return out, nil
}

func lowerLine(line *Line) (song.Line, error) {
	out := song.Line{Text: line.Text.Literal, Span: line.Span}

	seen := make(map[string]bool, len(line.Attrs))
	for _, attr := range line.Attrs {
		key := attr.Key.Literal
		if !song.IsLineAttrKey(key) {
			return song.Line{}, errAt(attr.Key.Pos, ErrUnknownLineAttr, key)
		}
		if seen[key] {
			return song.Line{}, errAt(attr.Key.Pos, ErrDuplicateLineAttr, key)
		}
		seen[key] = true

		switch key {
		case "rhyme":
			v, pos, ok := singleValue(attr)
			if !ok || !song.IsRhymeLetter(v) {
				return song.Line{}, errAt(pos, ErrInvalidRhyme, attrText(attr))
			}
			out.Rhyme = v
		case "stress":
			v, pos, ok := singleValue(attr)
			if !ok || !song.IsStressPattern(v) {
				return song.Line{}, errAt(pos, ErrInvalidStress, attrText(attr))
			}
			out.Stress = v
		case "chord":
			chords, err := lowerChords(attr)
			if err != nil {
				return song.Line{}, err
			}
			out.Chords = chords
		case "timing":
			timing, err := lowerTiming(attr)
			if err != nil {
				return song.Line{}, err
			}
			out.Timing = timing
		}
	}

	return out, nil
}

// lowerChords converts a chord attribute. Each value in the comma
// separated sequence must be a single well-formed chord symbol.
func lowerChords(attr *Attr) ([]song.Chord, error) {
	chords := make([]song.Chord, 0, len(attr.Values))
	for _, item := range attr.Values {
		if len(item.Parts) != 1 {
			return nil, errAt(itemPos(item, attr), ErrInvalidChord, itemText(item))
		}
		part := item.Parts[0]
		chord, ok := song.ParseChord(part.Literal)
		if !ok {
			return nil, errAt(part.Pos, ErrInvalidChord, part.Literal)
		}
		chords = append(chords, chord)
	}
	return chords, nil
}

// lowerTiming converts a timing attribute of the form beats:offset.
func lowerTiming(attr *Attr) (*song.Timing, error) {
	if len(attr.Values) != 1 || len(attr.Values[0].Parts) != 2 {
		return nil, errAt(attr.Key.Pos, ErrInvalidTiming)
	}

	parts := attr.Values[0].Parts
	nums := make([]float64, 2)
	for i, part := range parts {
		if part.Type != token.NUMBER {
			return nil, errAt(part.Pos, ErrInvalidTiming)
		}
		num, err := strconv.ParseFloat(part.Literal, 64)
		if err != nil {
			return nil, errAt(part.Pos, ErrInvalidTiming)
		}
		nums[i] = num
	}

	return &song.Timing{Beats: nums[0], Offset: nums[1]}, nil
}

// singleValue unwraps an attribute expected to carry exactly one
// single-part value, returning the literal and its position.
func singleValue(attr *Attr) (string, token.Position, bool) {
	if len(attr.Values) != 1 || len(attr.Values[0].Parts) != 1 {
		return "", attr.Key.Pos, false
	}
	part := attr.Values[0].Parts[0]
	return part.Literal, part.Pos, true
}

// attrText reassembles an attribute's raw value text for error messages.
func attrText(attr *Attr) string {
	items := make([]string, 0, len(attr.Values))
	for _, item := range attr.Values {
		items = append(items, itemText(item))
	}
	return strings.Join(items, ",")
}

func itemText(item *ValueItem) string {
	parts := make([]string, 0, len(item.Parts))
	for _, part := range item.Parts {
		parts = append(parts, part.Literal)
	}
	return strings.Join(parts, ":")
}

func itemPos(item *ValueItem, attr *Attr) token.Position {
	if len(item.Parts) > 0 {
		return item.Parts[0].Pos
	}
	return attr.Key.Pos
}

func errAt(pos token.Position, format string, args ...any) error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &ParseError{Pos: pos, Message: msg}
}
