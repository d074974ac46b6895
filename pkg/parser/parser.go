package parser

import (
	"fmt"

	"github.com/Jayk56/dslyrics/pkg/song"
	"github.com/Jayk56/dslyrics/pkg/token"
)

// Parser builds a Sheet parse tree from a token stream. It keeps two
// tokens of lookahead so attribute lists can tell a further value
// apart from the next key (the comma in "chord:C,F" versus the comma
// in "chord:C, rhyme:A").
type Parser struct {
	lexer *Lexer

	token token.Token
	peek  token.Token
	peek2 token.Token

	errors []error
}

// NewParser creates a parser over the given source text.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	// Prime token, peek, and peek2.
	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses the source into a Sheet. The first error encountered
// stops the parse and is returned as a *ParseError.
func Parse(input string) (*Sheet, error) {
	p := NewParser(input)
	sheet := p.parseSheet()
	if err := p.lexer.Err(); err != nil {
		return nil, err
	}
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return sheet, nil
}

// ParseSong parses and lowers the source into a song ready for
// analysis. Vocabulary and value violations surface as *ParseError
// just like grammar violations do.
func ParseSong(input string) (*song.Song, error) {
	sheet, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return Lower(sheet)
}

func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.peek2
	p.peek2 = p.lexer.NextToken()
}

func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peek.Type == t
}

func (p *Parser) checkPeek2(t token.TokenType) bool {
	return p.peek2.Type == t
}

// expect consumes the current token when it matches, otherwise records
// an error and leaves the token in place.
func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), t))
	return false
}

// expectLineEnd consumes a newline or accepts end of input.
func (p *Parser) expectLineEnd() bool {
	if p.check(token.NEWLINE) {
		p.nextToken()
		return true
	}
	if p.check(token.EOF) {
		return true
	}
	p.addError(fmt.Sprintf(ErrExpectedLineEnd, describe(p.token)))
	return false
}

func (p *Parser) skipNewlines() {
	for p.check(token.NEWLINE) {
		p.nextToken()
	}
}

func (p *Parser) addError(msg string) {
	p.addErrorAt(p.token.Pos, msg)
}

func (p *Parser) addErrorAt(pos token.Position, msg string) {
	p.errors = append(p.errors, &ParseError{Pos: pos, Message: msg})
}

// describe renders a token for error messages, preferring the text the
// author actually wrote over the token type name.
func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.NEWLINE:
		return "end of line"
	case token.ILLEGAL:
		return fmt.Sprintf("%q", tok.Literal)
	default:
		return fmt.Sprintf("%s %q", tok.Type, tok.Literal)
	}
}

// parseSheet parses the whole source: a metadata block followed by one
// or more sections.
func (p *Parser) parseSheet() *Sheet {
	sheet := &Sheet{}
	start := p.token.Pos

	p.skipNewlines()

	for p.check(token.IDENT) {
		entry := p.parseMetaEntry()
		if entry == nil {
			return sheet
		}
		sheet.Metadata = append(sheet.Metadata, entry)
		p.skipNewlines()
	}
	if len(sheet.Metadata) == 0 {
		p.addError(ErrExpectedMetadata)
		return sheet
	}

	for p.token.Type.IsSectionKeyword() {
		sec := p.parseSection()
		if sec == nil {
			return sheet
		}
		sheet.Sections = append(sheet.Sections, sec)
		p.skipNewlines()
	}
	if len(sheet.Sections) == 0 {
		p.addError(ErrExpectedSection)
		return sheet
	}

	if !p.check(token.EOF) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "a section header or end of input"))
		return sheet
	}

	sheet.Span = token.Span{Start: start, End: p.token.Pos}
	return sheet
}

// parseMetaEntry parses one "key:value" metadata line. The value is a
// quoted string or bare text running to the end of the line.
func (p *Parser) parseMetaEntry() *MetaEntry {
	key := p.token
	p.nextToken()
	if !p.expect(token.COLON) {
		return nil
	}

	var value token.Token
	switch p.token.Type {
	case token.STRING, token.TEXT:
		value = p.token
		p.nextToken()
	default:
		p.addError(fmt.Sprintf(ErrExpectedMetaValue, key.Literal))
		return nil
	}

	if !p.expectLineEnd() {
		return nil
	}
	return &MetaEntry{
		Key:   key,
		Value: value,
		Span:  token.Span{Start: key.Pos, End: value.Pos},
	}
}

// parseSection parses a section header plus its lyric lines. The
// header keyword may be followed by an optional [index] and an
// optional {attrs} list, then a newline.
func (p *Parser) parseSection() *Section {
	kw := p.token
	sec := &Section{Keyword: kw}
	p.nextToken()

	if p.check(token.LBRACKET) {
		p.nextToken()
		if !p.check(token.NUMBER) {
			p.addError(fmt.Sprintf(ErrInvalidIndex, p.token.Literal))
			return nil
		}
		num := p.token
		sec.Index = &num
		p.nextToken()
		if !p.expect(token.RBRACKET) {
			return nil
		}
	}

	if p.check(token.LBRACE) {
		attrs := p.parseAttrList()
		if attrs == nil {
			return nil
		}
		sec.Attrs = attrs
	}

	if !p.expectLineEnd() {
		return nil
	}
	p.skipNewlines()

	for {
		if p.check(token.TEXT) {
			line := p.parseLine()
			if line == nil {
				return nil
			}
			sec.Lines = append(sec.Lines, line)
			p.skipNewlines()
			continue
		}
		if p.check(token.LBRACE) {
			// An attribute list with no lyric text in front of it.
			p.addError(ErrEmptyLineText)
			return nil
		}
		break
	}

	if len(sec.Lines) == 0 {
		p.addErrorAt(kw.Pos, fmt.Sprintf(ErrEmptySection, kw.Literal))
		return nil
	}

	last := sec.Lines[len(sec.Lines)-1]
	sec.Span = token.Span{Start: kw.Pos, End: last.Span.End}
	return sec
}

// parseLine parses one lyric line: text followed by an optional
// attribute list in braces.
func (p *Parser) parseLine() *Line {
	text := p.token
	line := &Line{Text: text}
	end := text.Pos
	p.nextToken()

	if p.check(token.LBRACE) {
		attrs := p.parseAttrList()
		if attrs == nil {
			return nil
		}
		line.Attrs = attrs
		if n := len(attrs); n > 0 {
			end = attrs[n-1].Span.End
		}
	}

	if !p.expectLineEnd() {
		return nil
	}
	line.Span = token.Span{Start: text.Pos, End: end}
	return line
}

// parseAttrList parses "{key:value, key:value}". The opening brace is
// the current token on entry; the closing brace is consumed.
func (p *Parser) parseAttrList() []*Attr {
	p.nextToken() // consume {

	var attrs []*Attr
	for {
		attr := p.parseAttr()
		if attr == nil {
			return nil
		}
		attrs = append(attrs, attr)

		if p.check(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expect(token.RBRACE) {
		return nil
	}
	return attrs
}

// parseAttr parses one "key:value" attribute. A value may itself be a
// comma separated list (chord sequences), so a comma only ends the
// attribute when the token after it looks like a new key.
func (p *Parser) parseAttr() *Attr {
	if !p.check(token.IDENT) {
		p.addError(fmt.Sprintf(ErrExpectedAttrKey, describe(p.token)))
		return nil
	}
	key := p.token
	p.nextToken()
	if !p.expect(token.COLON) {
		return nil
	}

	attr := &Attr{Key: key}
	end := key.Pos
	for {
		item := p.parseValueItem()
		if item == nil {
			return nil
		}
		attr.Values = append(attr.Values, item)
		if n := len(item.Parts); n > 0 {
			end = item.Parts[n-1].Pos
		}

		if p.check(token.COMMA) && !(p.checkPeek(token.IDENT) && p.checkPeek2(token.COLON)) {
			p.nextToken()
			continue
		}
		break
	}

	attr.Span = token.Span{Start: key.Pos, End: end}
	return attr
}

// parseValueItem parses a single attribute value. Colon joined parts
// stay together in one item, which is how "timing:3:0.5" carries its
// beats and offset.
func (p *Parser) parseValueItem() *ValueItem {
	item := &ValueItem{}
	for {
		switch p.token.Type {
		case token.IDENT, token.NUMBER, token.STRING:
			item.Parts = append(item.Parts, p.token)
			p.nextToken()
		default:
			p.addError(fmt.Sprintf(ErrExpectedAttrValue, describe(p.token)))
			return nil
		}

		if p.check(token.COLON) {
			p.nextToken()
			continue
		}
		break
	}
	return item
}
