/*
Package parser reads VOLT project sources and produces a rule tree
(package `volt/ast`).

Only the glyph definition part of VOLT is understood: glyph definitions,
glyph groups, attachment points, ligature carets, mark attachment classes
and mark glyph sets. Input may be UTF-8 or, with a byte order mark, UTF-16.
*/
package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/fontvolt/core"
	"github.com/npillmayer/fontvolt/volt"
	"github.com/npillmayer/fontvolt/volt/ast"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// tracer writes to trace with key 'fontvolt.volt'
func tracer() tracing.Trace {
	return tracing.Select("fontvolt.volt")
}

// Parse reads a VOLT source from r. filename is used for error locations
// and may be empty.
func Parse(r io.Reader, filename string) (*ast.File, error) {
	dec := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	text, err := io.ReadAll(dec)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot read VOLT source %s", filename)
	}
	return ParseString(string(text), filename)
}

// ParseString parses a VOLT source held in a string.
func ParseString(text, filename string) (*ast.File, error) {
	tokens, err := newLexer(text, filename).tokenize()
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	f, err := p.parseFile(filename)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("parsed %d VOLT statements from %s", len(f.Statements), filename)
	return f, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) parseFile(filename string) (*ast.File, error) {
	f := &ast.File{Name: filename}
	for {
		tok := p.peek()
		if tok.typ == tokenEOF {
			return f, nil
		}
		if tok.typ != tokenKeyword {
			return nil, p.errorf(tok, "expected statement, found %s", tok)
		}
		var stmt ast.Statement
		var err error
		switch tok.value {
		case "END":
			p.advance()
			if t := p.peek(); t.typ != tokenEOF {
				return nil, p.errorf(t, "unexpected %s after END", t)
			}
			return f, nil
		case "DEF_GLYPH":
			stmt, err = p.parseGlyph()
		case "DEF_GROUP":
			stmt, err = p.parseGroup()
		case "DEF_ATTACH":
			stmt, err = p.parseAttach()
		case "DEF_LIGCARET":
			stmt, err = p.parseLigCaret()
		case "DEF_MARK_ATTACH_CLASS":
			stmt, err = p.parseMarkAttachClass()
		case "DEF_MARK_GLYPH_SET":
			stmt, err = p.parseMarkGlyphSet()
		default:
			return nil, p.errorf(tok, "unknown statement %s", tok.value)
		}
		if err != nil {
			return nil, err
		}
		f.Statements = append(f.Statements, stmt)
	}
}

// DEF_GLYPH "A" ID 34 [UNICODE 65 | UNICODEVALUES "U+0041,U+00C0"] [TYPE BASE] [COMPONENTS 2] END_GLYPH
func (p *parser) parseGlyph() (*ast.GlyphDefinition, error) {
	start := p.advance()
	def := &ast.GlyphDefinition{Location: start.loc}
	var err error
	if def.Name, err = p.expectString(); err != nil {
		return nil, err
	}
	if err = p.expectKeyword("ID"); err != nil {
		return nil, err
	}
	if def.ID, err = p.expectNonNegative(); err != nil {
		return nil, err
	}
	if p.acceptKeyword("UNICODE") {
		u, err := p.expectNonNegative()
		if err != nil {
			return nil, err
		}
		def.Unicode = []rune{rune(u)}
	} else if p.acceptKeyword("UNICODEVALUES") {
		tok := p.peek()
		values, err := p.expectString()
		if err != nil {
			return nil, err
		}
		if def.Unicode, err = parseUnicodeValues(values); err != nil {
			return nil, p.errorf(tok, "%s", err.Error())
		}
	}
	if p.acceptKeyword("TYPE") {
		tok := p.advance()
		switch tok.value {
		case "BASE":
			def.Type = ast.BaseType
		case "LIGATURE":
			def.Type = ast.LigatureType
		case "MARK":
			def.Type = ast.MarkType
		case "COMPONENT":
			def.Type = ast.ComponentType
		default:
			return nil, p.errorf(tok, "unknown glyph type %s", tok)
		}
	}
	if p.acceptKeyword("COMPONENTS") {
		if def.Components, err = p.expectNonNegative(); err != nil {
			return nil, err
		}
	}
	return def, p.expectKeyword("END_GLYPH")
}

// DEF_GROUP "marks" ENUM … END_ENUM END_GROUP
func (p *parser) parseGroup() (*ast.GroupDefinition, error) {
	start := p.advance()
	def := &ast.GroupDefinition{Location: start.loc}
	var err error
	if def.Name, err = p.expectString(); err != nil {
		return nil, err
	}
	tok := p.peek()
	if err = p.expectKeyword("ENUM"); err != nil {
		return nil, err
	}
	if def.Enum, err = p.parseEnumBody(tok); err != nil {
		return nil, err
	}
	return def, p.expectKeyword("END_GROUP")
}

// DEF_ATTACH "A" POINTS 3 7 END_ATTACH
func (p *parser) parseAttach() (*ast.AttachDefinition, error) {
	start := p.advance()
	def := &ast.AttachDefinition{Location: start.loc}
	var err error
	if def.Glyph, err = p.expectString(); err != nil {
		return nil, err
	}
	if err = p.expectKeyword("POINTS"); err != nil {
		return nil, err
	}
	if def.Points, err = p.parseInts(true); err != nil {
		return nil, err
	}
	return def, p.expectKeyword("END_ATTACH")
}

// DEF_LIGCARET "f_f_i" [COORDS 300 600] [POINTS 3 7] END_LIGCARET
func (p *parser) parseLigCaret() (*ast.LigCaretDefinition, error) {
	start := p.advance()
	def := &ast.LigCaretDefinition{Location: start.loc}
	var err error
	if def.Glyph, err = p.expectString(); err != nil {
		return nil, err
	}
	clauses := 0
	if p.acceptKeyword("COORDS") {
		if def.Coords, err = p.parseInts(false); err != nil {
			return nil, err
		}
		clauses++
	}
	if p.acceptKeyword("POINTS") {
		if def.Points, err = p.parseInts(true); err != nil {
			return nil, err
		}
		clauses++
	}
	if clauses == 0 {
		return nil, p.errorf(p.peek(), "ligature caret for %q needs COORDS or POINTS", def.Glyph)
	}
	return def, p.expectKeyword("END_LIGCARET")
}

// DEF_MARK_ATTACH_CLASS 4 … END_MARK_ATTACH_CLASS
func (p *parser) parseMarkAttachClass() (*ast.MarkAttachClassDefinition, error) {
	start := p.advance()
	def := &ast.MarkAttachClassDefinition{Location: start.loc}
	tok := p.peek()
	var err error
	if def.Class, err = p.expectNonNegative(); err != nil {
		return nil, err
	}
	if def.Class == 0 {
		return nil, p.errorf(tok, "mark attachment class must be positive")
	}
	if def.Glyphs, err = p.parseSelectors("END_MARK_ATTACH_CLASS"); err != nil {
		return nil, err
	}
	return def, nil
}

// DEF_MARK_GLYPH_SET 0 … END_MARK_GLYPH_SET
func (p *parser) parseMarkGlyphSet() (*ast.MarkGlyphSetDefinition, error) {
	start := p.advance()
	def := &ast.MarkGlyphSetDefinition{Location: start.loc}
	var err error
	if def.ID, err = p.expectNonNegative(); err != nil {
		return nil, err
	}
	if def.Glyphs, err = p.parseSelectors("END_MARK_GLYPH_SET"); err != nil {
		return nil, err
	}
	return def, nil
}

// --- Selectors -------------------------------------------------------------

// parseSelectors reads selectors up to and including the keyword end.
func (p *parser) parseSelectors(end string) ([]ast.Selector, error) {
	var sels []ast.Selector
	for {
		if p.acceptKeyword(end) {
			return sels, nil
		}
		sel, err := p.parseSelector()
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)
	}
}

func (p *parser) parseSelector() (ast.Selector, error) {
	tok := p.advance()
	if tok.typ != tokenKeyword {
		return nil, p.errorf(tok, "expected GLYPH, GROUP or ENUM, found %s", tok)
	}
	switch tok.value {
	case "GLYPH":
		name, err := p.expectString()
		if err != nil {
			return nil, err
		}
		return &ast.GlyphName{Location: tok.loc, Name: name}, nil
	case "GROUP":
		name, err := p.expectString()
		if err != nil {
			return nil, err
		}
		return &ast.GroupName{Location: tok.loc, Name: name}, nil
	case "ENUM":
		enum, err := p.parseEnumBody(tok)
		if err != nil {
			return nil, err
		}
		return enum, nil
	}
	return nil, p.errorf(tok, "expected GLYPH, GROUP or ENUM, found %s", tok)
}

// parseEnumBody reads the items of an enumeration after its ENUM keyword.
func (p *parser) parseEnumBody(start token) (*ast.Enum, error) {
	items, err := p.parseSelectors("END_ENUM")
	if err != nil {
		return nil, err
	}
	return &ast.Enum{Location: start.loc, Items: items}, nil
}

// --- Helpers ---------------------------------------------------------------

// parseInts reads a non-empty list of integers.
func (p *parser) parseInts(nonNegative bool) ([]int, error) {
	var ns []int
	for p.peek().typ == tokenInt {
		tok := p.advance()
		n, err := strconv.Atoi(tok.value)
		if err != nil {
			return nil, p.errorf(tok, "malformed integer %s", tok.value)
		}
		if nonNegative && n < 0 {
			return nil, p.errorf(tok, "expected non-negative integer, found %d", n)
		}
		ns = append(ns, n)
	}
	if len(ns) == 0 {
		return nil, p.errorf(p.peek(), "expected integer, found %s", p.peek())
	}
	return ns, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

// advance returns the current token and moves on. It does not move beyond EOF.
func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	if tok.typ != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) acceptKeyword(kw string) bool {
	if tok := p.peek(); tok.typ == tokenKeyword && tok.value == kw {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expectKeyword(kw string) error {
	if !p.acceptKeyword(kw) {
		return p.errorf(p.peek(), "expected %s, found %s", kw, p.peek())
	}
	return nil
}

func (p *parser) expectString() (string, error) {
	tok := p.peek()
	if tok.typ != tokenString {
		return "", p.errorf(tok, "expected string, found %s", tok)
	}
	p.pos++
	return tok.value, nil
}

func (p *parser) expectNonNegative() (int, error) {
	tok := p.peek()
	if tok.typ != tokenInt {
		return 0, p.errorf(tok, "expected integer, found %s", tok)
	}
	n, err := strconv.Atoi(tok.value)
	if err != nil || n < 0 {
		return 0, p.errorf(tok, "expected non-negative integer, found %s", tok.value)
	}
	p.pos++
	return n, nil
}

func (p *parser) errorf(tok token, format string, v ...interface{}) error {
	return &volt.SyntaxError{Msg: fmt.Sprintf(format, v...), Location: tok.loc}
}

// parseUnicodeValues reads a list like "U+0041,U+00C0".
func parseUnicodeValues(s string) ([]rune, error) {
	var runes []rune
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if !strings.HasPrefix(v, "U+") {
			return nil, fmt.Errorf("malformed Unicode value %q", v)
		}
		n, err := strconv.ParseUint(v[2:], 16, 32)
		if err != nil {
			return nil, fmt.Errorf("malformed Unicode value %q", v)
		}
		runes = append(runes, rune(n))
	}
	return runes, nil
}
