// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package configfile

import (
	"fmt"
	"strings"
)

// Parse parses the content of an AWS config file.
//
// See the Syntax section in the package documentation for the format
// recognized by Parse. Parse either returns a complete file or an error; it
// never returns a partially parsed file.
func Parse(text string) (*File, error) {
	p := &parser{src: text}
	return p.file()
}

// ParseCredentials parses the content of an AWS credentials file. Section
// headers in a credentials file hold only a profile name, like "[dev]".
// "[default]" is addressed as the default section, and any other header as
// the profile with that name.
func ParseCredentials(text string) (*File, error) {
	p := &parser{src: text, credentials: true}
	return p.file()
}

// ParseError describes input that does not match the grammar.
type ParseError struct {
	// Line and Column are 1-based. Column counts bytes.
	Line   int
	Column int

	// Expected lists what the parser would have accepted at the position.
	Expected []string

	// Found is the text at the position up to the end of its line, or the
	// line terminator if the position is at one. It is empty at the end of
	// input.
	Found string
}

func (e *ParseError) Error() string {
	found := "end of input"
	if e.Found != "" {
		found = fmt.Sprintf("%q", e.Found)
	}
	return fmt.Sprintf("parse aws config: line %d, column %d: expected %s, found %s",
		e.Line, e.Column, strings.Join(e.Expected, " or "), found)
}

// parser is a recursive descent parser over src. Each rule takes a byte
// offset and returns the offset just past what it matched, plus whether it
// matched at all. Rules never consume input on failure, so alternatives are
// tried by calling the next rule at the same offset.
//
// The parser remembers the furthest offset at which any rule failed and what
// it was looking for there, which is what gets reported if the file as a
// whole does not match.
type parser struct {
	src         string
	credentials bool

	failPos  int
	expected []string
}

func (p *parser) expect(pos int, what string) {
	if pos < p.failPos {
		return
	}
	if pos > p.failPos {
		p.failPos = pos
		p.expected = p.expected[:0]
	}
	for _, e := range p.expected {
		if e == what {
			return
		}
	}
	p.expected = append(p.expected, what)
}

func (p *parser) error() error {
	line := 1 + strings.Count(p.src[:p.failPos], "\n")
	lineStart := strings.LastIndexByte(p.src[:p.failPos], '\n') + 1
	found := p.src[p.failPos:]
	if i := strings.IndexAny(found, "\r\n"); i > 0 {
		found = found[:i]
	} else if i == 0 {
		found = found[:len(detectNewline(found))]
	}
	return &ParseError{
		Line:     line,
		Column:   p.failPos - lineStart + 1,
		Expected: append([]string(nil), p.expected...),
		Found:    found,
	}
}

// file matches: whitespace section* whitespace EOF.
func (p *parser) file() (*File, error) {
	f := &File{
		newline:     detectNewline(p.src),
		credentials: p.credentials,
	}
	pos := p.whitespace(0)
	f.leading = p.src[:pos]
	for {
		sect, end, ok := p.section(pos)
		if !ok {
			break
		}
		f.sections = append(f.sections, sect)
		pos = end
	}
	end := p.whitespace(pos)
	if end < len(p.src) {
		return nil, p.error()
	}
	f.trailing = p.src[pos:end]
	return f, nil
}

// section matches: whitespace header setting*.
func (p *parser) section(pos int) (*Section, int, bool) {
	start := p.whitespace(pos)
	h, end, ok := p.header(start)
	if !ok {
		return nil, pos, false
	}
	sect := &Section{
		leading: p.src[pos:start],
		header:  h,
	}
	for {
		setting, next, ok := p.setting(end)
		if !ok {
			break
		}
		sect.settings = append(sect.settings, setting)
		end = next
	}
	return sect, end, true
}

// header matches a bracketed section header followed by the rest of its line
// and any blank or comment lines after it.
func (p *parser) header(pos int) (header, int, bool) {
	if !strings.HasPrefix(p.src[pos:], "[") {
		p.expect(pos, "'['")
		return header{}, pos, false
	}
	var h header
	var end int
	var ok bool
	if p.credentials {
		h, end, ok = p.profileHeader(pos + 1)
	} else {
		h, end, ok = p.typedHeader(pos + 1)
	}
	if !ok {
		return header{}, pos, false
	}
	trailingStart := end
	end, ok = p.lineEnd(end)
	if !ok {
		return header{}, pos, false
	}
	end = p.whitespace(end)
	h.trailing = p.src[trailingStart:end]
	return h, end, true
}

// typedHeader matches the inside of a config file header and its closing
// bracket: "default]", "type name]", or "type]".
func (p *parser) typedHeader(pos int) (header, int, bool) {
	if strings.HasPrefix(p.src[pos:], "default]") {
		return header{typ: Default}, pos + len("default]"), true
	}
	typ, end, ok := p.ident(pos, "section type")
	if !ok {
		return header{}, pos, false
	}
	h := header{typ: SectionType(typ)}
	if nameStart, ok := p.literal(end, " "); ok {
		if name, nameEnd, ok := p.ident(nameStart, "section name"); ok {
			if closeEnd, ok := p.literal(nameEnd, "]"); ok {
				h.name = name
				return h, closeEnd, true
			}
		}
	}
	end, ok = p.literal(end, "]")
	if !ok {
		return header{}, pos, false
	}
	return h, end, true
}

// profileHeader matches the inside of a credentials file header and its
// closing bracket: "name]".
func (p *parser) profileHeader(pos int) (header, int, bool) {
	name, end, ok := p.ident(pos, "profile name")
	if !ok {
		return header{}, pos, false
	}
	end, ok = p.literal(end, "]")
	if !ok {
		return header{}, pos, false
	}
	if name == string(Default) {
		return header{typ: Default, bare: true}, end, true
	}
	return header{typ: Profile, name: name, bare: true}, end, true
}

// setting matches: whitespace name equal (value line-end | nested-list).
func (p *parser) setting(pos int) (*Setting, int, bool) {
	nameStart := p.whitespace(pos)
	name, end, ok := p.ident(nameStart, "setting name")
	if !ok {
		return nil, pos, false
	}
	s := &Setting{
		leading: p.src[pos:nameStart],
		name:    name,
	}
	s.equal, end, ok = p.equal(end)
	if !ok {
		return nil, pos, false
	}
	if value, valueEnd, ok := p.value(end); ok {
		lineEnd, ok := p.lineEnd(valueEnd)
		if !ok {
			return nil, pos, false
		}
		s.value = value
		s.trailing = p.src[valueEnd:lineEnd]
		return s, lineEnd, true
	}
	s.nested, end, ok = p.nestedList(end)
	if !ok {
		return nil, pos, false
	}
	return s, end, true
}

// nestedList matches the rest of a "name =" line with no value, then any
// number of indented settings. An empty list is permitted.
func (p *parser) nestedList(pos int) (*nestedList, int, bool) {
	end, ok := p.lineEnd(pos)
	if !ok {
		return nil, pos, false
	}
	end = p.whitespace(end)
	list := &nestedList{leading: p.src[pos:end]}
	for {
		item, next, ok := p.nestedSetting(end)
		if !ok {
			break
		}
		list.items = append(list.items, item)
		end = next
	}
	return list, end, true
}

// nestedSetting matches: indent name equal value line-end whitespace.
func (p *parser) nestedSetting(pos int) (*NestedSetting, int, bool) {
	indent, end, ok := p.indent(pos)
	if !ok {
		return nil, pos, false
	}
	item := &NestedSetting{indent: indent}
	item.name, end, ok = p.ident(end, "setting name")
	if !ok {
		return nil, pos, false
	}
	item.equal, end, ok = p.equal(end)
	if !ok {
		return nil, pos, false
	}
	item.value, end, ok = p.value(end)
	if !ok {
		return nil, pos, false
	}
	trailingStart := end
	end, ok = p.lineEnd(end)
	if !ok {
		return nil, pos, false
	}
	end = p.whitespace(end)
	item.trailing = p.src[trailingStart:end]
	return item, end, true
}

// whitespace matches zero or more blank or comment-only lines. The last line
// of the input may be unterminated. It always succeeds.
func (p *parser) whitespace(pos int) int {
	for {
		end, ok := p.lineEnd(pos)
		if !ok || end == pos {
			return pos
		}
		pos = end
	}
}

// lineEnd matches optional horizontal whitespace, an optional comment, and
// a line terminator or the end of input.
func (p *parser) lineEnd(pos int) (int, bool) {
	end := skipSpace(p.src, pos)
	if end < len(p.src) && p.src[end] == '#' {
		end = commentEnd(p.src, end)
	}
	switch {
	case end == len(p.src):
		return end, true
	case p.src[end] == '\n':
		return end + 1, true
	case strings.HasPrefix(p.src[end:], "\r\n"):
		return end + 2, true
	default:
		p.expect(end, "end of line")
		return pos, false
	}
}

func (p *parser) ident(pos int, what string) (string, int, bool) {
	n := identLen(p.src[pos:])
	if n == 0 {
		p.expect(pos, what)
		return "", pos, false
	}
	return p.src[pos : pos+n], pos + n, true
}

func (p *parser) value(pos int) (string, int, bool) {
	end := pos
	for end < len(p.src) && !isValueStop(p.src[end]) {
		end++
	}
	if end == pos {
		p.expect(pos, "value")
		return "", pos, false
	}
	return p.src[pos:end], end, true
}

// equal matches '=' and the horizontal whitespace around it.
func (p *parser) equal(pos int) (string, int, bool) {
	end := skipSpace(p.src, pos)
	if end >= len(p.src) || p.src[end] != '=' {
		p.expect(end, "'='")
		return "", pos, false
	}
	end = skipSpace(p.src, end+1)
	return p.src[pos:end], end, true
}

// indent matches horizontal whitespace that is followed by a letter or digit.
func (p *parser) indent(pos int) (string, int, bool) {
	end := skipSpace(p.src, pos)
	if end == pos || end >= len(p.src) || !isAlnum(p.src[end]) {
		p.expect(pos, "indented setting")
		return "", pos, false
	}
	return p.src[pos:end], end, true
}

func (p *parser) literal(pos int, s string) (int, bool) {
	if !strings.HasPrefix(p.src[pos:], s) {
		p.expect(pos, fmt.Sprintf("%q", s))
		return pos, false
	}
	return pos + len(s), true
}

// commentEnd returns the offset of the line terminator ending the comment
// that starts at pos, or len(s) if the comment runs to the end of input.
func commentEnd(s string, pos int) int {
	i := strings.IndexByte(s[pos:], '\n')
	if i == -1 {
		return len(s)
	}
	end := pos + i
	if s[end-1] == '\r' {
		end--
	}
	return end
}

func skipSpace(s string, pos int) int {
	for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t') {
		pos++
	}
	return pos
}

// detectNewline returns the terminator of the first line in s, defaulting to
// "\n" for single-line input.
func detectNewline(s string) string {
	i := strings.IndexByte(s, '\n')
	if i > 0 && s[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

func identLen(s string) int {
	n := 0
	for n < len(s) && (isAlnum(s[n]) || s[n] == '_' || s[n] == '-') {
		n++
	}
	return n
}

func isIdent(s string) bool {
	return s != "" && identLen(s) == len(s)
}

func isAlnum(c byte) bool {
	return 'a' <= c && c <= 'z' ||
		'A' <= c && c <= 'Z' ||
		'0' <= c && c <= '9'
}

func isValueStop(c byte) bool {
	return c == '#' || c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// IsValidName reports whether a string can be used as a section name or
// setting name: one or more ASCII letters, digits, underscores, or hyphens.
func IsValidName(name string) bool {
	return isIdent(name)
}

// IsValidValue reports whether a string can be written as a setting value.
// Values are non-empty and cannot contain whitespace or '#'.
func IsValidValue(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if isValueStop(value[i]) {
			return false
		}
	}
	return true
}
