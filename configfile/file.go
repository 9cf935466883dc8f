// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package configfile

import (
	"strings"
)

// A File is a parsed AWS config or credentials file. The zero value is an
// empty config file.
//
// Files can be read by multiple concurrent goroutines, but Set must not be
// called concurrently with any other method.
type File struct {
	leading  string
	sections []*Section
	trailing string

	// newline is the line terminator used for inserted text.
	newline     string
	credentials bool
}

// A Section is a header and the settings that follow it.
type Section struct {
	leading  string
	header   header
	settings []*Setting
}

type header struct {
	typ  SectionType
	name string

	// bare headers are written without their type, as in credentials files.
	bare bool

	// trailing holds the rest of the header line and any blank or comment
	// lines after it.
	trailing string
}

// A Setting is a "name = value" line directly under a section header. Its
// value is either a scalar or a list of indented nested settings.
type Setting struct {
	leading string
	name    string
	equal   string

	value    string
	trailing string

	nested *nestedList
}

type nestedList struct {
	leading string
	items   []*NestedSetting
}

// A NestedSetting is an indented "name = value" line under a setting with no
// value of its own.
type NestedSetting struct {
	indent   string
	name     string
	equal    string
	value    string
	trailing string
}

// IsCredentials reports whether f was parsed as a credentials file.
func (f *File) IsCredentials() bool {
	return f != nil && f.credentials
}

// Sections returns the sections of the file in order.
func (f *File) Sections() []*Section {
	if f == nil {
		return nil
	}
	return append([]*Section(nil), f.sections...)
}

// Section returns the first section matching the path or nil if there is
// none.
func (f *File) Section(path SectionPath) *Section {
	if f == nil || path.typ == "" {
		return nil
	}
	for _, sect := range f.sections {
		if sect.header.typ == path.typ && sect.header.name == path.name {
			return sect
		}
	}
	return nil
}

// Setting returns the setting at the path or nil if there is none.
func (f *File) Setting(path SettingPath) *Setting {
	return f.Section(path.section).Setting(path.name)
}

// NestedSetting returns the nested setting at the path. It returns nil if
// the parent setting does not exist, has a scalar value, or has no nested
// setting with the name.
func (f *File) NestedSetting(path NestedSettingPath) *NestedSetting {
	return f.Setting(path.setting).NestedSetting(path.name)
}

// Get returns the scalar value of the setting at the path. If the setting
// does not exist or holds nested settings, Get returns the empty string.
func (f *File) Get(path SettingPath) string {
	return f.Setting(path).Value()
}

// Set sets the setting at the path to a scalar value. Set will panic if
// IsValidValue(value) reports false or if path is the zero SettingPath.
//
// If the section does not exist, it is appended to the end of the file. If
// the setting exists, its value is replaced in place; a setting that held
// nested settings loses them. Otherwise the setting is appended to the end
// of the section. Everything else in the file is left as it was.
//
// Credentials files can only hold the default section and profiles, so Set
// panics on a credentials file if the path names any other section type.
func (f *File) Set(path SettingPath, value string) {
	if path.name == "" {
		panic("File.Set called with zero SettingPath")
	}
	if !IsValidValue(value) {
		panic("File.Set invalid value: " + value)
	}
	sect := f.Section(path.section)
	if sect == nil {
		sect = f.appendSection(path.section)
	}
	if setting := sect.Setting(path.name); setting != nil {
		setting.setScalar(value)
		return
	}
	sect.appendSetting(path.name, value, f.nl())
}

func (f *File) appendSection(path SectionPath) *Section {
	if f.credentials && path.typ != Profile && path.typ != Default {
		panic("File.Set: credentials files cannot hold " + string(path.typ) + " sections")
	}
	sect := &Section{
		header: header{
			typ:      path.typ,
			name:     path.name,
			bare:     f.credentials,
			trailing: f.nl(),
		},
	}
	sb := new(strings.Builder)
	sb.WriteString(f.leading)
	for _, s := range f.sections {
		s.writeTo(sb)
	}
	if prefix := sb.String(); prefix != "" {
		// Separate from the previous section with a blank line.
		if !strings.HasSuffix(prefix, "\n") {
			sect.leading = f.nl()
		}
		sect.leading += f.nl()
	}
	f.sections = append(f.sections, sect)
	return sect
}

func (f *File) nl() string {
	if f.newline == "" {
		return "\n"
	}
	return f.newline
}

// String returns the file in AWS config format. For a file that has not
// been modified, this is exactly the text it was parsed from.
func (f *File) String() string {
	if f == nil {
		return ""
	}
	sb := new(strings.Builder)
	sb.WriteString(f.leading)
	for _, sect := range f.sections {
		sect.writeTo(sb)
	}
	sb.WriteString(f.trailing)
	return sb.String()
}

// MarshalText serializes the file, including all comments and whitespace
// from the original text.
func (f *File) MarshalText() ([]byte, error) {
	if f == nil {
		return nil, nil
	}
	return []byte(f.String()), nil
}

// UnmarshalText parses data, replacing any content in f. If f was parsed as
// a credentials file, data is parsed as a credentials file too.
func (f *File) UnmarshalText(data []byte) error {
	p := &parser{src: string(data), credentials: f.credentials}
	parsed, err := p.file()
	if err != nil {
		return err
	}
	*f = *parsed
	return nil
}

// Type returns the section type from the header.
func (sect *Section) Type() SectionType {
	return sect.header.typ
}

// Name returns the section name from the header or the empty string if the
// header does not have one.
func (sect *Section) Name() string {
	return sect.header.name
}

// Path returns the path that addresses the section.
func (sect *Section) Path() SectionPath {
	return SectionPath{typ: sect.header.typ, name: sect.header.name}
}

// Settings returns the settings of the section in order.
func (sect *Section) Settings() []*Setting {
	if sect == nil {
		return nil
	}
	return append([]*Setting(nil), sect.settings...)
}

// Setting returns the first setting with the given name or nil if there is
// none.
func (sect *Section) Setting(name string) *Setting {
	if sect == nil {
		return nil
	}
	for _, s := range sect.settings {
		if s.name == name {
			return s
		}
	}
	return nil
}

// appendSetting adds a setting after the last line of the section. Blank and
// comment lines after that line stay below the new setting.
func (sect *Section) appendSetting(name, value, nl string) {
	s := &Setting{
		name:  name,
		equal: " = ",
		value: value,
	}
	run := sect.lastRun()
	if i := strings.IndexByte(*run, '\n'); i == -1 {
		// The section ends on the unterminated last line of the file.
		s.leading = nl
	} else {
		s.trailing = nl + (*run)[i+1:]
		*run = (*run)[:i+1]
	}
	sect.settings = append(sect.settings, s)
}

// lastRun returns the text that ends the section: the rest of its last line
// and any blank or comment lines after it.
func (sect *Section) lastRun() *string {
	n := len(sect.settings)
	if n == 0 {
		return &sect.header.trailing
	}
	last := sect.settings[n-1]
	switch {
	case last.nested == nil:
		return &last.trailing
	case len(last.nested.items) == 0:
		return &last.nested.leading
	default:
		return &last.nested.items[len(last.nested.items)-1].trailing
	}
}

// String returns the section as it appears in the file.
func (sect *Section) String() string {
	sb := new(strings.Builder)
	sect.writeTo(sb)
	return sb.String()
}

func (sect *Section) writeTo(sb *strings.Builder) {
	sb.WriteString(sect.leading)
	sect.header.writeTo(sb)
	for _, s := range sect.settings {
		s.writeTo(sb)
	}
}

func (h *header) writeTo(sb *strings.Builder) {
	sb.WriteByte('[')
	switch {
	case h.name == "":
		sb.WriteString(string(h.typ))
	case h.bare:
		sb.WriteString(h.name)
	default:
		sb.WriteString(string(h.typ))
		sb.WriteByte(' ')
		sb.WriteString(h.name)
	}
	sb.WriteByte(']')
	sb.WriteString(h.trailing)
}

// Name returns the setting name.
func (s *Setting) Name() string {
	return s.name
}

// Value returns the scalar value of the setting, or the empty string if
// s is nil or holds nested settings.
func (s *Setting) Value() string {
	if s == nil || s.nested != nil {
		return ""
	}
	return s.value
}

// IsNested reports whether the setting holds nested settings instead of a
// scalar value. A setting with nothing after its '=' is nested, even if no
// indented lines follow it.
func (s *Setting) IsNested() bool {
	return s != nil && s.nested != nil
}

// Nested returns the nested settings in order. It returns nil for scalar
// settings.
func (s *Setting) Nested() []*NestedSetting {
	if s == nil || s.nested == nil {
		return nil
	}
	return append([]*NestedSetting(nil), s.nested.items...)
}

// NestedSetting returns the first nested setting with the given name or nil
// if there is none.
func (s *Setting) NestedSetting(name string) *NestedSetting {
	if s == nil || s.nested == nil {
		return nil
	}
	for _, item := range s.nested.items {
		if item.name == name {
			return item
		}
	}
	return nil
}

// setScalar replaces the value. Nested settings are dropped, but the line
// break after the nested group and any blank or comment lines that followed
// it are kept so the next line stays where it was.
func (s *Setting) setScalar(value string) {
	if s.nested != nil {
		s.trailing = s.nested.tail()
		s.nested = nil
		if strings.HasSuffix(s.equal, "=") && strings.HasPrefix(s.equal, " ") {
			s.equal += " "
		}
	}
	s.value = value
}

// tail returns the text after the last line of the list, starting with that
// line's terminator.
func (list *nestedList) tail() string {
	t := list.leading
	if n := len(list.items); n > 0 {
		t = list.items[n-1].trailing
	}
	i := strings.IndexByte(t, '\n')
	if i == -1 {
		return ""
	}
	if i > 0 && t[i-1] == '\r' {
		i--
	}
	return t[i:]
}

// String returns the setting as it appears in the file, including the
// blank or comment lines before it.
func (s *Setting) String() string {
	sb := new(strings.Builder)
	s.writeTo(sb)
	return sb.String()
}

func (s *Setting) writeTo(sb *strings.Builder) {
	sb.WriteString(s.leading)
	sb.WriteString(s.name)
	sb.WriteString(s.equal)
	if s.nested == nil {
		sb.WriteString(s.value)
		sb.WriteString(s.trailing)
		return
	}
	sb.WriteString(s.nested.leading)
	for _, item := range s.nested.items {
		item.writeTo(sb)
	}
}

// Name returns the nested setting name.
func (item *NestedSetting) Name() string {
	return item.name
}

// Value returns the nested setting value.
func (item *NestedSetting) Value() string {
	return item.value
}

// String returns the nested setting line as it appears in the file.
func (item *NestedSetting) String() string {
	sb := new(strings.Builder)
	item.writeTo(sb)
	return sb.String()
}

func (item *NestedSetting) writeTo(sb *strings.Builder) {
	sb.WriteString(item.indent)
	sb.WriteString(item.name)
	sb.WriteString(item.equal)
	sb.WriteString(item.value)
	sb.WriteString(item.trailing)
}
