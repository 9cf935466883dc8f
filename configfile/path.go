// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package configfile

import (
	"errors"
	"fmt"
	"strings"
)

// A SectionType is the keyword that starts a section header, like "profile"
// in "[profile dev]". Keywords other than the ones declared below are
// preserved verbatim.
type SectionType string

// Section types recognized by the AWS CLI.
const (
	Default    SectionType = "default"
	Profile    SectionType = "profile"
	SSOSession SectionType = "sso-session"
	Services   SectionType = "services"
	Plugins    SectionType = "plugins"
	Preview    SectionType = "preview"
)

// Known reports whether typ is one of the section types declared in this
// package.
func (typ SectionType) Known() bool {
	switch typ {
	case Default, Profile, SSOSession, Services, Plugins, Preview:
		return true
	default:
		return false
	}
}

// NameRequired reports whether NewSectionPath needs a name for sections of
// this type. Only the default, plugins, and preview sections are singletons.
// Dotted paths are stricter: only "default" may omit the name segment.
func (typ SectionType) NameRequired() bool {
	switch typ {
	case Default, Plugins, Preview:
		return false
	default:
		return true
	}
}

// ErrSectionNameRequired is returned (wrapped in a *PathError) when a path
// omits the section name for a section type that needs one.
var ErrSectionNameRequired = errors.New("section name required for this section type")

// PathError records a failure to build a path.
type PathError struct {
	Path   string
	Offset int
	Err    error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("parse config path %q: offset %d: %v", e.Path, e.Offset, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// A SectionPath identifies a section by type and optional name.
// The zero value does not identify any section.
type SectionPath struct {
	typ  SectionType
	name string
}

// NewSectionPath returns the path of the section with the given type and
// name. An empty name means the section has no name, which is only permitted
// for section types where NameRequired reports false.
func NewSectionPath(typ SectionType, name string) (SectionPath, error) {
	if !isIdent(string(typ)) {
		return SectionPath{}, &PathError{Path: string(typ), Err: fmt.Errorf("invalid section type %q", typ)}
	}
	if name == "" {
		if typ.NameRequired() {
			return SectionPath{}, &PathError{
				Path:   string(typ),
				Offset: len(typ),
				Err:    fmt.Errorf("%s: %w", typ, ErrSectionNameRequired),
			}
		}
		return SectionPath{typ: typ}, nil
	}
	if !isIdent(name) {
		return SectionPath{}, &PathError{Path: name, Err: fmt.Errorf("invalid section name %q", name)}
	}
	return SectionPath{typ: typ, name: name}, nil
}

// ParseSectionPath parses a dotted section path like "profile.dev" or
// "default". The whole string must be consumed. Every section type except
// default needs a name segment, so "[plugins]" cannot be addressed by a
// dotted path; use NewSectionPath(Plugins, "") instead.
func ParseSectionPath(s string) (SectionPath, error) {
	ps := &pathScanner{path: s}
	section, err := ps.section()
	if err != nil {
		return SectionPath{}, err
	}
	if err := ps.end(); err != nil {
		return SectionPath{}, err
	}
	return section, nil
}

// Type returns the section type.
func (p SectionPath) Type() SectionType { return p.typ }

// Name returns the section name or the empty string if the section is
// unnamed.
func (p SectionPath) Name() string { return p.name }

// String returns the path in dotted form.
func (p SectionPath) String() string {
	if p.name == "" {
		return string(p.typ)
	}
	return string(p.typ) + "." + p.name
}

// A SettingPath identifies a setting within a section.
type SettingPath struct {
	section SectionPath
	name    string
}

// NewSettingPath returns the path of the named setting inside a section.
func NewSettingPath(section SectionPath, name string) (SettingPath, error) {
	if section.typ == "" {
		return SettingPath{}, &PathError{Path: name, Err: errors.New("missing section")}
	}
	if !isIdent(name) {
		return SettingPath{}, &PathError{Path: name, Err: fmt.Errorf("invalid setting name %q", name)}
	}
	return SettingPath{section: section, name: name}, nil
}

// ParseSettingPath parses a dotted setting path like "profile.dev.region" or
// "default.region". The whole string must be consumed.
func ParseSettingPath(s string) (SettingPath, error) {
	ps := &pathScanner{path: s}
	setting, err := ps.setting()
	if err != nil {
		return SettingPath{}, err
	}
	if err := ps.end(); err != nil {
		return SettingPath{}, err
	}
	return setting, nil
}

// Section returns the path of the section containing the setting.
func (p SettingPath) Section() SectionPath { return p.section }

// Name returns the setting name.
func (p SettingPath) Name() string { return p.name }

// String returns the path in dotted form.
func (p SettingPath) String() string {
	return p.section.String() + "." + p.name
}

// A NestedSettingPath identifies a setting nested under another setting,
// like endpoint_url in:
//
//	[services dev]
//	ec2 =
//	  endpoint_url = http://localhost:8000
type NestedSettingPath struct {
	setting SettingPath
	name    string
}

// NewNestedSettingPath returns the path of the named nested setting under
// the given setting.
func NewNestedSettingPath(setting SettingPath, name string) (NestedSettingPath, error) {
	if setting.name == "" {
		return NestedSettingPath{}, &PathError{Path: name, Err: errors.New("missing parent setting")}
	}
	if !isIdent(name) {
		return NestedSettingPath{}, &PathError{Path: name, Err: fmt.Errorf("invalid setting name %q", name)}
	}
	return NestedSettingPath{setting: setting, name: name}, nil
}

// ParseNestedSettingPath parses a dotted nested setting path like
// "services.dev.ec2.endpoint_url". The whole string must be consumed.
func ParseNestedSettingPath(s string) (NestedSettingPath, error) {
	ps := &pathScanner{path: s}
	setting, err := ps.setting()
	if err != nil {
		return NestedSettingPath{}, err
	}
	if err := ps.dot(); err != nil {
		return NestedSettingPath{}, err
	}
	name, err := ps.ident("nested setting name")
	if err != nil {
		return NestedSettingPath{}, err
	}
	if err := ps.end(); err != nil {
		return NestedSettingPath{}, err
	}
	return NestedSettingPath{setting: setting, name: name}, nil
}

// Setting returns the path of the parent setting.
func (p NestedSettingPath) Setting() SettingPath { return p.setting }

// Name returns the nested setting name.
func (p NestedSettingPath) Name() string { return p.name }

// String returns the path in dotted form.
func (p NestedSettingPath) String() string {
	return p.setting.String() + "." + p.name
}

// pathScanner reads dotted paths. Path segments use the same identifier
// class as the file grammar, so '.' can never appear inside a segment.
type pathScanner struct {
	path string
	pos  int
}

func (ps *pathScanner) section() (SectionPath, error) {
	typ, err := ps.ident("section type")
	if err != nil {
		return SectionPath{}, err
	}
	section := SectionPath{typ: SectionType(typ)}
	if section.typ == Default {
		return section, nil
	}
	if err := ps.nameRequired(section.typ); err != nil {
		return SectionPath{}, err
	}
	if err := ps.dot(); err != nil {
		return SectionPath{}, err
	}
	section.name, err = ps.ident("section name")
	if err != nil {
		return SectionPath{}, err
	}
	return section, nil
}

func (ps *pathScanner) setting() (SettingPath, error) {
	section, err := ps.section()
	if err != nil {
		return SettingPath{}, err
	}
	if section.typ != Default {
		// "profile.region" is one segment short: the missing segment is the
		// section name.
		if err := ps.nameRequired(section.typ); err != nil {
			return SettingPath{}, err
		}
	}
	if err := ps.dot(); err != nil {
		return SettingPath{}, err
	}
	name, err := ps.ident("setting name")
	if err != nil {
		return SettingPath{}, err
	}
	return SettingPath{section: section, name: name}, nil
}

func (ps *pathScanner) ident(what string) (string, error) {
	n := identLen(ps.path[ps.pos:])
	if n == 0 {
		return "", ps.errorf("expected %s", what)
	}
	s := ps.path[ps.pos : ps.pos+n]
	ps.pos += n
	return s, nil
}

// nameRequired reports ErrSectionNameRequired if the input has run out.
func (ps *pathScanner) nameRequired(typ SectionType) error {
	if ps.pos < len(ps.path) {
		return nil
	}
	return &PathError{
		Path:   ps.path,
		Offset: ps.pos,
		Err:    fmt.Errorf("%s: %w", typ, ErrSectionNameRequired),
	}
}

func (ps *pathScanner) dot() error {
	if !strings.HasPrefix(ps.path[ps.pos:], ".") {
		return ps.errorf("expected '.'")
	}
	ps.pos++
	return nil
}

func (ps *pathScanner) end() error {
	if ps.pos < len(ps.path) {
		return ps.errorf("unexpected trailing characters %q", ps.path[ps.pos:])
	}
	return nil
}

func (ps *pathScanner) errorf(format string, args ...interface{}) error {
	return &PathError{Path: ps.path, Offset: ps.pos, Err: fmt.Errorf(format, args...)}
}
