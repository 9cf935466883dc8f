// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package configfile

import (
	"errors"
	"testing"
)

func TestParseSettingPath(t *testing.T) {
	tests := []struct {
		path             string
		wantType         SectionType
		wantSection      string
		wantSetting      string
		wantErr          bool
		wantNameRequired bool
		wantOffset       int
	}{
		{
			path:        "profile.A.credential_source",
			wantType:    Profile,
			wantSection: "A",
			wantSetting: "credential_source",
		},
		{
			path:        "default.region",
			wantType:    Default,
			wantSetting: "region",
		},
		{
			path:        "sso-session.my-sso.sso_region",
			wantType:    SSOSession,
			wantSection: "my-sso",
			wantSetting: "sso_region",
		},
		{
			path:        "preview.a.b",
			wantType:    Preview,
			wantSection: "a",
			wantSetting: "b",
		},
		{
			path:        "plugins.p.cli_legacy_plugin_path",
			wantType:    Plugins,
			wantSection: "p",
			wantSetting: "cli_legacy_plugin_path",
		},
		{
			path:        "custom.x.y",
			wantType:    SectionType("custom"),
			wantSection: "x",
			wantSetting: "y",
		},
		{
			path:             "profile.region",
			wantErr:          true,
			wantNameRequired: true,
			wantOffset:       len("profile.region"),
		},
		{
			path:             "plugins.x",
			wantErr:          true,
			wantNameRequired: true,
			wantOffset:       len("plugins.x"),
		},
		{
			path:             "preview.cloudsearch",
			wantErr:          true,
			wantNameRequired: true,
			wantOffset:       len("preview.cloudsearch"),
		},
		{
			path:             "profile",
			wantErr:          true,
			wantNameRequired: true,
			wantOffset:       len("profile"),
		},
		{
			path:       "default",
			wantErr:    true,
			wantOffset: len("default"),
		},
		{
			path:       "profile.A.region.extra",
			wantErr:    true,
			wantOffset: len("profile.A.region"),
		},
		{
			path:       "profile.A.region x",
			wantErr:    true,
			wantOffset: len("profile.A.region"),
		},
		{
			path:       "",
			wantErr:    true,
			wantOffset: 0,
		},
		{
			path:       "profile..region",
			wantErr:    true,
			wantOffset: len("profile."),
		},
		{
			path:       "profile.A.",
			wantErr:    true,
			wantOffset: len("profile.A."),
		},
	}
	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			got, err := ParseSettingPath(test.path)
			if test.wantErr {
				if err == nil {
					t.Fatalf("ParseSettingPath(%q) = %v, <nil>; want error", test.path, got)
				}
				if gotNameRequired := errors.Is(err, ErrSectionNameRequired); gotNameRequired != test.wantNameRequired {
					t.Errorf("errors.Is(%v, ErrSectionNameRequired) = %t; want %t", err, gotNameRequired, test.wantNameRequired)
				}
				var pathErr *PathError
				if !errors.As(err, &pathErr) {
					t.Fatalf("ParseSettingPath(%q) error = %v; want *PathError", test.path, err)
				}
				if pathErr.Offset != test.wantOffset {
					t.Errorf("ParseSettingPath(%q) error offset = %d; want %d (%v)", test.path, pathErr.Offset, test.wantOffset, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.Section().Type() != test.wantType || got.Section().Name() != test.wantSection || got.Name() != test.wantSetting {
				t.Errorf("ParseSettingPath(%q) = (%q, %q, %q); want (%q, %q, %q)",
					test.path, got.Section().Type(), got.Section().Name(), got.Name(),
					test.wantType, test.wantSection, test.wantSetting)
			}
			if s := got.String(); s != test.path {
				t.Errorf("ParseSettingPath(%q).String() = %q", test.path, s)
			}
		})
	}
}

func TestParseSectionPath(t *testing.T) {
	tests := []struct {
		path     string
		want     SectionPath
		wantErr  bool
		wantName bool
	}{
		{path: "profile.A", want: SectionPath{typ: Profile, name: "A"}},
		{path: "default", want: SectionPath{typ: Default}},
		{path: "services.local-dev", want: SectionPath{typ: Services, name: "local-dev"}},
		{path: "preview.x", want: SectionPath{typ: Preview, name: "x"}},
		{path: "profile", wantErr: true, wantName: true},
		{path: "plugins", wantErr: true, wantName: true},
		{path: "default.x", wantErr: true},
		{path: "profile.A.region", wantErr: true},
		{path: "[profile A]", wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			got, err := ParseSectionPath(test.path)
			if test.wantErr {
				if err == nil {
					t.Fatalf("ParseSectionPath(%q) = %v, <nil>; want error", test.path, got)
				}
				if errors.Is(err, ErrSectionNameRequired) != test.wantName {
					t.Errorf("ParseSectionPath(%q) error = %v; name required = %t", test.path, err, test.wantName)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != test.want {
				t.Errorf("ParseSectionPath(%q) = %+v; want %+v", test.path, got, test.want)
			}
		})
	}
}

func TestParseNestedSettingPath(t *testing.T) {
	got, err := ParseNestedSettingPath("services.myservices.ec2.endpoint_url")
	if err != nil {
		t.Fatal(err)
	}
	want := NestedSettingPath{
		setting: SettingPath{
			section: SectionPath{typ: Services, name: "myservices"},
			name:    "ec2",
		},
		name: "endpoint_url",
	}
	if got != want {
		t.Errorf("ParseNestedSettingPath(...) = %+v; want %+v", got, want)
	}

	got, err = ParseNestedSettingPath("default.s3.max_concurrent_requests")
	if err != nil {
		t.Fatal(err)
	}
	if got.Setting().Section().Type() != Default || got.Setting().Name() != "s3" || got.Name() != "max_concurrent_requests" {
		t.Errorf("ParseNestedSettingPath(%q) = %+v", "default.s3.max_concurrent_requests", got)
	}
	if s := got.String(); s != "default.s3.max_concurrent_requests" {
		t.Errorf("String() = %q", s)
	}

	for _, bad := range []string{"default.s3", "default.s3.x.y", "services.a.b.c d"} {
		if got, err := ParseNestedSettingPath(bad); err == nil {
			t.Errorf("ParseNestedSettingPath(%q) = %+v, <nil>; want error", bad, got)
		}
	}
}

func TestNewPaths(t *testing.T) {
	if _, err := NewSectionPath(Profile, ""); !errors.Is(err, ErrSectionNameRequired) {
		t.Errorf("NewSectionPath(Profile, \"\") error = %v; want ErrSectionNameRequired", err)
	}
	if _, err := NewSectionPath(SectionType("custom"), ""); !errors.Is(err, ErrSectionNameRequired) {
		t.Errorf("NewSectionPath(\"custom\", \"\") error = %v; want ErrSectionNameRequired", err)
	}
	if _, err := NewSectionPath(Profile, "bad name"); err == nil {
		t.Error("NewSectionPath(Profile, \"bad name\") succeeded")
	}
	if _, err := NewSectionPath(SectionType("a.b"), "x"); err == nil {
		t.Error("NewSectionPath(\"a.b\", \"x\") succeeded")
	}

	plugins, err := NewSectionPath(Plugins, "")
	if err != nil {
		t.Errorf("NewSectionPath(Plugins, \"\"): %v", err)
	}
	f, err := Parse("[plugins]\ncli_legacy_plugin_path = /opt/plugins\n")
	if err != nil {
		t.Fatal(err)
	}
	if f.Section(plugins) == nil {
		t.Error("Section(NewSectionPath(Plugins, \"\")) = nil")
	}

	def, err := NewSectionPath(Default, "")
	if err != nil {
		t.Fatal(err)
	}
	if def.String() != "default" {
		t.Errorf("String() = %q; want \"default\"", def.String())
	}
	sect, err := NewSectionPath(Profile, "A")
	if err != nil {
		t.Fatal(err)
	}
	setting, err := NewSettingPath(sect, "region")
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := ParseSettingPath("profile.A.region")
	if err != nil {
		t.Fatal(err)
	}
	if setting != parsed {
		t.Errorf("NewSettingPath(...) = %+v; ParseSettingPath(...) = %+v", setting, parsed)
	}
	if _, err := NewSettingPath(SectionPath{}, "region"); err == nil {
		t.Error("NewSettingPath(SectionPath{}, ...) succeeded")
	}
	if _, err := NewSettingPath(sect, ""); err == nil {
		t.Error("NewSettingPath(..., \"\") succeeded")
	}
	if _, err := NewSettingPath(sect, "a=b"); err == nil {
		t.Error("NewSettingPath(..., \"a=b\") succeeded")
	}

	nested, err := NewNestedSettingPath(setting, "endpoint_url")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := nested.String(), "profile.A.region.endpoint_url"; got != want {
		t.Errorf("String() = %q; want %q", got, want)
	}
	if _, err := NewNestedSettingPath(SettingPath{}, "endpoint_url"); err == nil {
		t.Error("NewNestedSettingPath(SettingPath{}, ...) succeeded")
	}
}

func TestSectionTypeKnown(t *testing.T) {
	for _, typ := range []SectionType{Default, Profile, SSOSession, Services, Plugins, Preview} {
		if !typ.Known() {
			t.Errorf("%q.Known() = false", typ)
		}
	}
	if SectionType("custom").Known() {
		t.Error(`"custom".Known() = true`)
	}
}
