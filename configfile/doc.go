// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package configfile provides a parser and editor for AWS CLI config and
credentials files. See
https://docs.aws.amazon.com/cli/latest/userguide/cli-configure-files.html.

This package is specifically designed for read-modify-write scenarios, like
`aws configure set`: it preserves comments, blank lines, spacing, and the
order of everything in the file, and edits values in-place. Formatting a
parsed file that has not been modified produces exactly the original text.
Reading from and writing to disk are left to the caller.

# Syntax

A config file consists of zero or more sections. A section starts with a
header in square brackets on its own line, holding a section type and a name
separated by a single space. The default section and a few other singleton
sections have no name:

	[default]
	[profile dev]
	[sso-session my-sso]
	[services local]
	[plugins]

Section types other than default, profile, sso-session, services, plugins,
and preview are accepted and kept as written. In a credentials file, headers
hold only a profile name, like [dev].

A setting is a name and a value separated by an equals sign ('='). Spacing
around the equals sign is optional and preserved:

	region = us-west-2
	output=json

Names are made of ASCII letters, digits, underscores ('_'), and hyphens
('-'). Values run up to the first whitespace character or hash ('#').

A setting with nothing after its equals sign holds nested settings instead:
the indented lines that follow it.

	[services local]
	ec2 =
	  endpoint_url = http://localhost:8000

Nesting is exactly one level deep.

A hash ('#') starts a comment that runs to the end of the line. Comments may
follow a header or a value, or sit on their own line. Lines may end in "\n"
or "\r\n"; each line keeps its own ending.

# Paths

Sections and settings are addressed by paths, which can be built from their
parts or parsed from dotted strings:

	profile.dev                     section
	profile.dev.region              setting
	default.region                  setting in the default section
	services.local.ec2.endpoint_url nested setting

Only the default section may omit the name segment of a dotted path. The
nameless plugins and preview sections are addressed with NewSectionPath.

# Repeated names

Sections with the same type and name, or settings with the same name in one
section, are accepted. Lookups and edits use the first one.
*/
package configfile
