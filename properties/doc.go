// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package properties provides a parser and serializer for Java-style
.properties files, extended with INI-style section headers.
See https://en.wikipedia.org/wiki/.properties.

Documents preserve the order of their entries and the comments attached to
them, so a parsed document can be edited and written back.

Syntax

A properties file is Unicode text encoded in UTF-8. Lines end in "\n", "\r\n"
or "\r".

A property is a key and a value separated by an equals sign ('='):

	key=value

Whitespace before the key, between the key and the separator, and between the
separator and the value is ignored. Whitespace at the end of a value is part
of the value. Keys and values may contain escape sequences:

	\\      U+005C backslash
	\n      U+000A line feed or newline
	\r      U+000D carriage return
	\t      U+0009 horizontal tab
	\f      U+000C form feed
	\uXXXX  UTF-16 code unit; surrogate pairs are joined

A backslash before any other character stands for that character, which is
how keys express a literal separator ("\="), comment marker ("\#"), leading
bracket ("\[") or surrounding space ("\ ").

A backslash at the very end of a line continues the property on the next line.
Leading whitespace on the continuation line is ignored:

	fruits=apple, \
	       banana

Properties may be grouped into sections. A section is started by writing its
name in square brackets ('[' and ']') on its own line and ends at the next
section or the end of file:

	[section]
	key1=value1
	key2=value2

Sections do not nest. Multiple sections may have the same name; they remain
separate entries of the document, but the lookup methods treat their
properties as if they were presented contiguously.

If the first non-whitespace character in a line is a hash ('#'), then the line
is a comment. Comments are attached to the property or section that follows
them. A block of comments at the start of the file that is followed by a blank
line is the document's header. Other blank lines are ignored.

The comment marker and separator characters may be changed through
ParseOptions and StringifyOptions.
*/
package properties
