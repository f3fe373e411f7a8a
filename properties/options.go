// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

// Default structural characters.
const (
	DefaultComment   = '#'
	DefaultSeparator = '='
)

// StringifyOptions holds optional parameters for Stringify. The zero value
// selects the defaults.
type StringifyOptions struct {
	// Comment is the character that starts a comment line.
	// If zero, DefaultComment is used.
	Comment rune

	// Separator is the character written between a key and its value.
	// If zero, DefaultSeparator is used.
	Separator rune

	// Unicode causes every character outside printable ASCII to be written as
	// a \uXXXX escape. Characters outside the Basic Multilingual Plane are
	// written as a UTF-16 surrogate pair of escapes.
	Unicode bool

	// EOL is the line terminator. If empty, DefaultEOL is used.
	EOL string

	// Replacer, if not nil, is called for each property before it is written.
	Replacer Replacer
}

// ParseOptions holds optional parameters for Parse. Nil options are treated
// identically as passing the zero value.
type ParseOptions struct {
	// Comment is the character that starts a comment line.
	// If zero, DefaultComment is used.
	Comment rune

	// Separator is the character that splits keys from values.
	// If zero, DefaultSeparator is used.
	Separator rune

	// Reviver, if not nil, is called for each property after it is decoded.
	Reviver Reviver

	// NormalizeSection is called on each section name to apply text transformations.
	// This can be used to make section names case-insensitive, for instance.
	// If nil, no transformations are made.
	NormalizeSection func(name string) string

	// NormalizeKey is called on each key to apply text transformations.
	// If nil, no transformations are made.
	NormalizeKey func(section, key string) string
}

// A Replacer inspects a property during Stringify and decides what to write.
// section is the section that owns the property, or nil for properties
// outside any section. A non-nil error aborts Stringify.
type Replacer func(key, value string, section *Section) (Replacement, error)

// A Reviver inspects a property during Parse and decides what to keep.
// section is the section that owns the property, or nil for properties
// outside any section. A non-nil error aborts Parse.
type Reviver func(key, value string, section *Section) (Replacement, error)

// A Replacement is the outcome of a Replacer or Reviver: keep the property,
// omit it, or keep it with a different value. The zero value is Keep.
type Replacement struct {
	kind  replacementKind
	value string
}

type replacementKind int8

const (
	keepKind replacementKind = iota
	omitKind
	replaceKind
)

var (
	// Keep leaves the property unchanged.
	Keep = Replacement{}
	// Omit drops the property.
	Omit = Replacement{kind: omitKind}
)

// Replace keeps the property's key but substitutes value for its value.
func Replace(value string) Replacement {
	return Replacement{kind: replaceKind, value: value}
}

// apply returns the value to use in place of value, or false if the property
// should be dropped.
func (r Replacement) apply(value string) (string, bool) {
	switch r.kind {
	case omitKind:
		return "", false
	case replaceKind:
		return r.value, true
	default:
		return value, true
	}
}

// String returns a short description of r, for use in test failures.
func (r Replacement) String() string {
	switch r.kind {
	case omitKind:
		return "Omit"
	case replaceKind:
		return "Replace(" + r.value + ")"
	default:
		return "Keep"
	}
}
