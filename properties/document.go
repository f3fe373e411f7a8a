// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import (
	"bytes"
	"sort"
	"strings"
)

// A Document is an ordered collection of properties and sections, optionally
// preceded by a header comment. The zero value is an empty document.
//
// Documents are built by chaining Header, Property and Section calls. Each
// Property call appends to the most recently opened section, or to the top
// level if no section has been opened yet.
//
// A Document can be read by multiple concurrent goroutines, but must not be
// modified while it is being read.
type Document struct {
	header   []string
	entries  []Entry
	trailing []string

	// open is one plus the index in entries of the section receiving new
	// properties. Zero means the top level.
	open int
}

// An Entry is a top-level element of a Document: a *Property or a *Section.
type Entry interface {
	isEntry()
}

// A Property is a key/value pair with an optional comment written on the
// lines before it. An empty key or value is written as nothing, so the
// separator is always present.
type Property struct {
	Comment string
	Key     string
	Value   string
}

// A Section is a named group of properties, written as "[name]" followed by
// its properties. Sections do not nest.
type Section struct {
	Comment    string
	Name       string
	Properties []*Property
}

func (*Property) isEntry() {}
func (*Section) isEntry()  {}

// New returns an empty Document.
func New() *Document {
	return new(Document)
}

// Header sets the document's header comment. text is split into lines on
// "\r\n", "\n" or "\r"; a trailing newline produces a final empty comment
// line. A document has at most one header, so later calls replace earlier ones.
func (d *Document) Header(text string) *Document {
	d.header = splitLines(text)
	return d
}

// Property appends a copy of p to the open section, or to the top level if no
// section has been opened.
func (d *Document) Property(p Property) *Document {
	d.appendProperty(&p)
	return d
}

func (d *Document) appendProperty(p *Property) {
	if s := d.openSection(); s != nil {
		s.Properties = append(s.Properties, p)
		return
	}
	d.entries = append(d.entries, p)
}

// Section appends a copy of s to the document and opens it: subsequent
// Property calls add to it until the next Section call.
func (d *Document) Section(s Section) *Document {
	if len(s.Properties) > 0 {
		props := make([]*Property, len(s.Properties))
		for i, p := range s.Properties {
			pp := *p
			props[i] = &pp
		}
		s.Properties = props
	}
	d.entries = append(d.entries, &s)
	d.open = len(d.entries)
	return d
}

// openSection returns the section receiving new properties or nil.
func (d *Document) openSection() *Section {
	if d.open == 0 {
		return nil
	}
	return d.entries[d.open-1].(*Section)
}

// HeaderLines returns the lines of the header comment, or nil if the
// document has no header.
func (d *Document) HeaderLines() []string {
	if d == nil {
		return nil
	}
	return d.header
}

// Entries returns the document's top-level entries in order. The caller must
// not modify the returned slice.
func (d *Document) Entries() []Entry {
	if d == nil {
		return nil
	}
	return d.entries
}

// TrailingComments returns the comment lines that followed the last entry
// when the document was parsed.
func (d *Document) TrailingComments() []string {
	if d == nil {
		return nil
	}
	return d.trailing
}

// splitLines splits s on any line terminator. It always returns at least one
// element.
func splitLines(s string) []string {
	var lines []string
	for {
		i := strings.IndexAny(s, "\r\n")
		if i == -1 {
			return append(lines, s)
		}
		lines = append(lines, s[:i])
		if s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n' {
			i++
		}
		s = s[i+1:]
	}
}

// each calls f for every property in document order along with the name of
// the section that owns it. Top-level properties are reported with the
// empty section name.
func (d *Document) each(f func(sectionName string, p *Property)) {
	if d == nil {
		return
	}
	for _, e := range d.entries {
		switch e := e.(type) {
		case *Property:
			f("", e)
		case *Section:
			for _, p := range e.Properties {
				f(e.Name, p)
			}
		}
	}
}

// Get returns the last value associated with the given key in the given
// section. Passing an empty section name searches for properties outside
// any section. If there are no values associated with the key, Get returns
// the empty string.
func (d *Document) Get(section, key string) string {
	v, _ := d.get(section, key)
	return v
}

func (d *Document) get(section, key string) (_ string, ok bool) {
	if p := d.last(section, key); p != nil {
		return p.Value, true
	}
	return "", false
}

// last returns the last property with the given key in sections with the
// given name.
func (d *Document) last(sectionName, key string) *Property {
	var found *Property
	d.each(func(name string, p *Property) {
		if name == sectionName && p.Key == key {
			found = p
		}
	})
	return found
}

// Find returns all the values associated with the given key in the given
// section. Passing an empty section name searches for properties outside
// any section.
func (d *Document) Find(section, key string) []string {
	var values []string
	d.each(func(name string, p *Property) {
		if name == section && p.Key == key {
			values = append(values, p.Value)
		}
	})
	return values
}

// Sections returns the names of sections in a document that have properties
// set. This will include the empty string if there are properties set outside
// a section.
func (d *Document) Sections() map[string]struct{} {
	if d == nil {
		return nil
	}
	names := make(map[string]struct{})
	d.each(func(name string, _ *Property) {
		names[name] = struct{}{}
	})
	return names
}

// HasSections reports whether d has any named sections with properties set.
func (d *Document) HasSections() bool {
	has := false
	d.each(func(name string, _ *Property) {
		if name != "" {
			has = true
		}
	})
	return has
}

// Values returns a copy of the properties in the named section. Repeated
// sections with the same name are merged in document order. Values("")
// returns the properties set outside any section.
func (d *Document) Values(section string) Values {
	var result Values
	d.each(func(name string, p *Property) {
		if name != section {
			return
		}
		if result == nil {
			result = make(Values)
		}
		result[p.Key] = append(result[p.Key], p.Value)
	})
	return result
}

// Map returns the document as a map of section name to Values. Properties
// outside any section are stored under the empty string.
func (d *Document) Map() map[string]Values {
	m := make(map[string]Values)
	d.each(func(name string, p *Property) {
		v := m[name]
		if v == nil {
			v = make(Values)
			m[name] = v
		}
		v[p.Key] = append(v[p.Key], p.Value)
	})
	return m
}

// Set sets the property to the given value. If the section name is empty, the
// property is set outside any section.
//
// If the document already had at least one property in the given section with
// the given key, then the last one will be set to value and the properties
// defined earlier in the document will be removed. Otherwise, the property
// will be appended to the last section with that name, creating a section at
// the end of the document if necessary.
func (d *Document) Set(sectionName, key, value string) {
	if p := d.last(sectionName, key); p != nil {
		p.Value = value
		d.deleteExcept(sectionName, key, p)
		return
	}
	p := &Property{Key: key, Value: value}
	if sectionName == "" {
		// Top-level properties must come before the first section.
		i := 0
		for i < len(d.entries) {
			if _, ok := d.entries[i].(*Section); ok {
				break
			}
			i++
		}
		d.entries = append(d.entries, nil)
		copy(d.entries[i+1:], d.entries[i:])
		d.entries[i] = p
		if d.open > 0 {
			d.open++
		}
		return
	}
	for i := len(d.entries) - 1; i >= 0; i-- {
		if s, ok := d.entries[i].(*Section); ok && s.Name == sectionName {
			s.Properties = append(s.Properties, p)
			return
		}
	}
	d.Section(Section{Name: sectionName, Properties: []*Property{p}})
}

// Delete deletes any property with the given key in sections with the
// given name. If this causes any sections that do not have comments attached
// to become empty, then those sections will be removed.
func (d *Document) Delete(sectionName, key string) {
	d.deleteExcept(sectionName, key, nil)
}

func (d *Document) deleteExcept(sectionName, key string, keep *Property) {
	if d == nil {
		return
	}
	drop := func(p *Property) bool {
		return p != keep && p.Key == key
	}
	n := 0
	d.open = 0
	for _, e := range d.entries {
		switch e := e.(type) {
		case *Property:
			if sectionName == "" && drop(e) {
				continue
			}
		case *Section:
			if e.Name == sectionName {
				orig := len(e.Properties)
				kept := e.Properties[:0]
				for _, p := range e.Properties {
					if !drop(p) {
						kept = append(kept, p)
					}
				}
				for j := len(kept); j < orig; j++ {
					// Zero out truncated element for garbage collection.
					e.Properties[j] = nil
				}
				e.Properties = kept
				if orig > 0 && len(kept) == 0 && e.Comment == "" {
					continue
				}
			}
			d.open = n + 1
		}
		d.entries[n] = e
		n++
	}
	for i := n; i < len(d.entries); i++ {
		// Zero out for garbage collection.
		d.entries[i] = nil
	}
	d.entries = d.entries[:n]
}

// MarshalText serializes the document with default options, including
// comments from the original file.
func (d *Document) MarshalText() ([]byte, error) {
	if d == nil {
		return nil, nil
	}
	s, err := Stringify(d, nil)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalText parses the data with default options, replacing any
// entries in d.
func (d *Document) UnmarshalText(data []byte) error {
	parsed, err := Parse(bytes.NewReader(data), nil)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

// Values is a map of string keys to a list of values.
type Values map[string][]string

// Get returns the last value associated with the given key. If there are no
// values associated with the key, Get returns the empty string.
func (v Values) Get(key string) string {
	values := v[key]
	if len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}

// FromMap builds a document from a map of section name to Values. Properties
// under the empty section name are placed at the top level; the remaining
// sections follow in sorted order. Keys are sorted within each section and
// repeated values keep their order.
func FromMap(m map[string]Values) *Document {
	d := New()
	names := make([]string, 0, len(m))
	for name := range m {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	addValues(d, m[""])
	for _, name := range names {
		d.Section(Section{Name: name})
		addValues(d, m[name])
	}
	return d
}

func addValues(d *Document, v Values) {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, value := range v[k] {
			d.Property(Property{Key: k, Value: value})
		}
	}
}
