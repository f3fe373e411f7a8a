// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import (
	"context"
	"fmt"
	"os"

	"zombiezen.com/go/log"
)

// DocumentSet is a list of documents to obtain configuration from in
// descending order of precedence.
type DocumentSet []*Document

// ParseFiles parses the files at the given paths and returns a DocumentSet.
// If the returned error is nil, the returned set's length will be the same
// as the number of arguments. ParseFiles will stop on the first error, but
// ignores missing file errors, instead filling the corresponding element of the
// set with a nil *Document.
func ParseFiles(ctx context.Context, opts *ParseOptions, paths ...string) (DocumentSet, error) {
	set := make(DocumentSet, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if os.IsNotExist(err) {
			log.Debugf(ctx, "Skipping missing properties file %s", p)
			set = append(set, nil)
			continue
		}
		if err != nil {
			return set, fmt.Errorf("parse properties files: %w", err)
		}
		parsed, err := Parse(f, opts)
		f.Close() // Close errors irrelevant.
		if err != nil {
			return set, fmt.Errorf("parse properties files: %s: %w", p, err)
		}
		log.Debugf(ctx, "Read %d entries from %s", len(parsed.Entries()), p)
		set = append(set, parsed)
	}
	return set, nil
}

// Get returns the value from the first document that has the given key in the
// given section. Passing an empty section name searches for properties outside
// any section. If no document has the key, Get returns the empty string.
func (set DocumentSet) Get(section, key string) string {
	v, _ := set.Lookup(section, key)
	return v
}

// Lookup is like Get, but also reports whether any document has the key.
func (set DocumentSet) Lookup(section, key string) (string, bool) {
	for _, d := range set {
		if v, ok := d.get(section, key); ok {
			return v, true
		}
	}
	return "", false
}

// Find returns all the values associated with the given key in the given
// section, lowest precedence first. Passing an empty section name searches
// for properties outside any section.
func (set DocumentSet) Find(section, key string) []string {
	var values []string
	for i := len(set) - 1; i >= 0; i-- {
		values = append(values, set[i].Find(section, key)...)
	}
	return values
}

// Sections returns the names of sections that have properties set in any
// document. This will include the empty string if there are properties set
// outside sections.
func (set DocumentSet) Sections() map[string]struct{} {
	merged := make(map[string]struct{})
	for _, d := range set {
		for name := range d.Sections() {
			merged[name] = struct{}{}
		}
	}
	return merged
}

// HasSections reports whether any document has named sections with
// properties set.
func (set DocumentSet) HasSections() bool {
	for _, d := range set {
		if d.HasSections() {
			return true
		}
	}
	return false
}

// Values returns a copy of the properties in the named section, merged
// across documents with lowest precedence first.
func (set DocumentSet) Values(name string) Values {
	merged := make(Values)
	for i := len(set) - 1; i >= 0; i-- {
		for key, values := range set[i].Values(name) {
			merged[key] = append(merged[key], values...)
		}
	}
	return merged
}

// Set sets the property on the first document and deletes the property in all
// subsequent documents. Set will panic if len(set) == 0.
//
// If set[0] == nil, Set allocates a new Document. Any other nil documents in
// the set will be ignored.
func (set DocumentSet) Set(sectionName, key, value string) {
	if set[0] == nil {
		set[0] = New()
	}
	set[0].Set(sectionName, key, value)
	set[1:].Delete(sectionName, key)
}

// Delete deletes any property with the given key in sections with the given
// name. If this causes any sections that do not have comments attached to
// become empty, then those sections will be removed. Nil elements of the set
// are ignored.
func (set DocumentSet) Delete(sectionName, key string) {
	for _, d := range set {
		d.Delete(sectionName, key)
	}
}
