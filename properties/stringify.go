// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import (
	"fmt"
	"unicode/utf8"
)

// Stringify serializes a document. Nil options are treated identically as
// passing the zero value.
//
// Stringify only fails if the Replacer returns an error.
func Stringify(d *Document, opts *StringifyOptions) (string, error) {
	if opts == nil {
		opts = new(StringifyOptions)
	}
	w := &writer{
		esc:      newEscaper(opts.Comment, opts.Separator, opts.Unicode),
		eol:      opts.EOL,
		replacer: opts.Replacer,
	}
	if w.eol == "" {
		w.eol = DefaultEOL
	}
	if d == nil {
		return "", nil
	}
	if d.header != nil {
		for _, line := range d.header {
			w.buf = utf8.AppendRune(w.buf, w.esc.comment)
			w.buf = w.esc.appendComment(w.buf, line)
			w.buf = append(w.buf, w.eol...)
		}
		w.buf = append(w.buf, w.eol...)
	}
	for _, e := range d.entries {
		var err error
		switch e := e.(type) {
		case *Property:
			err = w.property(e, nil)
		case *Section:
			err = w.section(e)
		}
		if err != nil {
			return "", fmt.Errorf("stringify properties: %w", err)
		}
	}
	for _, line := range d.trailing {
		w.commentLine(line)
	}
	return string(w.buf), nil
}

type writer struct {
	buf      []byte
	esc      escaper
	eol      string
	replacer Replacer

	// lines counts the lines written after the header.
	lines int
}

// newline starts a new line, writing a terminator if it is not the first.
func (w *writer) newline() {
	if w.lines > 0 {
		w.buf = append(w.buf, w.eol...)
	}
	w.lines++
}

func (w *writer) commentLine(line string) {
	w.newline()
	w.buf = utf8.AppendRune(w.buf, w.esc.comment)
	w.buf = w.esc.appendComment(w.buf, line)
}

func (w *writer) comment(text string) {
	if text == "" {
		return
	}
	for _, line := range splitLines(text) {
		w.commentLine(line)
	}
}

// replace runs the replacer on p, returning the value to write or false if
// p should be left out.
func (w *writer) replace(p *Property, s *Section) (string, bool, error) {
	if w.replacer == nil {
		return p.Value, true, nil
	}
	r, err := w.replacer(p.Key, p.Value, s)
	if err != nil {
		if s != nil {
			return "", false, fmt.Errorf("section %q: key %q: %w", s.Name, p.Key, err)
		}
		return "", false, fmt.Errorf("key %q: %w", p.Key, err)
	}
	v, ok := r.apply(p.Value)
	return v, ok, nil
}

func (w *writer) property(p *Property, s *Section) error {
	v, ok, err := w.replace(p, s)
	if !ok || err != nil {
		return err
	}
	w.writeProperty(p, v)
	return nil
}

func (w *writer) writeProperty(p *Property, value string) {
	w.comment(p.Comment)
	w.newline()
	w.buf = w.esc.appendKey(w.buf, p.Key)
	w.buf = utf8.AppendRune(w.buf, w.esc.separator)
	w.buf = w.esc.appendValue(w.buf, value)
}

// section writes s and its properties. A section whose properties were all
// omitted by the replacer is omitted as well.
func (w *writer) section(s *Section) error {
	values := make([]string, len(s.Properties))
	kept := make([]bool, len(s.Properties))
	nkept := 0
	for i, p := range s.Properties {
		v, ok, err := w.replace(p, s)
		if err != nil {
			return err
		}
		values[i], kept[i] = v, ok
		if ok {
			nkept++
		}
	}
	if len(s.Properties) > 0 && nkept == 0 {
		return nil
	}
	w.comment(s.Comment)
	w.newline()
	w.buf = append(w.buf, '[')
	w.buf = w.esc.appendSectionName(w.buf, s.Name)
	w.buf = append(w.buf, ']')
	for i, p := range s.Properties {
		if kept[i] {
			w.writeProperty(p, values[i])
		}
	}
	return nil
}
