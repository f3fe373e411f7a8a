// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// maxLineSize is the longest physical line Parse accepts.
const maxLineSize = 16 << 20

// A SyntaxError reports malformed input along with the line it starts on.
type SyntaxError struct {
	Line int
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Parse parses a properties document. Nil options are treated identically as
// passing the zero value.
//
// See the Syntax section in the package documentation for the format
// recognized by Parse. On error, Parse returns a nil document.
func Parse(r io.Reader, opts *ParseOptions) (*Document, error) {
	if opts == nil {
		opts = new(ParseOptions)
	}
	p := &parser{
		opts:      opts,
		doc:       New(),
		comment:   opts.Comment,
		separator: string(opts.Separator),
	}
	if p.comment == 0 {
		p.comment = DefaultComment
	}
	if opts.Separator == 0 {
		p.separator = string(rune(DefaultSeparator))
	}
	s := bufio.NewScanner(r)
	s.Buffer(nil, maxLineSize)
	s.Split(scanLines)
	lineno := 0
	for s.Scan() {
		lineno++
		start := lineno
		line := strings.TrimLeft(s.Text(), blanks)
		if c, _ := utf8.DecodeRuneInString(line); line != "" && c != p.comment {
			for continues(line) {
				line = line[:len(line)-1]
				if !s.Scan() {
					break
				}
				lineno++
				line += strings.TrimLeft(s.Text(), blanks)
			}
		}
		if err := p.line(line); err != nil {
			return nil, fmt.Errorf("parse properties: %w", &SyntaxError{Line: start, Err: err})
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("parse properties: line %d: %w", lineno+1, err)
	}
	p.doc.trailing = p.comments
	return p.doc, nil
}

type parser struct {
	opts      *ParseOptions
	doc       *Document
	comment   rune
	separator string
	comments  []string
}

// line handles one logical line with leading whitespace removed.
func (p *parser) line(line string) error {
	if line == "" {
		if p.doc.header == nil && len(p.doc.entries) == 0 && len(p.comments) > 0 {
			p.doc.header = p.comments
			p.comments = nil
		}
		return nil
	}
	c, size := utf8.DecodeRuneInString(line)
	switch {
	case c == p.comment:
		p.comments = append(p.comments, unescapeComment(line[size:]))
		return nil
	case c == '[':
		return p.section(line)
	default:
		return p.property(line)
	}
}

func (p *parser) takeComment() string {
	text := strings.Join(p.comments, "\n")
	p.comments = nil
	return text
}

func (p *parser) section(line string) error {
	line = strings.TrimRight(line, blanks)
	if len(line) < 2 || line[len(line)-1] != ']' || isEscaped(line, len(line)-1) {
		return errors.New("unterminated section header")
	}
	name, err := unescape(line[1 : len(line)-1])
	if err != nil {
		return fmt.Errorf("section name: %w", err)
	}
	if p.opts.NormalizeSection != nil {
		name = p.opts.NormalizeSection(name)
	}
	p.doc.Section(Section{
		Comment: p.takeComment(),
		Name:    name,
	})
	return nil
}

func (p *parser) property(line string) error {
	i := indexUnescaped(line, p.separator)
	if i == -1 {
		return fmt.Errorf("missing separator %q", p.separator)
	}
	rawKey := line[:i]
	for n := len(rawKey); n > 0 && strings.IndexByte(blanks, rawKey[n-1]) >= 0 && !isEscaped(rawKey, n-1); n-- {
		rawKey = rawKey[:n-1]
	}
	key, err := unescape(rawKey)
	if err != nil {
		return fmt.Errorf("key: %w", err)
	}
	value, err := unescape(strings.TrimLeft(line[i+len(p.separator):], blanks))
	if err != nil {
		return fmt.Errorf("value of %q: %w", key, err)
	}
	section := p.doc.openSection()
	if p.opts.NormalizeKey != nil {
		name := ""
		if section != nil {
			name = section.Name
		}
		key = p.opts.NormalizeKey(name, key)
	}
	comment := p.takeComment()
	if p.opts.Reviver != nil {
		r, err := p.opts.Reviver(key, value, section)
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		var ok bool
		if value, ok = r.apply(value); !ok {
			return nil
		}
	}
	p.doc.appendProperty(&Property{
		Comment: comment,
		Key:     key,
		Value:   value,
	})
	return nil
}

// continues reports whether line ends in an unescaped backslash.
func continues(line string) bool {
	n := len(line)
	return n > 0 && line[n-1] == '\\' && !isEscaped(line, n-1)
}

// indexUnescaped returns the index of the first occurrence of sep in s that
// is not preceded by a backslash escape, or -1.
func indexUnescaped(s, sep string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if strings.HasPrefix(s[i:], sep) {
			return i
		}
	}
	return -1
}

// scanLines is a bufio.SplitFunc that splits on "\n", "\r\n" or a lone "\r".
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// Need more data to tell "\r" from "\r\n".
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
