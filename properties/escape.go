// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// An escaper converts raw text into its on-disk form. Its zero value escapes
// nothing structural; use newEscaper.
type escaper struct {
	comment   rune
	separator rune
	unicode   bool
}

func newEscaper(comment, separator rune, unicode bool) escaper {
	if comment == 0 {
		comment = DefaultComment
	}
	if separator == 0 {
		separator = DefaultSeparator
	}
	return escaper{comment: comment, separator: separator, unicode: unicode}
}

const hexDigits = "0123456789abcdef"

// appendKey escapes a property key. Spaces in the leading and trailing runs
// of whitespace are escaped, as are the separator and the comment marker
// anywhere in the key and a '[' in first position.
func (e escaper) appendKey(dst []byte, s string) []byte {
	lead, trail := whitespaceRuns(s)
	for i := 0; i < len(s); {
		c, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case c == ' ' && (i < lead || i >= trail):
			dst = append(dst, '\\', ' ')
		case c == e.separator || c == e.comment:
			dst = append(dst, '\\')
			dst = append(dst, s[i:i+size]...)
		case c == '[' && i == 0:
			dst = append(dst, '\\', '[')
		default:
			dst = e.appendRune(dst, s[i:i+size], c)
		}
		i += size
	}
	return dst
}

// appendValue escapes a property value. Only the leading run of whitespace is
// escaped: the value extends to the end of the line, so trailing whitespace
// survives as-is.
func (e escaper) appendValue(dst []byte, s string) []byte {
	lead, _ := whitespaceRuns(s)
	for i := 0; i < len(s); {
		c, size := utf8.DecodeRuneInString(s[i:])
		if c == ' ' && i < lead {
			dst = append(dst, '\\', ' ')
		} else {
			dst = e.appendRune(dst, s[i:i+size], c)
		}
		i += size
	}
	return dst
}

// appendSectionName escapes a section name. The brackets delimit the name, so
// surrounding whitespace is left alone.
func (e escaper) appendSectionName(dst []byte, s string) []byte {
	for i := 0; i < len(s); {
		c, size := utf8.DecodeRuneInString(s[i:])
		if c == e.separator || c == e.comment {
			dst = append(dst, '\\')
			dst = append(dst, s[i:i+size]...)
		} else {
			dst = e.appendRune(dst, s[i:i+size], c)
		}
		i += size
	}
	return dst
}

// appendComment escapes a single comment line. Comments are written verbatim
// unless unicode escaping is enabled. A backslash followed by 'u' is always
// written as \u005c.
func (e escaper) appendComment(dst []byte, s string) []byte {
	if !e.unicode && !strings.Contains(s, `\u`) {
		return append(dst, s...)
	}
	for i := 0; i < len(s); {
		c, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case c == '\\' && i+1 < len(s) && s[i+1] == 'u':
			dst = appendUnicodeEscape(dst, c)
		case !e.unicode || isPrintableASCII(c) || c == '\t' || (c == utf8.RuneError && size == 1):
			dst = append(dst, s[i:i+size]...)
		default:
			dst = appendUnicodeEscape(dst, c)
		}
		i += size
	}
	return dst
}

// appendRune escapes a single rune c whose encoding in the source is raw.
// Invalid UTF-8 bytes are copied through untouched.
func (e escaper) appendRune(dst []byte, raw string, c rune) []byte {
	switch {
	case c == '\\':
		return append(dst, '\\', '\\')
	case c == '\n':
		return append(dst, '\\', 'n')
	case c == '\r':
		return append(dst, '\\', 'r')
	case c == '\t':
		return append(dst, '\\', 't')
	case c == '\f':
		return append(dst, '\\', 'f')
	case c == utf8.RuneError && len(raw) == 1:
		return append(dst, raw...)
	case e.unicode && !isPrintableASCII(c):
		return appendUnicodeEscape(dst, c)
	default:
		return append(dst, raw...)
	}
}

func appendUnicodeEscape(dst []byte, c rune) []byte {
	if c > 0xffff {
		hi, lo := utf16.EncodeRune(c)
		dst = appendUnicodeEscape(dst, hi)
		return appendUnicodeEscape(dst, lo)
	}
	return append(dst, '\\', 'u',
		hexDigits[c>>12&0xf],
		hexDigits[c>>8&0xf],
		hexDigits[c>>4&0xf],
		hexDigits[c&0xf])
}

func isPrintableASCII(c rune) bool {
	return ' ' <= c && c <= '~'
}

// whitespaceRuns returns the end of the leading run and the start of the
// trailing run of blanks in s. For an all-blank s, lead == len(s) and
// trail == 0.
func whitespaceRuns(s string) (lead, trail int) {
	lead = len(s) - len(strings.TrimLeft(s, blanks))
	trail = len(strings.TrimRight(s, blanks))
	return lead, trail
}

// blanks are the characters skipped around keys and values.
const blanks = " \t\f"

// unescape reverses the escaping applied to keys, values and section names.
// A lone backslash at the end of s is dropped.
func unescape(s string) (string, error) {
	if strings.IndexByte(s, '\\') == -1 {
		return s, nil
	}
	sb := new(strings.Builder)
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			sb.WriteByte(s[i])
			continue
		}
		if i+1 >= len(s) {
			break
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'f':
			sb.WriteByte('\f')
		case 'u':
			c, n, err := decodeUnicodeEscape(s[i-1:])
			if err != nil {
				return "", err
			}
			sb.WriteRune(c)
			i += n - 2
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String(), nil
}

// unescapeComment decodes the \uXXXX escapes written by appendComment.
// Backslashes that do not start a valid escape are kept.
func unescapeComment(s string) string {
	if !strings.Contains(s, `\u`) {
		return s
	}
	sb := new(strings.Builder)
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && strings.HasPrefix(s[i:], `\u`) {
			if c, n, err := decodeUnicodeEscape(s[i:]); err == nil {
				sb.WriteRune(c)
				i += n - 1
				continue
			}
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// decodeUnicodeEscape decodes the \uXXXX escape at the start of s, joining a
// surrogate pair if one is present. It returns the number of bytes consumed.
func decodeUnicodeEscape(s string) (rune, int, error) {
	hi, ok := hex4(s)
	if !ok {
		return 0, 0, fmt.Errorf("invalid unicode escape %q", prefix(s, 6))
	}
	if !utf16.IsSurrogate(hi) {
		return hi, 6, nil
	}
	if hi >= 0xdc00 {
		return 0, 0, fmt.Errorf("unpaired low surrogate %q", s[:6])
	}
	lo, ok := hex4(s[6:])
	if !ok || lo < 0xdc00 || lo > 0xdfff {
		return 0, 0, fmt.Errorf("unpaired high surrogate %q", s[:6])
	}
	return utf16.DecodeRune(hi, lo), 12, nil
}

// hex4 parses a \uXXXX escape at the start of s.
func hex4(s string) (rune, bool) {
	if len(s) < 6 || s[0] != '\\' || s[1] != 'u' {
		return 0, false
	}
	var c rune
	for i := 2; i < 6; i++ {
		if !isHexDigit(s[i]) {
			return 0, false
		}
		c = c<<4 | rune(fromHex(s[i]))
	}
	return c, true
}

func prefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' ||
		'a' <= c && c <= 'f' ||
		'A' <= c && c <= 'F'
}

func fromHex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 0xa
	case 'A' <= c && c <= 'F':
		return c - 'A' + 0xa
	default:
		panic("invalid hex digit")
	}
}

// isEscaped reports whether the byte at s[i] is preceded by an odd number of
// backslashes.
func isEscaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}
