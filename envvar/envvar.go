// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package envvar reads configuration defaults from environment variables.
package envvar

import (
	"os"
	"strconv"
	"unicode/utf8"
)

// Get returns the value of the given environment variable. If it is empty or
// unset, it returns the default value.
func Get(key string, defaultValue string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	return v
}

// Bool returns the value of a boolean environment variable. If it is unset or
// not one of the strings 1, t, T, TRUE, true, or True, then it returns false.
func Bool(key string) bool {
	v := os.Getenv(key)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}

// Rune returns the value of an environment variable holding a single
// character. If it is unset or is not exactly one valid UTF-8 encoded
// character, then it returns the default value.
func Rune(key string, defaultValue rune) rune {
	v := os.Getenv(key)
	c, n := utf8.DecodeRuneInString(v)
	if v == "" || c == utf8.RuneError || n != len(v) {
		return defaultValue
	}
	return c
}
