// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourbase/propcodec/properties"
)

func TestCompileReplacer(t *testing.T) {
	section := &properties.Section{Name: "db"}
	testCases := []struct {
		name    string
		src     string
		key     string
		value   string
		section *properties.Section
		want    properties.Replacement
	}{
		{
			name:  "Keep",
			src:   `true`,
			key:   "a",
			value: "1",
			want:  properties.Keep,
		},
		{
			name:  "OmitFalse",
			src:   `key != "password"`,
			key:   "password",
			value: "hunter2",
			want:  properties.Omit,
		},
		{
			name:  "OmitNil",
			src:   `key == "password" ? nil : value`,
			key:   "password",
			value: "hunter2",
			want:  properties.Omit,
		},
		{
			name:  "Replace",
			src:   `upper(value)`,
			key:   "a",
			value: "abc",
			want:  properties.Replace("ABC"),
		},
		{
			name:    "SectionName",
			src:     `global ? value : section + "." + value`,
			key:     "host",
			value:   "localhost",
			section: section,
			want:    properties.Replace("db.localhost"),
		},
		{
			name:  "Global",
			src:   `global ? "top" : "nested"`,
			key:   "host",
			value: "localhost",
			want:  properties.Replace("top"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := compileReplacer(tc.src)
			require.NoError(t, err)
			got, err := r(tc.key, tc.value, tc.section)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCompileReplacerErrors(t *testing.T) {
	_, err := compileReplacer(`key ==`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile -replace expression")

	r, err := compileReplacer(`len(value)`)
	require.NoError(t, err)
	_, err = r("k", "abc", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "returned int")
}

func TestReplacerWithStringify(t *testing.T) {
	r, err := compileReplacer(`key == "secret" ? nil : value`)
	require.NoError(t, err)
	doc := properties.New().
		Property(properties.Property{Key: "user", Value: "admin"}).
		Section(properties.Section{Name: "auth"}).
		Property(properties.Property{Key: "secret", Value: "x"})
	got, err := properties.Stringify(doc, &properties.StringifyOptions{EOL: "\n", Replacer: r})
	require.NoError(t, err)
	assert.Equal(t, "user=admin", got)
}
