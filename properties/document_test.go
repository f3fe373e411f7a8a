// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNil(t *testing.T) {
	d := (*Document)(nil)
	if got := d.Get("foo", "bar"); got != "" {
		t.Errorf("Get(...) = %q; want empty", got)
	}
	if got := d.Find("foo", "bar"); len(got) > 0 {
		t.Errorf("Find(...) = %q; want empty", got)
	}
	if got := d.Sections(); len(got) > 0 {
		t.Errorf("Sections(...) = %q; want empty", got)
	}
	if d.HasSections() {
		t.Error("HasSections() = true; want false")
	}
	if got := d.Values("foo"); len(got) > 0 {
		t.Errorf("Values(...) = %q; want empty", got)
	}
	if got := d.Entries(); len(got) > 0 {
		t.Errorf("Entries() = %v; want empty", got)
	}
	if got := d.HeaderLines(); got != nil {
		t.Errorf("HeaderLines() = %q; want nil", got)
	}
}

func TestBuilder(t *testing.T) {
	d := New().
		Header("first").
		Header("a\r\nb").
		Property(Property{Key: "top"}).
		Section(Section{Name: "s1", Properties: []*Property{{Key: "given"}}}).
		Property(Property{Key: "added"}).
		Section(Section{Name: "s2"}).
		Property(Property{Key: "last"})
	if diff := cmp.Diff([]string{"a", "b"}, d.HeaderLines()); diff != "" {
		t.Errorf("HeaderLines() (-want +got):\n%s", diff)
	}
	want := []Entry{
		&Property{Key: "top"},
		&Section{Name: "s1", Properties: []*Property{{Key: "given"}, {Key: "added"}}},
		&Section{Name: "s2", Properties: []*Property{{Key: "last"}}},
	}
	if diff := cmp.Diff(want, d.Entries()); diff != "" {
		t.Errorf("Entries() (-want +got):\n%s", diff)
	}
}

func TestBuilderCopiesArguments(t *testing.T) {
	given := &Property{Key: "k", Value: "v"}
	s := Section{Name: "s", Properties: []*Property{given}}
	d := New().Section(s)
	given.Value = "changed"
	s.Properties[0] = &Property{Key: "other"}
	if got := d.Get("s", "k"); got != "v" {
		t.Errorf(`d.Get("s", "k") = %q; want "v"`, got)
	}
}

func TestAccess(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		section  string
		key      string
		wantGet  string
		wantFind []string
	}{
		{
			name:     "Global",
			source:   "FOO=bar\n",
			section:  "",
			key:      "FOO",
			wantGet:  "bar",
			wantFind: []string{"bar"},
		},
		{
			name:     "GlobalDoesNotExist",
			source:   "FOO=bar\n",
			section:  "",
			key:      "xyzzy",
			wantGet:  "",
			wantFind: []string{},
		},
		{
			name:     "MultipleValues",
			source:   "FOO=bar\nFOO=baz\n",
			section:  "",
			key:      "FOO",
			wantGet:  "baz",
			wantFind: []string{"bar", "baz"},
		},
		{
			name:     "Section",
			source:   "[foo]\nbar=baz\n",
			section:  "foo",
			key:      "bar",
			wantGet:  "baz",
			wantFind: []string{"baz"},
		},
		{
			name: "RepeatedSections",
			source: "[foo]\n" +
				"bar=baz\n" +
				"[xyzzy]\n" +
				"bar=bork\n" +
				"[foo]\n" +
				"bar=else\n",
			section:  "foo",
			key:      "bar",
			wantGet:  "else",
			wantFind: []string{"baz", "else"},
		},
		{
			name:     "UnnamedSection",
			source:   "a=1\n[]\na=2\n",
			section:  "",
			key:      "a",
			wantGet:  "2",
			wantFind: []string{"1", "2"},
		},
	}
	t.Run("Get", func(t *testing.T) {
		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				d, err := Parse(strings.NewReader(test.source), nil)
				if err != nil {
					t.Fatal(err)
				}
				if got := d.Get(test.section, test.key); got != test.wantGet {
					t.Errorf("d.Get(%q, %q) = %q; want %q", test.section, test.key, got, test.wantGet)
				}
				if got := d.Values(test.section).Get(test.key); got != test.wantGet {
					t.Errorf("d.Values(%q).Get(%q) = %q; want %q", test.section, test.key, got, test.wantGet)
				}
			})
		}
	})
	t.Run("Find", func(t *testing.T) {
		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				d, err := Parse(strings.NewReader(test.source), nil)
				if err != nil {
					t.Fatal(err)
				}
				got := d.Find(test.section, test.key)
				if diff := cmp.Diff(test.wantFind, got, cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("d.Find(%q, %q) (-want +got):\n%s", test.section, test.key, diff)
				}
				got = d.Values(test.section)[test.key]
				if diff := cmp.Diff(test.wantFind, got, cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("d.Values(%q)[%q] (-want +got):\n%s", test.section, test.key, diff)
				}
			})
		}
	})
}

func TestSections(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		want        map[string]struct{}
		hasSections bool
	}{
		{
			name: "Empty",
		},
		{
			name:   "GlobalOnly",
			source: "a=b\n",
			want:   map[string]struct{}{"": {}},
		},
		{
			name:        "EmptySectionsIgnored",
			source:      "[empty]\n[full]\na=b\n",
			want:        map[string]struct{}{"full": {}},
			hasSections: true,
		},
		{
			name:        "Mixed",
			source:      "x=y\n[foo]\na=b\n[bar]\nc=d\n",
			want:        map[string]struct{}{"": {}, "foo": {}, "bar": {}},
			hasSections: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d, err := Parse(strings.NewReader(test.source), nil)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, d.Sections(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("d.Sections() (-want +got):\n%s", diff)
			}
			if got := d.HasSections(); got != test.hasSections {
				t.Errorf("d.HasSections() = %t; want %t", got, test.hasSections)
			}
		})
	}
}

func TestMapAndFromMap(t *testing.T) {
	m := map[string]Values{
		"":       {"b": {"2"}, "a": {"1", "1b"}},
		"zeta":   {"k": {"z"}},
		"alpha":  {"k": {"a"}},
		"spaced": {" key ": {" value "}},
	}
	d := FromMap(m)
	got, err := Stringify(d, &StringifyOptions{EOL: "\n"})
	if err != nil {
		t.Fatal("Stringify:", err)
	}
	want := "a=1\na=1b\nb=2\n[alpha]\nk=a\n[spaced]\n\\ key\\ =\\ value \n[zeta]\nk=z"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Stringify(FromMap(...)) (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(m, d.Map()); diff != "" {
		t.Errorf("FromMap(m).Map() (-want +got):\n%s", diff)
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		section string
		key     string
		value   string
		want    string
	}{
		{
			name:    "AddToEmpty",
			section: "",
			key:     "foo",
			value:   "bar",
			want:    "foo=bar",
		},
		{
			name:    "AddSectionToEmpty",
			section: "foo",
			key:     "bar",
			value:   "baz",
			want:    "[foo]\nbar=baz",
		},
		{
			name:    "Overwrite",
			source:  "foo=bar\n",
			section: "",
			key:     "foo",
			value:   "xyzzy",
			want:    "foo=xyzzy",
		},
		{
			name:    "DeletePrevious",
			source:  "# Comment 1\nfoo=bar\n# Comment 2\nfoo=baz\n",
			section: "",
			key:     "foo",
			value:   "quux",
			want:    "# Comment 2\nfoo=quux",
		},
		{
			name:    "DeletePreviousAcrossSections",
			source:  "[s]\nfoo=1\n[t]\nx=y\n[s]\nfoo=2\n",
			section: "s",
			key:     "foo",
			value:   "3",
			want:    "[t]\nx=y\n[s]\nfoo=3",
		},
		{
			name:    "AddToExistingSection",
			source:  "foo=bar\n",
			section: "",
			key:     "baz",
			value:   "quux",
			want:    "foo=bar\nbaz=quux",
		},
		{
			name:    "AddGlobal",
			source:  "#h\n\n[foo]\nbar=baz\n",
			section: "",
			key:     "global",
			value:   "world",
			want:    "#h\n\nglobal=world\n[foo]\nbar=baz",
		},
		{
			name:    "AddToLastSectionWithName",
			source:  "[foo]\na=1\n[bar]\n[foo]\nb=2\n",
			section: "foo",
			key:     "c",
			value:   "3",
			want:    "[foo]\na=1\n[bar]\n[foo]\nb=2\nc=3",
		},
		{
			name:    "AddNewSection",
			source:  "[foo]\nbar=baz\n",
			section: "python",
			key:     "spam",
			value:   "eggs",
			want:    "[foo]\nbar=baz\n[python]\nspam=eggs",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d, err := Parse(strings.NewReader(test.source), nil)
			if err != nil {
				t.Fatal(err)
			}
			d.Set(test.section, test.key, test.value)
			got, err := Stringify(d, &StringifyOptions{EOL: "\n"})
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Stringify (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSetKeepsOpenSection(t *testing.T) {
	d := New().Section(Section{Name: "s"})
	d.Set("", "global", "1")
	d.Property(Property{Key: "k", Value: "v"})
	if got := d.Get("s", "k"); got != "v" {
		t.Errorf(`d.Get("s", "k") = %q; want "v"`, got)
	}
	if got := d.Get("", "global"); got != "1" {
		t.Errorf(`d.Get("", "global") = %q; want "1"`, got)
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		section string
		key     string
		want    string
	}{
		{
			name:    "Empty",
			section: "",
			key:     "foo",
			want:    "",
		},
		{
			name:    "Global",
			source:  "junk1=\nfoo=bar\njunk2=\n",
			section: "",
			key:     "foo",
			want:    "junk1=\njunk2=",
		},
		{
			name:    "MultipleGlobal",
			source:  "junk=\nfoo=bar\nfoo=baz\n",
			section: "",
			key:     "foo",
			want:    "junk=",
		},
		{
			name:    "Section",
			source:  "[group]\njunk1=\nfoo=bar\njunk2=\n",
			section: "group",
			key:     "foo",
			want:    "[group]\njunk1=\njunk2=",
		},
		{
			name:    "EmptySection",
			source:  "[group]\nfoo=bar\n",
			section: "group",
			key:     "foo",
			want:    "",
		},
		{
			name:    "EmptySectionWithComment",
			source:  "#keep me\n[group]\nfoo=bar\n",
			section: "group",
			key:     "foo",
			want:    "#keep me\n[group]",
		},
		{
			name:    "AlreadyEmptySection",
			source:  "[group]\n",
			section: "group",
			key:     "foo",
			want:    "[group]",
		},
		{
			name: "MultipleAcrossSections",
			source: "[group]\njunk=\nfoo=bar\n" +
				"[other]\nfoo=other\n" +
				"[group]\nfoo=baz\n",
			section: "group",
			key:     "foo",
			want:    "[group]\njunk=\n[other]\nfoo=other",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d, err := Parse(strings.NewReader(test.source), nil)
			if err != nil {
				t.Fatal(err)
			}
			d.Delete(test.section, test.key)
			got, err := Stringify(d, &StringifyOptions{EOL: "\n"})
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Stringify (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeleteMovesOpenSection(t *testing.T) {
	d := New().
		Section(Section{Name: "a"}).
		Section(Section{Name: "b"}).
		Property(Property{Key: "k"})
	d.Delete("b", "k")
	d.Property(Property{Key: "next"})
	if got := d.Find("a", "next"); len(got) != 1 {
		t.Errorf(`d.Find("a", "next") = %q; want one value`, got)
	}
}
