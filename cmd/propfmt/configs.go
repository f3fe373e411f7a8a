// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/yourbase/propcodec/envvar"
	"github.com/yourbase/propcodec/properties"
)

// Environment variables consulted when the corresponding flag is not given.
const (
	commentEnv   = "PROPFMT_COMMENT"
	separatorEnv = "PROPFMT_SEPARATOR"
	crlfEnv      = "PROPFMT_CRLF"
	unicodeEnv   = "PROPFMT_UNICODE"
)

type MainConfig struct {
	Comment   string `cli:"name=comment desc='comment marker character (default #)'"`
	Separator string `cli:"name=sep aliases=separator desc='key/value separator character (default =)'"`
	CRLF      bool   `cli:"name=crlf desc='write CRLF line endings'"`
	Unicode   bool   `cli:"name=u aliases=unicode desc='escape non-ASCII characters'"`
	Color     bool   `cli:"name=color desc='color diff output'"`

	ctx context.Context

	Main *cli.Command
}

// markers returns the comment marker and separator to use, applying
// environment defaults to unset flags.
func (cfg *MainConfig) markers() (comment, separator rune, err error) {
	comment = envvar.Rune(commentEnv, properties.DefaultComment)
	if cfg.Comment != "" {
		if comment, err = singleRune("comment", cfg.Comment); err != nil {
			return 0, 0, err
		}
	}
	separator = envvar.Rune(separatorEnv, properties.DefaultSeparator)
	if cfg.Separator != "" {
		if separator, err = singleRune("sep", cfg.Separator); err != nil {
			return 0, 0, err
		}
	}
	if comment == separator {
		return 0, 0, fmt.Errorf("%w: comment marker and separator must differ", cli.ErrUsage)
	}
	return comment, separator, nil
}

func singleRune(flag, s string) (rune, error) {
	c, n := utf8.DecodeRuneInString(s)
	if c == utf8.RuneError || n != len(s) {
		return 0, fmt.Errorf("%w: -%s must be a single character, got %q", cli.ErrUsage, flag, s)
	}
	if c == '\\' || c == '[' || c == ' ' || c == '\t' || c == '\f' {
		return 0, fmt.Errorf("%w: -%s cannot be %q", cli.ErrUsage, flag, s)
	}
	return c, nil
}

func (cfg *MainConfig) parseOpts() (*properties.ParseOptions, error) {
	comment, separator, err := cfg.markers()
	if err != nil {
		return nil, err
	}
	return &properties.ParseOptions{
		Comment:   comment,
		Separator: separator,
	}, nil
}

func (cfg *MainConfig) stringifyOpts() (*properties.StringifyOptions, error) {
	comment, separator, err := cfg.markers()
	if err != nil {
		return nil, err
	}
	opts := &properties.StringifyOptions{
		Comment:   comment,
		Separator: separator,
		Unicode:   cfg.Unicode || envvar.Bool(unicodeEnv),
		EOL:       "\n",
	}
	if cfg.CRLF || envvar.Bool(crlfEnv) {
		opts.EOL = "\r\n"
	}
	return opts, nil
}

func (cfg *MainConfig) context() context.Context {
	if cfg.ctx == nil {
		return context.Background()
	}
	return cfg.ctx
}

// useColor reports whether diff output to w should be colored.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

type FmtConfig struct {
	*MainConfig
	Write   bool   `cli:"name=w desc='write result to source file instead of stdout'"`
	Diff    bool   `cli:"name=d desc='display diffs instead of rewriting files'"`
	List    bool   `cli:"name=l desc='list files whose formatting differs'"`
	Replace string `cli:"name=replace desc='expression deciding each property: nil or false omits, a string replaces the value'"`

	Fmt *cli.Command
}

type GetConfig struct {
	*MainConfig
	Section string `cli:"name=section aliases=s desc='section to look in (default top level)'"`
	All     bool   `cli:"name=all aliases=a desc='print every value, lowest precedence first'"`

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig
	Section string `cli:"name=section aliases=s desc='section to write to (default top level)'"`

	Set *cli.Command
}

type DeleteConfig struct {
	*MainConfig
	Section string `cli:"name=section aliases=s desc='section to delete from (default top level)'"`

	Delete *cli.Command
}

type ConvertConfig struct {
	*MainConfig
	YAML  bool `cli:"name=y aliases=yaml desc='output YAML instead of JSON'"`
	Props bool `cli:"name=p aliases=props desc='read JSON or YAML and output properties'"`

	Convert *cli.Command
}
