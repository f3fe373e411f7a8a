// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"github.com/yourbase/propcodec/properties"
	"zombiezen.com/go/log"
)

func format(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	popts, err := cfg.parseOpts()
	if err != nil {
		return err
	}
	sopts, err := cfg.stringifyOpts()
	if err != nil {
		return err
	}
	if cfg.Replace != "" {
		if sopts.Replacer, err = compileReplacer(cfg.Replace); err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	if len(args) == 0 {
		if cfg.Write {
			return fmt.Errorf("%w: cannot use -w with standard input", cli.ErrUsage)
		}
		args = []string{"-"}
	}
	for _, name := range args {
		if err := formatFile(cfg, cc.In, cc.Out, name, popts, sopts); err != nil {
			return err
		}
	}
	return nil
}

func formatFile(cfg *FmtConfig, in io.Reader, out io.Writer, name string, popts *properties.ParseOptions, sopts *properties.StringifyOptions) error {
	src, err := readInput(in, name)
	if err != nil {
		return err
	}
	res, err := formatSource(src, popts, sopts)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	changed := !bytes.Equal(src, res)
	if cfg.List && changed {
		fmt.Fprintln(out, name)
	}
	if cfg.Diff {
		if err := writeDiff(out, name, string(src), string(res), cfg.useColor(out)); err != nil {
			return err
		}
	}
	if cfg.Write {
		if !changed {
			return nil
		}
		log.Debugf(cfg.context(), "Rewriting %s", name)
		return writeFile(name, res)
	}
	if !cfg.List && !cfg.Diff {
		if _, err := out.Write(res); err != nil {
			return fmt.Errorf("error writing %s: %w", name, err)
		}
	}
	return nil
}

// formatSource parses src and writes it back in canonical form, ending in a
// line terminator unless the document is empty.
func formatSource(src []byte, popts *properties.ParseOptions, sopts *properties.StringifyOptions) ([]byte, error) {
	doc, err := properties.Parse(bytes.NewReader(src), popts)
	if err != nil {
		return nil, err
	}
	return render(doc, sopts)
}

func render(doc *properties.Document, sopts *properties.StringifyOptions) ([]byte, error) {
	s, err := properties.Stringify(doc, sopts)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	eol := sopts.EOL
	if eol == "" {
		eol = properties.DefaultEOL
	}
	return []byte(s + eol), nil
}
