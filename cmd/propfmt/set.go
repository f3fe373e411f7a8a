// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/yourbase/propcodec/properties"
	"zombiezen.com/go/log"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: set requires 3 arguments, a key, a value and a file, got %v", cli.ErrUsage, args)
	}
	key, value, name := args[0], args[1], args[2]
	return editFile(cfg.MainConfig, name, func(doc *properties.Document) {
		doc.Set(cfg.Section, key, value)
	})
}

func del(cfg *DeleteConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Delete.Parse(cc, args)
	if err != nil {
		cfg.Delete.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: delete requires 2 arguments, a key and a file, got %v", cli.ErrUsage, args)
	}
	key, name := args[0], args[1]
	return editFile(cfg.MainConfig, name, func(doc *properties.Document) {
		doc.Delete(cfg.Section, key)
	})
}

// editFile applies edit to the document stored in the named file and writes
// the result back. A missing file is treated as an empty document.
func editFile(cfg *MainConfig, name string, edit func(*properties.Document)) error {
	popts, err := cfg.parseOpts()
	if err != nil {
		return err
	}
	sopts, err := cfg.stringifyOpts()
	if err != nil {
		return err
	}
	src, err := os.ReadFile(name)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not read %q: %w", name, err)
	}
	if err != nil {
		log.Infof(cfg.context(), "Creating %s", name)
	}
	doc, err := properties.Parse(bytes.NewReader(src), popts)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	edit(doc)
	res, err := render(doc, sopts)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return writeFile(name, res)
}
