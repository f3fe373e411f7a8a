// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"github.com/yourbase/propcodec/properties"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: get requires a key and at least one file", cli.ErrUsage)
	}
	popts, err := cfg.parseOpts()
	if err != nil {
		return err
	}
	docs, err := properties.ParseFiles(cfg.context(), popts, args[1:]...)
	if err != nil {
		return err
	}
	found, err := lookup(cc.Out, docs, cfg.Section, args[0], cfg.All)
	if err != nil {
		return err
	}
	if !found {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// lookup prints the value of key to w and reports whether it was found.
func lookup(w io.Writer, set properties.DocumentSet, section, key string, all bool) (bool, error) {
	if all {
		values := set.Find(section, key)
		for _, v := range values {
			if _, err := fmt.Fprintln(w, v); err != nil {
				return false, err
			}
		}
		return len(values) > 0, nil
	}
	v, ok := set.Lookup(section, key)
	if !ok {
		return false, nil
	}
	_, err := fmt.Fprintln(w, v)
	return true, err
}
