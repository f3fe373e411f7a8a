// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
	"github.com/yourbase/propcodec/properties"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, name := range args {
		src, err := readInput(cc.In, name)
		if err != nil {
			return err
		}
		if cfg.Props {
			err = convertToProperties(cfg.MainConfig, cc.Out, src)
		} else {
			err = convertFromProperties(cfg, cc.Out, src)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func convertFromProperties(cfg *ConvertConfig, w io.Writer, src []byte) error {
	popts, err := cfg.parseOpts()
	if err != nil {
		return err
	}
	doc, err := properties.Parse(bytes.NewReader(src), popts)
	if err != nil {
		return err
	}
	var out []byte
	if cfg.YAML {
		out, err = yaml.Marshal(doc.Map())
	} else {
		out, err = json.MarshalIndent(doc.Map(), "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if !cfg.YAML {
		out = append(out, '\n')
	}
	_, err = w.Write(out)
	return err
}

// convertToProperties reads a JSON or YAML object of sections and writes it
// as a properties document. Section "" holds top-level properties.
func convertToProperties(cfg *MainConfig, w io.Writer, src []byte) error {
	var raw map[string]map[string]any
	if err := yaml.Unmarshal(src, &raw); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	m, err := valuesMap(raw)
	if err != nil {
		return err
	}
	sopts, err := cfg.stringifyOpts()
	if err != nil {
		return err
	}
	out, err := render(properties.FromMap(m), sopts)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// valuesMap converts decoded sections into Values. Scalars become a single
// value and lists become repeated values.
func valuesMap(raw map[string]map[string]any) (map[string]properties.Values, error) {
	m := make(map[string]properties.Values, len(raw))
	for name, section := range raw {
		v := make(properties.Values, len(section))
		for k, x := range section {
			switch x := x.(type) {
			case []any:
				for i, elem := range x {
					s, err := scalar(elem)
					if err != nil {
						return nil, fmt.Errorf("section %q: key %q[%d]: %w", name, k, i, err)
					}
					v[k] = append(v[k], s)
				}
			default:
				s, err := scalar(x)
				if err != nil {
					return nil, fmt.Errorf("section %q: key %q: %w", name, k, err)
				}
				v[k] = []string{s}
			}
		}
		m[name] = v
	}
	return m, nil
}

func scalar(x any) (string, error) {
	switch x := x.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(x), nil
	default:
		return "", fmt.Errorf("unsupported value of type %T", x)
	}
}
