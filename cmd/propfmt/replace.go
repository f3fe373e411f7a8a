// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/yourbase/propcodec/properties"
)

// replaceEnv returns the variables visible to a -replace expression.
func replaceEnv(key, value string, section *properties.Section) map[string]any {
	env := map[string]any{
		"key":     key,
		"value":   value,
		"section": "",
		"global":  section == nil,
	}
	if section != nil {
		env["section"] = section.Name
	}
	return env
}

// compileReplacer compiles src into a replacer. The expression is evaluated
// once per property: nil or false omits the property, true keeps it and a
// string replaces its value.
func compileReplacer(src string) (properties.Replacer, error) {
	prog, err := expr.Compile(src, expr.Env(replaceEnv("", "", nil)))
	if err != nil {
		return nil, fmt.Errorf("compile -replace expression: %w", err)
	}
	return func(key, value string, section *properties.Section) (properties.Replacement, error) {
		out, err := vm.Run(prog, replaceEnv(key, value, section))
		if err != nil {
			return properties.Keep, err
		}
		return replacement(out)
	}, nil
}

func replacement(out any) (properties.Replacement, error) {
	switch out := out.(type) {
	case nil:
		return properties.Omit, nil
	case bool:
		if out {
			return properties.Keep, nil
		}
		return properties.Omit, nil
	case string:
		return properties.Replace(out), nil
	default:
		return properties.Keep, fmt.Errorf("-replace expression returned %T; want string, bool or nil", out)
	}
}
