// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// propfmt formats, queries and converts .properties files.
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	ctx := context.Background()
	cli.MainContext(ctx, MainCommand(ctx))
}
