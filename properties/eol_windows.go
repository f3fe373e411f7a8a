// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

// DefaultEOL is the line terminator Stringify uses when none is configured.
const DefaultEOL = "\r\n"
