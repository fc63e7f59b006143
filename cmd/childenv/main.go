// SPDX-License-Identifier: MPL-2.0

// Command childenv launches processes, scripts, and inspection views under
// a rewritten environment driven by CHILD_ENV_RULES-style rule strings.
package main

import "github.com/biglinux/libchildenv/internal/cli"

func main() {
	cli.Execute()
}
