// SPDX-License-Identifier: MPL-2.0

// Command gengen is the generator build driver with the sample generators
// linked in.
package main

import (
	cmd "github.com/gengen/gengen/cmd/gengen"
	_ "github.com/gengen/gengen/internal/generators"
)

func main() {
	cmd.Execute()
}
