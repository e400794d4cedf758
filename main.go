// SPDX-License-Identifier: MPL-2.0

package main

import (
	cmd "docport-cli/cmd/docport"
)

func main() {
	cmd.Execute()
}
