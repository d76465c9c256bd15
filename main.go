// SPDX-License-Identifier: MPL-2.0

package main

import cmd "makehelp/cmd/makehelp"

func main() {
	cmd.Execute()
}
