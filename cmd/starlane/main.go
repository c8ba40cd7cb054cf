// Command starlane generates a random sector and routes over it. It exists
// to exercise the router end to end from a shell.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
