// Package main implements portfolioctl, a command-line client that edits a
// portfolio through a running portfolio server.
package main

import (
	"os"
)

var version = "dev"

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
