package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/vaultops/syspass-cli/internal/cli"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "0.1.0"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgHiRed).Sprint("✖")+" "+err.Error())
		os.Exit(1)
	}
}
