package main

import (
	"os"

	"github.com/AppleEcosystem/ipa-metadata/internal/cli"
)

func main() {
	exitCode := cli.Run(os.Args, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}
