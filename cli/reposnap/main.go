package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
)

const (
	name        string = "reposnap"
	description string = "Builds dated corpus snapshots from git repositories."
)

var (
	version string
	build   string
)

var parser = flags.NewNamedParser(name, flags.Default)

func init() {
	parser.LongDescription = description
}

func main() {
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}

			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "%s: %s\n", name, err)
		os.Exit(1)
	}
}
