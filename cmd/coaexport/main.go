package main

import (
	"os"

	"github.com/MrJamesThe3rd/ledgerbridge/cmd/coaexport/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
