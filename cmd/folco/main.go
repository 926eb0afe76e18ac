package main

import (
	"os"

	"github.com/esimov/folco/cmd/folco/commands"
)

// Version indicates the current build version.
var Version string

func main() {
	if err := commands.Execute(Version); err != nil {
		os.Exit(1)
	}
}
