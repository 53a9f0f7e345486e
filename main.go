package main

import (
	"os"

	"pngscan/cli"
)

func main() {
	os.Exit(cli.Execute())
}
