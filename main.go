package main

import (
	"os"

	"livery-audit/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
