package main

import (
	"os"

	"pulseboard/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
