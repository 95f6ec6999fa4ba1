// cmd/cabrowse/main.go
package main

import (
	"os"

	"github.com/ThanushaGali/CaConnect/cmd/cabrowse/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
