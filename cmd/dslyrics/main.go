// Package main provides the dslyrics lyric sheet analyzer CLI.
package main

import (
	"os"

	"github.com/Jayk56/dslyrics/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
