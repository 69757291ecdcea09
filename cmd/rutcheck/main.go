package main

import (
	"errors"
	"fmt"
	"os"

	"jornada/internal/cli"
)

func main() {
	if err := cli.RootCmd().Execute(); err != nil {
		if !errors.Is(err, cli.ErrInvalidIdentifiers) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
