// Package main provides the CLI entrypoint for domain-migrate.
//
// domain-migrate converts 2.0 domain files to the 3.0 format:
//   - Moves slot mappings declared by forms onto the slots, scoped by conditions
//   - Makes implicit entity filling explicit
//   - Backs up the original files and rolls back on failure
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"domain-migrator/internal/cli"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "ignoring .env: %v\n", err)
	}

	os.Exit(cli.Execute(os.Args[1:], afero.NewOsFs(), os.Stdout, os.Stderr))
}
