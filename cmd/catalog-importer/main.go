// Package main imports YAML part/color catalogs into the SQLite catalog
// database used by the brickscope generator.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/brickscope/brickscope/internal/platform/config"
	"github.com/brickscope/brickscope/internal/tools/importer"
)

func main() {
	cfg, err := importer.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	if err := importer.Run(context.Background(), cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}
