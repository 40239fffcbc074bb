package main

import (
	"os"

	"github.com/jakoblorz/drupal-init/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
