package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/open-cli-collective/zendown/internal/cmd/root"
)

func main() {
	cmd := root.NewCmdRoot()
	if err := cmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
