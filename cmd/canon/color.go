package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// useColor resolves --color against the stream the output goes to.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	switch colorFlag {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

// applyColorFlag sets the global default used by fatih/color.
func applyColorFlag(cmd *cobra.Command) {
	color.NoColor = !useColor(cmd, os.Stdout)
}
