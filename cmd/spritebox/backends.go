package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/spritebox/internal/registry"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List available presentation backends",
	Long: `Shows the backends compiled into this binary.
The SDL window backend is only present when built with -tags sdl.`,
	Args: cobra.NoArgs,
	Run:  runBackends,
}

func runBackends(_ *cobra.Command, _ []string) {
	backends := registry.List()

	if len(backends) == 0 {
		fmt.Println("No backends available.")
		return
	}

	fmt.Println("Available backends:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, b := range backends {
		if len(b.Name) > maxNameLen {
			maxNameLen = len(b.Name)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")

	for _, b := range backends {
		fmt.Printf("  %-*s  %s\n", maxNameLen, b.Name, b.Title)
	}

	fmt.Println()
	fmt.Println("Run 'spritebox play --backend <name>' to use one.")
}
