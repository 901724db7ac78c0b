package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/spritebox/internal/platform/tui"
	"github.com/vovakirdan/spritebox/internal/storage"
)

var (
	flagLimit int
	flagPlain bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded sessions",
	Long: `Show the most recent play sessions, newest first.

On a terminal the list is an interactive table; use --plain for text output.

Examples:
  spritebox sessions
  spritebox sessions --limit 50 --plain`,
	Args: cobra.NoArgs,
	Run:  runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of sessions to show")
	sessionsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print plain text instead of the table view")
}

func runSessions(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	sessions, err := store.RecentSessions(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunSessions(sessions, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'spritebox play' to record one.")
		return
	}

	// Print header
	header := []string{"ID", "Backend", "User", "Started", "Frames", "FPS", "Final"}
	fmt.Printf("  %-8s  %-7s  %-10s  %-12s  %-8s  %-6s  %s\n",
		header[0], header[1], header[2], header[3], header[4], header[5], header[6])

	for _, row := range tui.SessionRows(sessions) {
		fmt.Printf("  %-8s  %-7s  %-10s  %-12s  %-8s  %-6s  %s\n",
			row[0], row[1], row[2], row[3], row[4], row[5], row[6])
	}
}
