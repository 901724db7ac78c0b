package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/spritebox/internal/platform/tui"
	"github.com/vovakirdan/spritebox/internal/sim"
	"github.com/vovakirdan/spritebox/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the spritebox SSH server",
	Long: `Start an SSH server that lets users connect and walk the sprite.

Each SSH connection gets its own frame loop, player and pixel buffer.
Sessions and snapshots are stored in the server's database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.spritebox/host_key

Examples:
  spritebox serve                           # Listen on :23234 with auto-generated key
  spritebox serve --ssh :2222               # Listen on port 2222
  spritebox serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	s := mustSettings(false)
	defer s.Close()

	rt := s.cfg.Runtime()

	// Fail fast on a bad sprite instead of on every connection
	probe, err := sim.LoadPlayer(rt.Player)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	probe.Close()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		s.logger.Warn("could not open session database", "error", err)
		// Continue without storage
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Runtime:     rt,
		Blocks:      s.cfg.Blocks(),
		Store:       store,
		Logger:      s.logger.WithPrefix("spritebox-ssh"),
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting spritebox SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
