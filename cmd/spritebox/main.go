// spritebox is a tiny two-color software rasterizer: a walking sprite in a
// 320x180 indexed pixel buffer, shown in the terminal, over SSH or in a window.
//
// Usage:
//
//	spritebox play               - Walk the sprite in this terminal
//	spritebox play --backend sdl - Walk the sprite in an SDL window (build with -tags sdl)
//	spritebox backends           - List compiled-in backends
//	spritebox serve              - Start SSH server for remote play
//	spritebox inspect [sprite]   - Show a sprite's alpha mask and frames
//	spritebox sessions           - List recorded sessions
//	spritebox export <id> <png>  - Write a stored snapshot as PNG
//	spritebox config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.spritebox, ./configs, embedded)
//	--db <path>         - Session database (default: ~/.spritebox/sessions.db)
//	--fps <rate>        - Override the tick rate
//	--log-level <level> - debug, info, warn, error
//	--log-file <path>   - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/spritebox/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagFPS      int
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "spritebox",
	Short: "spritebox - a two-color software rasterizer",
	Long: `spritebox renders a walking sprite into a 320x180 two-color pixel buffer
and presents it in your terminal, over SSH, or in an SDL window.

Available commands:
  play      - Walk the sprite locally
  backends  - List presentation backends
  serve     - Start SSH server for remote play
  inspect   - Show a sprite's alpha mask
  sessions  - List recorded sessions
  export    - Export a snapshot as PNG
  config    - Print the effective configuration

Examples:
  spritebox play
  spritebox play --sprite ./hero.png
  spritebox serve --ssh :2222
  spritebox export 3 frame.png`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.spritebox/sessions.db", "Path to session database")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(backendsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
}

// settings is the state shared by all commands: configuration and logger.
type settings struct {
	cfg     config.Config
	source  string
	logger  *log.Logger
	logFile io.Closer
}

// loadSettings loads the configuration, applies flag overrides and builds the logger.
// When quietTerminal is set and no log file is given, only errors reach stderr.
func loadSettings(quietTerminal bool) (*settings, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagFPS > 0 {
		cfg.Loop.TickRate = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	s := &settings{cfg: cfg, source: source}

	var w io.Writer = os.Stderr
	if flagLogFile != "" {
		path, err := config.ExpandHome(flagLogFile)
		if err != nil {
			return nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		s.logFile = f
	} else if quietTerminal && level < log.ErrorLevel {
		level = log.ErrorLevel
	}

	s.logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "spritebox",
		Level:           level,
	})
	s.logger.Debug("configuration loaded", "source", source)
	return s, nil
}

// Close releases the log file, if any.
func (s *settings) Close() {
	if s.logFile != nil {
		s.logFile.Close()
	}
}

// mustSettings loads settings or exits with status 1.
func mustSettings(quietTerminal bool) *settings {
	s, err := loadSettings(quietTerminal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return s
}
