// stardrift is a terminal vertical shooter with a turn-based battle layer.
//
// Usage:
//
//	stardrift play      - Fly the campaign in the local terminal
//	stardrift serve     - Host the campaign over SSH
//	stardrift scores    - Browse finished run history
//	stardrift erase     - Wipe the campaign save slot
//
// Global flags:
//
//	--config <path>      - Config file (default: search standard locations)
//	--db <path>          - Save database path
//	--fps <rate>         - Simulation and redraw rate
//	--difficulty <name>  - easy, normal, or hard
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stardrift-dev/stardrift/internal/config"
)

var (
	flagConfig     string
	flagDBPath     string
	flagFPS        int
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stardrift",
	Short: "Stardrift - a vertical shooter for your terminal",
	Long: `Stardrift is a terminal rendition of a vertical-scrolling shooter.
Escort the colony ship MERIDIAN through three hostile zones; contact with
an enemy drops into a turn-based battle where levels, weapons, and items
decide the exchange.

Examples:
  stardrift play
  stardrift play --difficulty hard
  stardrift serve --ssh :2222
  stardrift scores`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to save database")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Simulation rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(eraseCmd)
}

// loadConfig resolves the config file and layers the global flags on top.
// Flags left at their zero value defer to the file.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagFPS != 0 {
		cfg.Display.FPS = flagFPS
	}
	if flagDifficulty != "" {
		cfg.Game.Difficulty = config.DifficultyPreset(flagDifficulty)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
