package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stardrift-dev/stardrift/internal/game"
	"github.com/stardrift-dev/stardrift/internal/platform/tui"
	"github.com/stardrift-dev/stardrift/internal/storage"
)

var flagZone int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Fly the campaign",
	Long: `Start the campaign in the local terminal.

Controls:
  Arrows/WASD - Move
  Space/Z     - Fire / confirm
  X           - Focus (slow, precise movement)
  E / Q       - Cycle weapons
  Esc/B       - Back / item menu
  P           - Pause
  Ctrl+C      - Quit

Progress autosaves at each zone start; continue from the title screen.

Examples:
  stardrift play
  stardrift play --difficulty easy
  stardrift play --zone 1       # practice run from the asteroid belt
  stardrift play --config ./stardrift.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagZone, "zone", 0, "Start zone for practice runs (0-2)")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.Game.StartZone = flagZone
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The playfield plus frame and help bar needs a minimum terminal; warn
	// up front instead of rendering a clipped mess.
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		if w < game.ScreenCols+2 || h < game.ScreenRows+3 {
			fmt.Fprintf(os.Stderr, "Warning: terminal %dx%d is smaller than the %dx%d playfield\n",
				w, h, game.ScreenCols+2, game.ScreenRows+3)
		}
	}

	store, err := storage.Open(cfg.DatabasePath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open save database: %v\n", err)
		// Continue without storage; the campaign just loses checkpoints.
		store = nil
	}

	runErr := tui.Run(store, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
