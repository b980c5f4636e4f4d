package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stardrift-dev/stardrift/internal/platform/tui"
	"github.com/stardrift-dev/stardrift/internal/storage"
)

var flagPlain bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Browse finished run history",
	Long: `Open the interactive run history viewer.

Tab toggles between the best runs and the most recent ones. With --plain
the top 10 runs print to stdout instead.

Examples:
  stardrift scores
  stardrift scores --plain`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the top runs instead of the interactive viewer")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.DatabasePath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening save database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if !flagPlain {
		if err := tui.RunScoreboard(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runs, err := store.TopRuns(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading run history: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No finished runs yet.")
		fmt.Println()
		fmt.Println("Fly 'stardrift play' to put the first one on the board.")
		return
	}

	fmt.Println("Best Runs")
	fmt.Println()
	fmt.Printf("  %-4s  %-8s  %-8s  %-3s  %-5s  %-6s  %s\n",
		"Rank", "Outcome", "Score", "Lv", "Zones", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-3s  %-5s  %-6s  %s\n",
		"----", "-------", "-----", "--", "-----", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8s  %-8d  %-3d  %-5d  %02d:%02d  %s\n",
			i+1, r.Outcome, r.Score, r.Level, r.ZonesCleared,
			r.PlayTime/60, r.PlayTime%60,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, err := store.BestScore(); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	}
}
