package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stardrift-dev/stardrift/internal/storage"
)

var flagForce bool

var eraseCmd = &cobra.Command{
	Use:   "erase",
	Short: "Wipe the campaign save slot",
	Long: `Erase the campaign checkpoint. Run history and the high score table
are kept; only the continue slot is cleared.

Examples:
  stardrift erase
  stardrift erase --force`,
	Args: cobra.NoArgs,
	Run:  runErase,
}

func init() {
	eraseCmd.Flags().BoolVar(&flagForce, "force", false, "Skip the confirmation prompt")
}

func runErase(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !flagForce {
		fmt.Print("Erase the campaign save? [y/N] ")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			fmt.Println("Kept.")
			return
		}
	}

	store, err := storage.Open(cfg.DatabasePath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening save database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Erase(); err != nil {
		fmt.Fprintf(os.Stderr, "Error erasing save: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Campaign save erased.")
}
