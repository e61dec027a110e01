package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/penquin/internal/platform/tui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the run history board",
	Long: `Opens a table of recorded runs: one row per level with attempts,
clears, best time, deaths and coins, or the most recent attempts (Tab).`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(_ *cobra.Command, _ []string) error {
	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := e.runtime()
	_, err = tui.RunScoreboard(e.store, cfg.ScreenW, cfg.ScreenH)
	return err
}

// formatTicks renders a run time at the configured tick rate.
func formatTicks(ticks int) string {
	rate := flagFPS
	if rate <= 0 {
		rate = 60
	}
	return tui.FormatTicks(ticks, rate)
}
