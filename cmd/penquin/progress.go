package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/penquin/internal/progress"
)

var flagResetRuns bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show saved progress",
	Long: `Shows the unlocked level, the last played level, every saved progress
flag and the most recent runs.

Examples:
  penquin progress
  penquin progress reset
  penquin progress reset --runs`,
	Args: cobra.NoArgs,
	RunE: runProgress,
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget unlocked levels and solved tasks",
	Args:  cobra.NoArgs,
	RunE:  runProgressReset,
}

func init() {
	progressResetCmd.Flags().BoolVar(&flagResetRuns, "runs", false, "Also delete the run history")
	progressCmd.AddCommand(progressResetCmd)
}

var errNoStore = errors.New("progress database is unavailable")

func runProgress(_ *cobra.Command, _ []string) error {
	e, err := openEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()
	if e.store == nil {
		return errNoStore
	}

	fmt.Printf("Unlocked level: %d\n", e.prog.UnlockedLevel())
	if cur := e.prog.CurrentLevel(); cur > 0 {
		fmt.Printf("Last played:    %d\n", cur)
	}
	fmt.Println()

	flags, err := e.store.AllFlags()
	if err != nil {
		return err
	}
	keys, err := e.store.FlagKeys()
	if err != nil {
		return err
	}
	fmt.Println("Flags:")
	if len(keys) == 0 {
		fmt.Println("  (none)")
	}
	for _, k := range keys {
		if k == progress.KeyUnlockedLevel || k == progress.KeyCurrentLevel {
			continue
		}
		fmt.Printf("  %-24s %s\n", k, flags[k])
	}
	fmt.Println()

	runs, err := e.store.RecentRuns(10)
	if err != nil {
		return err
	}
	fmt.Println("Recent runs:")
	if len(runs) == 0 {
		fmt.Println("  (none)")
		return nil
	}
	fmt.Printf("  %-5s  %-8s  %-8s  %-5s  %-6s  %s\n", "Level", "Outcome", "Time", "Coins", "Deaths", "Date")
	for _, r := range runs {
		fmt.Printf("  %-5d  %-8s  %-8s  %-5d  %-6d  %s\n",
			r.Level, r.Outcome, formatTicks(r.Ticks), r.Coins, r.Deaths, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runProgressReset(_ *cobra.Command, _ []string) error {
	e, err := openEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()
	if e.store == nil {
		return errNoStore
	}

	if err := e.store.ClearFlags(); err != nil {
		return err
	}
	fmt.Println("Progress reset: only level 1 is unlocked.")

	if flagResetRuns {
		if err := e.store.ClearRuns(); err != nil {
			return err
		}
		fmt.Println("Run history deleted.")
	}
	return nil
}
