package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/penquin/internal/games/penquin"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all levels",
	Long: `Shows every level with its lock state and whether its git task is done.
Levels that fail to load are listed with their error.`,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	e, err := openEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	entries := e.catalog.Entries()

	maxTitleLen := len("Title")
	for _, entry := range entries {
		maxTitleLen = max(maxTitleLen, len(entry.Title()))
	}

	fmt.Printf("  %-3s  %-*s  %-9s  %s\n", "ID", maxTitleLen, "Title", "Status", "Task")
	fmt.Printf("  %-3s  %-*s  %-9s  %s\n", "--", maxTitleLen, "-----", "------", "----")

	for _, entry := range entries {
		status := "open"
		switch {
		case entry.Err != nil:
			status = "broken"
		case !e.prog.IsUnlocked(entry.ID):
			status = "locked"
		}

		task := "-"
		switch {
		case entry.Err != nil:
			task = entry.Err.Error()
		case e.prog.TaskCompleted(entry.ID):
			task = "committed"
		case entry.Map != nil:
			task = fmt.Sprintf("%d step(s)", len(penquin.ScriptFor(entry.Map)))
		}

		fmt.Printf("  %-3d  %-*s  %-9s  %s\n", entry.ID, maxTitleLen, entry.Title(), status, task)
	}

	fmt.Println()
	fmt.Println("Run 'penquin play <id>' to play a level or 'penquin menu' for the level select.")
	return nil
}
