package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/penquin/internal/core"
	"github.com/vovakirdan/penquin/internal/platform/tui"
	"github.com/vovakirdan/penquin/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start penquin with the level select",
	Long: `Start penquin in interactive menu mode.

Use arrow keys or j/k to pick a level and Enter to play it. The first visit
to a level asks you to type "git init". After a level ends you return to
the level select.

Controls:
  Up/Down/j/k  - Navigate levels
  Enter/Space  - Play level
  Tab          - Run history
  Q            - Quit

Examples:
  penquin menu
  penquin menu --fps 30
  penquin menu --db ./progress.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := e.runtime()

	for {
		menuResult, err := tui.RunMenu(e.prog, cfg)
		if err != nil {
			return err
		}
		cfg.ScreenW = menuResult.Config.ScreenW
		cfg.ScreenH = menuResult.Config.ScreenH

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsStats {
			goBack, err := tui.RunScoreboard(e.store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(menuResult.LevelID)
		if err != nil {
			e.logger.Error("cannot create level", "level", menuResult.LevelID, "err", err)
			continue
		}

		state, err := tui.Run(game, e.store, e.logger, cfg)
		if err != nil {
			return err
		}
		e.logger.Info("level session ended",
			"level", menuResult.LevelID,
			"outcome", state.Outcome,
			"deaths", state.Deaths,
			"coins", state.Score)

		if state.Outcome == core.OutcomeQuit {
			return nil
		}
	}
}
