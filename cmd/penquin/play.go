package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/penquin/internal/core"
	"github.com/vovakirdan/penquin/internal/games/penquin"
	"github.com/vovakirdan/penquin/internal/platform/tui"
	"github.com/vovakirdan/penquin/internal/registry"
)

var (
	flagForce   bool
	flagNoIntro bool
)

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Play a level",
	Long: `Start playing the specified level.

The level must be unlocked unless --force is given.

Controls:
  Left/Right, A/D  - Walk
  Space/Up/W       - Jump
  Esc              - Back (closes the terminal while it is open)
  Enter            - Run the typed command
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Examples:
  penquin play 1
  penquin play 4 --force
  penquin play 2 --difficulty easy
  penquin play 1 --levels ./my-levels`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagForce, "force", false, "Play even if the level is locked")
	playCmd.Flags().BoolVar(&flagNoIntro, "no-intro", false, "Skip the UFO drop at level start")
}

func runPlay(_ *cobra.Command, args []string) error {
	level, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("level must be a number, got %q", args[0])
	}

	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	id := strconv.Itoa(level)
	if !registry.Exists(id) {
		return fmt.Errorf("unknown level %d (run 'penquin levels' to see available levels)", level)
	}
	if !e.prog.IsUnlocked(level) && !flagForce {
		return fmt.Errorf("level %d is locked: finish level %d first or use --force", level, e.prog.UnlockedLevel())
	}

	if flagNoIntro {
		penquin.Setup(penquin.Options{
			Config:   e.cfg,
			Progress: e.prog,
			Logger:   e.logger,
		})
	}

	game, err := registry.Create(id)
	if err != nil {
		return err
	}

	state, err := tui.Run(game, e.store, e.logger, e.runtime())
	if err != nil {
		return fmt.Errorf("running level %d: %w", level, err)
	}

	if pg, ok := game.(*penquin.Game); ok && pg.Err() != nil {
		return fmt.Errorf("level %d: %w", level, pg.Err())
	}
	if state.Outcome == core.OutcomeComplete {
		fmt.Printf("Level %d complete in %s with %d coins.\n", level, tui.FormatTicks(state.Ticks, e.runtime().TickRate), state.Score)
		if registry.Exists(strconv.Itoa(level + 1)) {
			fmt.Printf("Level %d unlocked: penquin play %d\n", level+1, level+1)
		}
	}
	return nil
}
