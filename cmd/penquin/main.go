// penquin is a terminal platformer where every level ends behind a git command.
//
// Usage:
//
//	penquin levels              - List levels and their status
//	penquin play <level>        - Play one level
//	penquin menu                - Level select, loops back after each level
//	penquin progress [reset]    - Show or reset saved progress
//	penquin stats               - Run history board
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--db <path>           - Set database path (default: ~/.penquin/progress.db)
//	--config <path>       - Custom engine config YAML
//	--levels <dir>        - Load levels from a directory instead of the built-in set
//	--log-level <level>   - debug, info, warn or error
//	--difficulty <preset> - easy, normal or hard
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagLevelsDir  string
	flagLogLevel   string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "penquin",
	Short: "penquin - a platformer you finish with git",
	Long: `penquin is a side-scrolling platformer for the terminal. Every level
ends at a UFO that only takes you along once the level's git task is done:
find the glowing file, open the terminal and type the right commands.

Available commands:
  levels    - Show all levels
  play      - Play a specific level directly
  menu      - Interactive level select
  progress  - Show or reset saved progress
  stats     - Run history

Examples:
  penquin menu
  penquin play 1
  penquin play 3 --force
  penquin levels --levels ./my-levels
  penquin stats`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.penquin/progress.db", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of .yaml/.toml levels (default: built-in levels)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "normal", "Difficulty preset: easy, normal, hard")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(statsCmd)
}
