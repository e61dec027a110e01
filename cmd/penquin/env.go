package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/penquin/internal/config"
	"github.com/vovakirdan/penquin/internal/core"
	"github.com/vovakirdan/penquin/internal/games/penquin"
	"github.com/vovakirdan/penquin/internal/games/penquin/levels"
	"github.com/vovakirdan/penquin/internal/progress"
	"github.com/vovakirdan/penquin/internal/storage"
)

// env holds everything a command needs: config, logger, levels and progress.
type env struct {
	cfg     config.PenquinConfig
	logger  *log.Logger
	logFile *os.File
	catalog *levels.Catalog
	store   *storage.Store
	prog    *progress.Progress
}

// openEnv builds the command environment from the global flags.
// Interactive commands log to ~/.penquin/penquin.log so log lines do not
// tear the alternate screen.
func openEnv(interactive bool) (*env, error) {
	e := &env{}

	var out io.Writer = os.Stderr
	if interactive {
		if f, err := openLogFile(); err == nil {
			e.logFile = f
			out = f
		} else {
			out = io.Discard
		}
	}
	e.logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "penquin",
	})
	if lvl, err := log.ParseLevel(flagLogLevel); err == nil {
		e.logger.SetLevel(lvl)
	} else {
		e.logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		e.logger.Warn("using default engine config", "err", err)
	}
	config.ApplyPreset(&cfg, config.ParsePreset(flagDifficulty))
	e.cfg = cfg

	e.catalog, err = levels.Load(flagLevelsDir, e.logger)
	if err != nil {
		e.Close()
		return nil, err
	}
	if e.catalog.Len() == 0 {
		e.Close()
		return nil, fmt.Errorf("no levels found in %s", flagLevelsDir)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Progress still works for this session, it just is not saved.
		e.logger.Warn("progress database unavailable", "path", flagDBPath, "err", err)
		e.prog = progress.New(nil, e.logger)
	} else {
		e.store = store
		e.prog = progress.New(store, e.logger)
	}

	penquin.RegisterCatalog(e.catalog)
	penquin.Setup(penquin.Options{
		Config:   e.cfg,
		Progress: e.prog,
		Logger:   e.logger,
		Intro:    true,
	})

	return e, nil
}

func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".penquin")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "penquin.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

// runtime returns the runtime config sized to the current terminal.
func (e *env) runtime() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	return cfg
}

// Close releases the database and the log file.
func (e *env) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.logger.Warn("closing database", "err", err)
		}
		e.store = nil
	}
	if e.logFile != nil {
		e.logFile.Close()
		e.logFile = nil
	}
}
