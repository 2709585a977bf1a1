package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/Garsondee/Shoot-Or-Die/internal/audio"
	"github.com/Garsondee/Shoot-Or-Die/internal/game"
	"github.com/Garsondee/Shoot-Or-Die/internal/scores"
	"github.com/Garsondee/Shoot-Or-Die/internal/tui"
)

func main() {
	levelName := flag.String("level", "courtyard", "level to play")
	player := flag.String("player", os.Getenv("USER"), "name recorded with winning runs")
	scoreFile := flag.String("scores", "scores.json", "local JSON score file")
	server := flag.String("server", "", "scoreboard base URL; overrides -scores")
	logFile := flag.String("log", "shoot-or-die.log", "log file (the terminal is busy drawing)")
	sound := flag.Bool("sound", false, "enable sound effects")
	flag.Parse()

	f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "term",
	})

	lvl, err := game.LoadLevel(*levelName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v (levels: %v)\n", err, game.LevelNames())
		os.Exit(1)
	}

	var store scores.Store
	if *server != "" {
		store = scores.NewHTTPStore(*server)
	} else if *scoreFile != "" {
		if js, err := scores.NewJSONStore(*scoreFile); err != nil {
			logger.Warn("scores disabled", "error", err)
		} else {
			store = js
		}
	}
	if store != nil {
		defer store.Close()
	}

	var sm *audio.SoundManager
	if *sound {
		sm = audio.NewSoundManager(logger)
		if err := sm.Initialize(); err != nil {
			logger.Warn("audio unavailable", "error", err)
			sm = nil
		} else {
			defer sm.Cleanup()
		}
	}

	t, err := tui.New(tui.Config{
		Level:  lvl,
		Player: *player,
		Store:  store,
		Sound:  sm,
		Logger: logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open terminal: %v\n", err)
		os.Exit(1)
	}
	t.Run()
	t.Close()
	logger.Info("exited", "level", lvl.Config.Name)
}
