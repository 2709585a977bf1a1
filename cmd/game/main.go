package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Shoot-Or-Die/internal/audio"
	"github.com/Garsondee/Shoot-Or-Die/internal/client"
	"github.com/Garsondee/Shoot-Or-Die/internal/game"
	"github.com/Garsondee/Shoot-Or-Die/internal/scores"
)

func main() {
	levelName := flag.String("level", "gauntlet", "level to play")
	player := flag.String("player", os.Getenv("USER"), "name recorded with winning runs")
	scoreFile := flag.String("scores", "scores.json", "local JSON score file")
	server := flag.String("server", "", "scoreboard base URL; overrides -scores")
	mute := flag.Bool("mute", false, "disable sound")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "shoot-or-die",
	})
	if *debug {
		logger.SetLevel(log.DebugLevel)
	}

	lvl, err := game.LoadLevel(*levelName)
	if err != nil {
		logger.Fatal("failed to load level", "level", *levelName, "error", err, "available", game.LevelNames())
	}

	var store scores.Store
	if *server != "" {
		store = scores.NewHTTPStore(*server)
		logger.Info("submitting scores to server", "url", *server)
	} else if *scoreFile != "" {
		js, err := scores.NewJSONStore(*scoreFile)
		if err != nil {
			logger.Warn("scores disabled", "error", err)
		} else {
			store = js
		}
	}
	if store != nil {
		defer store.Close()
	}

	var sound *audio.SoundManager
	if !*mute {
		sound = audio.NewSoundManager(logger)
		if err := sound.Initialize(); err != nil {
			logger.Warn("audio unavailable", "error", err)
			sound = nil
		} else {
			defer sound.Cleanup()
		}
	}

	c := client.New(client.Config{
		Level:  lvl,
		Player: *player,
		Store:  store,
		Sound:  sound,
		Logger: logger,
	})

	ebiten.SetWindowTitle(lvl.Config.Title)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	if err := ebiten.RunGame(c); err != nil {
		logger.Fatal("game exited", "error", err)
	}
}
