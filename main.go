package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/gustfall/assets"
	"github.com/milk9111/gustfall/config"
	"github.com/milk9111/gustfall/levels"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "gustfall.toml", "TOML settings file (optional)")
	debug := flag.Bool("debug", false, "enable debug logging and physics outlines")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [level.json]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *debug {
		cfg.Debug = true
	}
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}
	if flag.NArg() == 1 {
		cfg.Level = flag.Arg(0)
		if err := cfg.Validate(); err != nil {
			log.Fatal(err)
		}
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := run(logger, cfg); err != nil {
		logger.Fatal("game exited", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(logger *zap.Logger, cfg config.Config) error {
	dir, err := assets.Default()
	if err != nil {
		return err
	}

	var (
		source  levels.Source = levels.Sample()
		watcher *levels.Watcher
	)
	if cfg.Level != "" {
		file := levels.NewFileSource(cfg.Level)
		source = file
		watcher, err = levels.NewWatcher(cfg.Level)
		if err != nil {
			logger.Warn("level watch disabled", zap.String("level", cfg.Level), zap.Error(err))
		} else {
			defer watcher.Close()
		}
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	game := NewGame(logger, cfg, dir, source, watcher)
	defer game.Dispose()

	logger.Info("starting", zap.String("level", source.Name()), zap.Int("tps", cfg.TPS))
	return ebiten.RunGame(game)
}
