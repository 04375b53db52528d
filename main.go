package main

import (
	"flag"
	"log/slog"

	"github.com/soocke/voice-target-go/app"
	"github.com/soocke/voice-target-go/config"
)

func main() {
	cfgPath := flag.String("config", "voice-target.json", "path to config file")
	debugFlag := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		NewLogger(slog.LevelInfo).Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}
	if *debugFlag {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)

	application := app.NewApp("Voice Target", cfg, logger)
	application.Start()
}
