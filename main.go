// Command tictactoe-engine serves human-versus-engine tic-tac-toe games over
// HTTP and websocket. The engine plays perfectly on the hard level, games live
// in memory and per-player scoreboards are kept in Redis.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	app "github.com/rocketscienceinc/tictactoe-engine/internal"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := initConfig()
	logger := initLogger(conf)

	logger.Info("engine server configured",
		"difficulty", conf.Engine.Difficulty,
		"strictHistory", conf.Engine.StrictHistory,
		"searchTimeout", conf.Engine.SearchTimeout,
		"sessionIdleTTL", conf.Session.IdleTTL,
	)

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initConfig reads config.yml from the working directory; environment variables override it.
func initConfig() *config.Config {
	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, "config.yml"))
}

// initLogger falls back to info when log-level is not one of debug, info, warn or error.
func initLogger(conf *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(conf.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
