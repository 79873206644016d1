package application

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-engine/transport/rest"
	"github.com/rocketscienceinc/tictactoe-engine/transport/websocket"
)

// RunApp - runs the application until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	defaultDifficulty, err := engine.ParseDifficulty(conf.Engine.Difficulty)
	if err != nil {
		return fmt.Errorf("invalid engine config: %w", err)
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.Host, conf.Redis.Port)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameRepo := repository.NewGameRepository()
	statsRepo := repository.NewStatsRepository(redisStorage.Connection)

	gameService := service.NewGameService(logger, gameRepo, conf.Engine.StrictHistory, service.SessionTTL{
		Idle:     conf.Session.IdleTTL,
		Finished: conf.Session.FinishedTTL,
	})
	go gameService.RunSweeper(ctx, conf.Session.SweepInterval)
	statsService := service.NewStatsService(statsRepo)
	botService := service.NewBotService(logger, nil, conf.Engine.SearchTimeout)
	gamePlayService := service.NewGamePlayService(logger, gameService, botService, statsService)

	gameUseCase := usecase.NewGameManager(logger, gamePlayService, statsService, defaultDifficulty)

	if conf.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := rest.NewRouter(logger, rest.NewHandlers(logger, gameUseCase))
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}
	router.GET("/games/:id/ws", websocket.New(logger, gameUseCase).Handle)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "difficulty", defaultDifficulty)

	if err = rest.New(logger, conf.HTTPPort, router).Start(ctx); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
