package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type gameUseCase interface {
	NewGame(ctx context.Context, playerID, mark, difficulty string) (*entity.GameState, error)
	GetGame(ctx context.Context, gameID string) (*entity.GameState, error)
	EndGame(ctx context.Context, gameID string) error

	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.GameState, error)
	Undo(ctx context.Context, gameID string) (*entity.GameState, error)
	Redo(ctx context.Context, gameID string) (*entity.GameState, error)
	Analyze(ctx context.Context, gameID string) ([]engine.Result, error)

	GetStats(ctx context.Context, playerID string) (*entity.Stats, error)
	ResetStats(ctx context.Context, playerID string) error
}

type Handlers struct {
	logger  *slog.Logger
	useCase gameUseCase
}

func NewHandlers(logger *slog.Logger, useCase gameUseCase) *Handlers {
	return &Handlers{
		logger:  logger,
		useCase: useCase,
	}
}

func (that *Handlers) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

func (that *Handlers) NewGame(c *gin.Context) {
	var req NewGameRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	state, err := that.useCase.NewGame(c.Request.Context(), req.PlayerID, req.Mark, req.Difficulty)
	if err != nil {
		that.fail(c, "NewGame", err)
		return
	}

	SuccessResponseCode(c, http.StatusCreated, state)
}

func (that *Handlers) GetGame(c *gin.Context) {
	state, err := that.useCase.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.fail(c, "GetGame", err)
		return
	}

	SuccessResponse(c, state)
}

func (that *Handlers) EndGame(c *gin.Context) {
	if err := that.useCase.EndGame(c.Request.Context(), c.Param("id")); err != nil {
		that.fail(c, "EndGame", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MakeTurn plays the human move and answers with the position after the engine reply.
func (that *Handlers) MakeTurn(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	state, err := that.useCase.MakeTurn(c.Request.Context(), c.Param("id"), *req.Cell)
	if err != nil {
		that.fail(c, "MakeTurn", err)
		return
	}

	SuccessResponse(c, state)
}

func (that *Handlers) Undo(c *gin.Context) {
	state, err := that.useCase.Undo(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.fail(c, "Undo", err)
		return
	}

	SuccessResponse(c, state)
}

func (that *Handlers) Redo(c *gin.Context) {
	state, err := that.useCase.Redo(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.fail(c, "Redo", err)
		return
	}

	SuccessResponse(c, state)
}

func (that *Handlers) Analyze(c *gin.Context) {
	gameID := c.Param("id")

	results, err := that.useCase.Analyze(c.Request.Context(), gameID)
	if err != nil {
		that.fail(c, "Analyze", err)
		return
	}

	SuccessResponse(c, AnalysisResponse{GameID: gameID, Moves: results})
}

func (that *Handlers) GetStats(c *gin.Context) {
	stats, err := that.useCase.GetStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.fail(c, "GetStats", err)
		return
	}

	SuccessResponse(c, newStatsResponse(stats))
}

func (that *Handlers) ResetStats(c *gin.Context) {
	if err := that.useCase.ResetStats(c.Request.Context(), c.Param("id")); err != nil {
		that.fail(c, "ResetStats", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// statusClientClosedRequest is the nginx convention for a request the client gave up on.
const statusClientClosedRequest = 499

func (that *Handlers) fail(c *gin.Context, method string, err error) {
	code := statusCode(err)

	switch {
	case code == statusClientClosedRequest:
		that.logger.Info("request canceled by client", "method", method, "path", c.FullPath())
	case code >= http.StatusInternalServerError:
		that.logger.Error("request failed", "method", method, "path", c.FullPath(), "error", err)
	}

	ErrorResponse(c, code, err.Error())
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrIndexOutOfRange),
		errors.Is(err, apperror.ErrInvalidMark),
		errors.Is(err, apperror.ErrInvalidBoard),
		errors.Is(err, apperror.ErrUnknownDifficulty):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrOccupiedCell),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrPreconditionViolation):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}
