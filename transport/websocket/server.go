// Package websocket serves a live channel for one game: the client sends
// actions and receives the resulting game state after each of them.
package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 1024
)

var errMissingCell = errors.New("cell is required")

type gameUseCase interface {
	GetGame(ctx context.Context, gameID string) (*entity.GameState, error)
	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.GameState, error)
	Undo(ctx context.Context, gameID string) (*entity.GameState, error)
	Redo(ctx context.Context, gameID string) (*entity.GameState, error)
	Analyze(ctx context.Context, gameID string) ([]engine.Result, error)
}

type handlerFunc func(ctx context.Context, gameID string, payload *Payload) (Payload, error)

type Server struct {
	logger  *slog.Logger
	useCase gameUseCase

	upgrader websocket.Upgrader
	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, useCase gameUseCase) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		useCase: useCase,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}

	server.handlers = map[string]handlerFunc{
		actionState:    server.handleState,
		actionTurn:     server.handleTurn,
		actionUndo:     server.handleUndo,
		actionRedo:     server.handleRedo,
		actionAnalysis: server.handleAnalysis,
	}

	return server
}

// Handle upgrades GET /games/:id/ws. The game must exist before the upgrade.
func (that *Server) Handle(c *gin.Context) {
	log := that.logger.With("method", "Handle")
	gameID := c.Param("id")

	state, err := that.useCase.GetGame(c.Request.Context(), gameID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}

	conn, err := that.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)

	log.Info("WebSocket connection established", "gameID", gameID)

	if err = that.send(conn, actionState, Payload{Game: state}); err != nil {
		log.Error("failed to send initial state", "error", err)
		return
	}

	if err = that.handleMessages(c.Request.Context(), conn, gameID); err != nil {
		log.Info("WebSocket connection closed", "gameID", gameID, "reason", err)
	}
}

func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, gameID string) error {
	log := that.logger.With("method", "handleMessages", "gameID", gameID)

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			if err := that.send(conn, actionError, Payload{Error: "unknown action " + message.Action}); err != nil {
				return err
			}
			continue
		}

		var request Payload
		if len(message.Payload) > 0 {
			if err := json.Unmarshal(message.Payload, &request); err != nil {
				if err = that.send(conn, message.Action, Payload{Error: "invalid payload"}); err != nil {
					return err
				}
				continue
			}
		}

		response, err := handler(ctx, gameID, &request)
		if err != nil {
			log.Debug("action refused", "action", message.Action, "error", err)
			response = Payload{Error: err.Error()}
		}

		if err = that.send(conn, message.Action, response); err != nil {
			return err
		}
	}
}

func (that *Server) send(conn *websocket.Conn, action string, payload Payload) error {
	message, err := newMessage(action, payload)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if err = conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = conn.WriteJSON(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
