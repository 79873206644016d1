package websocket

import "context"

func (that *Server) handleState(ctx context.Context, gameID string, _ *Payload) (Payload, error) {
	state, err := that.useCase.GetGame(ctx, gameID)
	if err != nil {
		return Payload{}, err
	}

	return Payload{Game: state}, nil
}

func (that *Server) handleTurn(ctx context.Context, gameID string, request *Payload) (Payload, error) {
	if request.Cell == nil {
		return Payload{}, errMissingCell
	}

	state, err := that.useCase.MakeTurn(ctx, gameID, *request.Cell)
	if err != nil {
		return Payload{}, err
	}

	return Payload{Game: state}, nil
}

func (that *Server) handleUndo(ctx context.Context, gameID string, _ *Payload) (Payload, error) {
	state, err := that.useCase.Undo(ctx, gameID)
	if err != nil {
		return Payload{}, err
	}

	return Payload{Game: state}, nil
}

func (that *Server) handleRedo(ctx context.Context, gameID string, _ *Payload) (Payload, error) {
	state, err := that.useCase.Redo(ctx, gameID)
	if err != nil {
		return Payload{}, err
	}

	return Payload{Game: state}, nil
}

func (that *Server) handleAnalysis(ctx context.Context, gameID string, _ *Payload) (Payload, error) {
	results, err := that.useCase.Analyze(ctx, gameID)
	if err != nil {
		return Payload{}, err
	}

	return Payload{Analysis: results}, nil
}
