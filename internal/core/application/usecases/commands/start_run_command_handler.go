package commands

import (
	"context"

	"paperround/internal/core/application/runs"
)

// StartRunCommandHandler starts or resumes runs.
type StartRunCommandHandler struct {
	engine RunEngine
}

func NewStartRunCommandHandler(engine RunEngine) StartRunCommandHandler {
	return StartRunCommandHandler{engine: engine}
}

// Handle returns the route's run. An Active run is returned unchanged, so
// repeating the command is safe.
func (h *StartRunCommandHandler) Handle(ctx context.Context, cmd StartRunCommand) (runs.State, error) {
	if err := cmd.Validate(); err != nil {
		return runs.State{}, err
	}
	return h.engine.Start(ctx, cmd.RouteID(), cmd.AccountID())
}
