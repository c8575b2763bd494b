package commands

import "context"

type RefreshHolidaysCommandHandler struct {
	refresher HolidayRefresher
}

func NewRefreshHolidaysCommandHandler(refresher HolidayRefresher) RefreshHolidaysCommandHandler {
	return RefreshHolidaysCommandHandler{refresher: refresher}
}

// Handle returns how many holiday dates were loaded.
func (h *RefreshHolidaysCommandHandler) Handle(ctx context.Context, cmd RefreshHolidaysCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	return h.refresher.Refresh(ctx)
}
