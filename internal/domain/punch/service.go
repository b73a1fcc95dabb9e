package punch

import "context"

type PunchService interface {
	// SubmitPunch validates the kind against today's state and records it
	SubmitPunch(ctx context.Context, req SubmitPunchRequest) (PunchResponse, error)

	// ListEvents returns the chronological event log for a date range
	ListEvents(ctx context.Context, filter ListPunchFilter) (ListPunchResponse, error)

	// GetTodayStatus returns today's state and the next allowed punch
	GetTodayStatus(ctx context.Context) (TodayStatusResponse, error)

	GetEvent(ctx context.Context, id string) (PunchResponse, error)
}
