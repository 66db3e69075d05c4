package service

import "context"

// Reporter is the error-reporting boundary for ticks and events.
// usecase.QueueLogger implements it.
type Reporter interface {
	LogError(ctx context.Context, msg string)
	LogMessage(ctx context.Context, msg string)
	Fatal(ctx context.Context, msg string)
}
