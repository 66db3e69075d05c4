package usecase

import (
	"context"
	"fmt"
	"os"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
	"github.com/Elgenzay/kava.elg.gg/internal/biz/repo"
)

// Logger reports operator-visible messages
type Logger interface {
	LogError(ctx context.Context, msg string)
	LogMessage(ctx context.Context, msg string)
}

// QueueLogger writes log lines into the outbound queue, routed to the
// error or generic channel. The tick scheduler drains the same queue, so
// errors raised while draining come back around as queued messages.
type QueueLogger struct {
	queueRepo      repo.QueueRepo
	guildID        domain.Snowflake
	errorChannelID domain.Snowflake
	logChannelID   domain.Snowflake
	exit           func(int)
}

// NewQueueLogger creates a queue-backed logger
func NewQueueLogger(queueRepo repo.QueueRepo, guildID, errorChannelID, logChannelID domain.Snowflake) *QueueLogger {
	return &QueueLogger{
		queueRepo:      queueRepo,
		guildID:        guildID,
		errorChannelID: errorChannelID,
		logChannelID:   logChannelID,
		exit:           os.Exit,
	}
}

// LogError queues msg for the error channel
func (l *QueueLogger) LogError(ctx context.Context, msg string) {
	fmt.Printf("[Log] error: %s\n", msg)
	l.log(ctx, l.errorChannelID, msg)
}

// LogMessage queues msg for the generic log channel
func (l *QueueLogger) LogMessage(ctx context.Context, msg string) {
	fmt.Printf("[Log] %s\n", msg)
	l.log(ctx, l.logChannelID, msg)
}

// Fatal logs msg to the error channel and terminates the process
func (l *QueueLogger) Fatal(ctx context.Context, msg string) {
	l.LogError(ctx, msg)
	fmt.Printf("[Log] fatal: %s\n", msg)
	l.exit(1)
}

func (l *QueueLogger) log(ctx context.Context, channelID domain.Snowflake, msg string) {
	_, err := l.queueRepo.Enqueue(ctx, &domain.QueuedMessage{
		GuildID:   l.guildID,
		ChannelID: channelID,
		Body:      msg,
	})
	if err != nil {
		fmt.Printf("[Log] Insert error (nonfatal): %v\n", err)
	}
}
