package events

import (
	"context"

	"go.uber.org/zap"
)

// LoggingSubscriber writes every domain event to the structured log.
type LoggingSubscriber struct {
	logger *zap.Logger
}

// NewLoggingSubscriber creates the subscriber.
func NewLoggingSubscriber(logger *zap.Logger) *LoggingSubscriber {
	return &LoggingSubscriber{logger: logger}
}

// RegisterHandlers subscribes to all event types.
func (l *LoggingSubscriber) RegisterHandlers(dispatcher Dispatcher) {
	if dispatcher == nil {
		return
	}
	for _, eventType := range []EventType{
		EventUserCreated,
		EventIssueCreated,
		EventIssueAssigned,
		EventIssueStatusChanged,
	} {
		dispatcher.Subscribe(eventType, l.handle)
	}
}

func (l *LoggingSubscriber) handle(_ context.Context, event Event) error {
	l.logger.Info("domain event",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("issue_id", event.IssueID),
		zap.String("actor_user_id", event.Actor.UserID),
		zap.Any("payload", event.Payload))
	return nil
}
