package services

import (
	"context"
	"log/slog"
)

// Event types published to the message broker.
const (
	EventUserRegistered          = "user.registered"
	EventNutritionGoalActivated  = "nutrition_goal.activated"
	EventWorkoutSessionCompleted = "workout_session.completed"
)

// EventPublisher delivers domain events. Publishing is best effort: a
// failure is logged and never fails the request that caused it.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

func publish(ctx context.Context, p EventPublisher, eventType string, payload interface{}) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, eventType, payload); err != nil {
		slog.WarnContext(ctx, "failed to publish event",
			slog.String("event", eventType),
			slog.String("error", err.Error()),
		)
	}
}
