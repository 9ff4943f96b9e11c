package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/idforge/identity-server/internal/model"
)

var _ model.EventPublisher = (*EventRepository)(nil)

// EventRepository implements model.EventPublisher as an outbox table.
// The service only appends; a relay process drains the table to the
// broker. Appends happen after the identity commit, outside any
// transaction, so downstream availability never blocks signup.
type EventRepository struct {
	db DB
}

func NewEventRepository(db DB) *EventRepository {
	return &EventRepository{
		db: db,
	}
}

func (r *EventRepository) Publish(ctx context.Context, topic string, event model.IdentityCreated) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	query := `INSERT INTO identity_events (id, topic, payload, created_at)
			  VALUES ($1, $2, $3, $4)`

	if _, err := r.db.Exec(ctx, query, uuid.New(), topic, payload, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}

	return nil
}
