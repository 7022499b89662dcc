package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bazarhat/backend/internal/domain/enums"
	"github.com/bazarhat/backend/internal/domain/model"
)

var (
	ErrEmailNotFound = errors.New("email item not found")
	// ErrEmailStateConflict means the requested transition does not apply to
	// the item's current state.
	ErrEmailStateConflict = errors.New("email item state conflict")
)

type EmailRepo struct {
	pool *pgxpool.Pool
}

func NewEmailRepo(pool *pgxpool.Pool) *EmailRepo {
	return &EmailRepo{pool: pool}
}

// Enqueue inserts the item and its creation event inside one transaction so
// the event log never lags the item.
func (r *EmailRepo) Enqueue(ctx context.Context, item model.EmailItem, actorID *uuid.UUID) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var id int64
	err := WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
INSERT INTO email_items (recipient, subject, body, current_state, created_at, updated_at)
VALUES ($1, $2, $3, $4, NOW(), NOW())
RETURNING id
`, item.Recipient, item.Subject, item.Body, enums.EmailStateEnqueued).Scan(&id); err != nil {
			return fmt.Errorf("insert email item: %w", err)
		}

		if _, err := tx.Exec(ctx, `
INSERT INTO email_events (email_item_id, event_type, actor_id, created_at)
VALUES ($1, $2, $3, NOW())
`, id, enums.EmailEventCreated, actorID); err != nil {
			return fmt.Errorf("insert email event: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// Transition moves the item from one state to the next and appends the
// matching event. The WHERE clause on current_state makes the transition
// first-writer-wins.
func (r *EmailRepo) Transition(ctx context.Context, id int64, from, to enums.EmailState, event enums.EmailEventType, actorID *uuid.UUID) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	return WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
UPDATE email_items
SET current_state = $3, updated_at = NOW()
WHERE id = $1 AND current_state = $2
`, id, from, to)
		if err != nil {
			return fmt.Errorf("transition email item: %w", err)
		}
		if tag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM email_items WHERE id = $1)`, id).Scan(&exists); err != nil {
				return fmt.Errorf("check email item: %w", err)
			}
			if !exists {
				return ErrEmailNotFound
			}
			return ErrEmailStateConflict
		}

		if _, err := tx.Exec(ctx, `
INSERT INTO email_events (email_item_id, event_type, actor_id, created_at)
VALUES ($1, $2, $3, NOW())
`, id, event, actorID); err != nil {
			return fmt.Errorf("insert email event: %w", err)
		}

		return nil
	})
}

func (r *EmailRepo) GetByID(ctx context.Context, id int64) (model.EmailItem, error) {
	if r.pool == nil {
		return model.EmailItem{}, fmt.Errorf("postgres pool is nil")
	}

	var item model.EmailItem
	err := r.pool.QueryRow(ctx, `
SELECT id, recipient, subject, body, current_state, created_at, updated_at
FROM email_items
WHERE id = $1
`, id).Scan(&item.ID, &item.Recipient, &item.Subject, &item.Body, &item.CurrentState, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.EmailItem{}, ErrEmailNotFound
		}
		return model.EmailItem{}, fmt.Errorf("query email item: %w", err)
	}

	return item, nil
}

func (r *EmailRepo) ListByState(ctx context.Context, state enums.EmailState, limit, offset int) ([]model.EmailItem, int, error) {
	if r.pool == nil {
		return nil, 0, fmt.Errorf("postgres pool is nil")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM email_items WHERE current_state = $1`, state).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count email items: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, recipient, subject, body, current_state, created_at, updated_at
FROM email_items
WHERE current_state = $1
ORDER BY created_at ASC, id ASC
LIMIT $2 OFFSET $3
`, state, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query email items: %w", err)
	}
	defer rows.Close()

	items := make([]model.EmailItem, 0)
	for rows.Next() {
		var item model.EmailItem
		if err := rows.Scan(&item.ID, &item.Recipient, &item.Subject, &item.Body, &item.CurrentState, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan email item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate email item rows: %w", err)
	}

	return items, total, nil
}

// Events returns the append-only history for one item, oldest first.
func (r *EmailRepo) Events(ctx context.Context, emailItemID int64) ([]model.EmailEvent, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, email_item_id, event_type, actor_id, created_at
FROM email_events
WHERE email_item_id = $1
ORDER BY created_at ASC, id ASC
`, emailItemID)
	if err != nil {
		return nil, fmt.Errorf("query email events: %w", err)
	}
	defer rows.Close()

	events := make([]model.EmailEvent, 0)
	for rows.Next() {
		var ev model.EmailEvent
		if err := rows.Scan(&ev.ID, &ev.EmailItemID, &ev.EventType, &ev.ActorID, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan email event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate email event rows: %w", err)
	}

	return events, nil
}
