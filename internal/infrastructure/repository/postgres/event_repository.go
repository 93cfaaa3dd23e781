package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fight-picks/internal/domain/event"
	qb "github.com/riskibarqy/fight-picks/internal/platform/querybuilder"
	"github.com/riskibarqy/fight-picks/internal/usecase"
)

var fightColumns = []string{"id", "event_id", "bout", "fighter_a", "fighter_b", "winner", "method"}

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) GetByID(ctx context.Context, eventID string) (event.Event, bool, error) {
	query, args, err := qb.Select("id", "name", "date").From("events").
		Where(qb.Eq("id", eventID)).
		ToSQL()
	if err != nil {
		return event.Event{}, false, fmt.Errorf("build get event by id query: %w", err)
	}
	return r.getEvent(ctx, query, args, "get event by id")
}

func (r *EventRepository) GetByName(ctx context.Context, name string) (event.Event, bool, error) {
	query, args, err := qb.Select("id", "name", "date").From("events").
		Where(qb.Eq("name", name)).
		OrderBy("date", "id").
		Limit(1).
		ToSQL()
	if err != nil {
		return event.Event{}, false, fmt.Errorf("build get event by name query: %w", err)
	}
	return r.getEvent(ctx, query, args, "get event by name")
}

func (r *EventRepository) getEvent(ctx context.Context, query string, args []any, op string) (event.Event, bool, error) {
	var row eventTableModel
	if err := sqlx.GetContext(ctx, conn(ctx, r.db), &row, query, args...); err != nil {
		if isNotFound(err) {
			return event.Event{}, false, nil
		}
		return event.Event{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return row.toDomain(), true, nil
}

// Create is an insert-or-update on id so two first submissions cannot race into a duplicate key error.
func (r *EventRepository) Create(ctx context.Context, ev event.Event) (event.Event, error) {
	query, args, err := qb.InsertModel("events", eventTableModel{
		ID:   ev.ID,
		Name: ev.Name,
		Date: ev.Date,
	}, `ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, date = EXCLUDED.date RETURNING id, name, date`)
	if err != nil {
		return event.Event{}, fmt.Errorf("build insert event query: %w", err)
	}

	var row eventTableModel
	if err := sqlx.GetContext(ctx, conn(ctx, r.db), &row, query, args...); err != nil {
		return event.Event{}, classifyError(err, "insert event")
	}
	return row.toDomain(), nil
}

func (r *EventRepository) UpdateDetails(ctx context.Context, eventID, name string, date time.Time) (event.Event, error) {
	query, args, err := qb.Update("events").
		Set("name", name).
		Set("date", date).
		Where(qb.Eq("id", eventID)).
		ToSQL()
	if err != nil {
		return event.Event{}, fmt.Errorf("build update event query: %w", err)
	}

	res, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return event.Event{}, classifyError(err, "update event")
	}
	n, err := rowsAffected(res, "update event")
	if err != nil {
		return event.Event{}, err
	}
	if n == 0 {
		return event.Event{}, fmt.Errorf("%w: event=%s", usecase.ErrNotFound, eventID)
	}
	return event.Event{ID: eventID, Name: name, Date: date}, nil
}

func (r *EventRepository) UpsertFights(ctx context.Context, fights []event.Fight) error {
	if len(fights) == 0 {
		return nil
	}

	b := qb.InsertInto("fights").
		Columns("id", "event_id", "bout", "fighter_a", "fighter_b").
		Suffix(`ON CONFLICT (id) DO UPDATE SET
    event_id = EXCLUDED.event_id,
    bout = EXCLUDED.bout,
    fighter_a = EXCLUDED.fighter_a,
    fighter_b = EXCLUDED.fighter_b`)
	for _, f := range fights {
		b.Values(f.ID, f.EventID, f.Bout, f.FighterA, f.FighterB)
	}
	query, args, err := b.ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert fights query: %w", err)
	}

	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return classifyError(err, "upsert fights")
	}
	return nil
}

func (r *EventRepository) GetFightByID(ctx context.Context, fightID string) (event.Fight, bool, error) {
	query, args, err := qb.Select(fightColumns...).From("fights").
		Where(qb.Eq("id", fightID)).
		ToSQL()
	if err != nil {
		return event.Fight{}, false, fmt.Errorf("build get fight query: %w", err)
	}

	var row fightTableModel
	if err := sqlx.GetContext(ctx, conn(ctx, r.db), &row, query, args...); err != nil {
		if isNotFound(err) {
			return event.Fight{}, false, nil
		}
		return event.Fight{}, false, fmt.Errorf("get fight: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *EventRepository) ListCompletedFights(ctx context.Context) ([]event.Fight, error) {
	query, args, err := qb.Select(fightColumns...).From("fights").
		Where(qb.NotNull("winner"), qb.NotNull("method")).
		OrderBy("event_id", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list completed fights query: %w", err)
	}

	var rows []fightTableModel
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select completed fights: %w", err)
	}

	out := make([]event.Fight, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *EventRepository) SetFightResult(ctx context.Context, fightID, winner string, method event.Method) error {
	query, args, err := qb.Update("fights").
		Set("winner", winner).
		Set("method", string(method)).
		Where(qb.Eq("id", fightID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set fight result query: %w", err)
	}

	res, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return classifyError(err, "set fight result")
	}
	n, err := rowsAffected(res, "set fight result")
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: fight=%s", usecase.ErrNotFound, fightID)
	}
	return nil
}
