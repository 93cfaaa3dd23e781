package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fight-picks/internal/domain/pick"
	qb "github.com/riskibarqy/fight-picks/internal/platform/querybuilder"
	"github.com/riskibarqy/fight-picks/internal/usecase"
)

var pickColumns = []string{"id", "user_id", "event_id", "fight_id", "chosen_fighter", "predict_method", "score", "created_at"}

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

// LockUserEvent takes a transaction-scoped advisory lock keyed by user and event.
func (r *PickRepository) LockUserEvent(ctx context.Context, userID, eventID string) error {
	tx, ok := txFromContext(ctx)
	if !ok {
		return fmt.Errorf("lock user picks: transaction required")
	}
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, advisoryLockKey("picks", userID, eventID)); err != nil {
		return fmt.Errorf("acquire pick lock: %w", err)
	}
	return nil
}

func (r *PickRepository) DeleteByUserEvent(ctx context.Context, userID, eventID string) (int, error) {
	query, args, err := qb.DeleteFrom("picks").
		Where(qb.Eq("user_id", userID), qb.Eq("event_id", eventID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete picks query: %w", err)
	}

	res, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classifyError(err, "delete picks")
	}
	return rowsAffected(res, "delete picks")
}

func (r *PickRepository) InsertMany(ctx context.Context, picks []pick.Pick) error {
	if len(picks) == 0 {
		return nil
	}

	rows := make([]pickInsertModel, 0, len(picks))
	for _, p := range picks {
		rows = append(rows, pickInsertModel{
			ID:            p.ID,
			UserID:        p.UserID,
			EventID:       p.EventID,
			FightID:       p.FightID,
			ChosenFighter: p.ChosenFighter,
			PredictMethod: string(p.PredictMethod),
			Score:         p.Score,
		})
	}
	query, args, err := qb.InsertModels("picks", rows, "")
	if err != nil {
		return fmt.Errorf("build insert picks query: %w", err)
	}

	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return classifyError(err, "insert picks")
	}
	return nil
}

func (r *PickRepository) ListByFight(ctx context.Context, fightID string) ([]pick.Pick, error) {
	query, args, err := qb.Select(pickColumns...).From("picks").
		Where(qb.Eq("fight_id", fightID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks by fight query: %w", err)
	}

	var rows []pickTableModel
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select picks by fight: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PickRepository) UpdateScore(ctx context.Context, pickID string, score int) error {
	query, args, err := qb.Update("picks").
		Set("score", score).
		Where(qb.Eq("id", pickID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update pick score query: %w", err)
	}

	res, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return classifyError(err, "update pick score")
	}
	n, err := rowsAffected(res, "update pick score")
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: pick=%s", usecase.ErrNotFound, pickID)
	}
	return nil
}

func (r *PickRepository) ExistsByUser(ctx context.Context, userID string) (bool, error) {
	inner, args, err := qb.Select("1").From("picks").
		Where(qb.Eq("user_id", userID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build pick exists query: %w", err)
	}

	var exists bool
	if err := sqlx.GetContext(ctx, conn(ctx, r.db), &exists, "SELECT EXISTS ("+inner+")", args...); err != nil {
		return false, fmt.Errorf("check picks exist: %w", err)
	}
	return exists, nil
}

func (r *PickRepository) ListDetailsByUser(ctx context.Context, userID string) ([]pick.Detail, error) {
	query, args, err := qb.Select(
		"p.id", "p.user_id", "p.event_id", "p.fight_id", "p.chosen_fighter", "p.predict_method", "p.score", "p.created_at",
		"f.bout AS fight_bout",
		"f.fighter_a AS fight_fighter_a",
		"f.fighter_b AS fight_fighter_b",
		"f.event_id AS fight_event_id",
		"f.winner AS fight_winner",
		"f.method AS fight_method",
	).
		From("picks p").
		Join("fights f", "f.id = p.fight_id").
		Where(qb.Eq("p.user_id", userID)).
		OrderBy("p.created_at", "p.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list pick details query: %w", err)
	}

	var rows []pickDetailRow
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select pick details: %w", err)
	}

	out := make([]pick.Detail, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PickRepository) ListUserTotals(ctx context.Context) ([]pick.UserTotal, error) {
	query, args, err := qb.Select("u.id AS user_id", "u.name", "COALESCE(SUM(p.score), 0) AS total_score").
		From("users u").
		LeftJoin("picks p", "p.user_id = u.id").
		GroupBy("u.id", "u.name", "u.created_at").
		OrderBy("u.created_at", "u.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build user totals query: %w", err)
	}

	var rows []userTotalRow
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select user totals: %w", err)
	}

	out := make([]pick.UserTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, pick.UserTotal{UserID: row.UserID, Name: row.Name, TotalScore: row.TotalScore})
	}
	return out, nil
}
