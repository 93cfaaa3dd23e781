package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fight-picks/internal/domain/user"
	qb "github.com/riskibarqy/fight-picks/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Upsert(ctx context.Context, u user.User) error {
	query, args, err := qb.InsertModel("users", userUpsertModel{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}, `ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email`)
	if err != nil {
		return fmt.Errorf("build upsert user query: %w", err)
	}

	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return classifyError(err, "upsert user")
	}
	return nil
}

