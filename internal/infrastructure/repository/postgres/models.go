package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/fight-picks/internal/domain/event"
	"github.com/riskibarqy/fight-picks/internal/domain/pick"
)

type eventTableModel struct {
	ID   string    `db:"id"`
	Name string    `db:"name"`
	Date time.Time `db:"date"`
}

func (m eventTableModel) toDomain() event.Event {
	return event.Event{ID: m.ID, Name: m.Name, Date: m.Date.UTC()}
}

type fightTableModel struct {
	ID       string         `db:"id"`
	EventID  string         `db:"event_id"`
	Bout     string         `db:"bout"`
	FighterA string         `db:"fighter_a"`
	FighterB string         `db:"fighter_b"`
	Winner   sql.NullString `db:"winner"`
	Method   sql.NullString `db:"method"`
}

func (m fightTableModel) toDomain() event.Fight {
	f := event.Fight{
		ID:       m.ID,
		EventID:  m.EventID,
		Bout:     m.Bout,
		FighterA: m.FighterA,
		FighterB: m.FighterB,
	}
	if m.Winner.Valid {
		winner := m.Winner.String
		f.Winner = &winner
	}
	if m.Method.Valid {
		method := event.Method(m.Method.String)
		f.Method = &method
	}
	return f
}

type pickTableModel struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	EventID       string    `db:"event_id"`
	FightID       string    `db:"fight_id"`
	ChosenFighter string    `db:"chosen_fighter"`
	PredictMethod string    `db:"predict_method"`
	Score         int       `db:"score"`
	CreatedAt     time.Time `db:"created_at"`
}

func (m pickTableModel) toDomain() pick.Pick {
	return pick.Pick{
		ID:            m.ID,
		UserID:        m.UserID,
		EventID:       m.EventID,
		FightID:       m.FightID,
		ChosenFighter: m.ChosenFighter,
		PredictMethod: event.Method(m.PredictMethod),
		Score:         m.Score,
		CreatedAt:     m.CreatedAt,
	}
}

type pickInsertModel struct {
	ID            string `db:"id"`
	UserID        string `db:"user_id"`
	EventID       string `db:"event_id"`
	FightID       string `db:"fight_id"`
	ChosenFighter string `db:"chosen_fighter"`
	PredictMethod string `db:"predict_method"`
	Score         int    `db:"score"`
}

type pickDetailRow struct {
	pickTableModel
	FightBout     string         `db:"fight_bout"`
	FightFighterA string         `db:"fight_fighter_a"`
	FightFighterB string         `db:"fight_fighter_b"`
	FightEventID  string         `db:"fight_event_id"`
	FightWinner   sql.NullString `db:"fight_winner"`
	FightMethod   sql.NullString `db:"fight_method"`
}

func (m pickDetailRow) toDomain() pick.Detail {
	return pick.Detail{
		Pick: m.pickTableModel.toDomain(),
		Fight: fightTableModel{
			ID:       m.FightID,
			EventID:  m.FightEventID,
			Bout:     m.FightBout,
			FighterA: m.FightFighterA,
			FighterB: m.FightFighterB,
			Winner:   m.FightWinner,
			Method:   m.FightMethod,
		}.toDomain(),
	}
}

type userUpsertModel struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
}

type userTotalRow struct {
	UserID     string `db:"user_id"`
	Name       string `db:"name"`
	TotalScore int    `db:"total_score"`
}
