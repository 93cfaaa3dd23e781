package pick

import (
	"time"

	"github.com/riskibarqy/fight-picks/internal/domain/event"
)

// Selection is one validated prediction before it is stored.
type Selection struct {
	FightID       string
	ChosenFighter string
	Method        event.Method
}

type Pick struct {
	ID            string
	UserID        string
	EventID       string
	FightID       string
	ChosenFighter string
	PredictMethod event.Method
	Score         int
	CreatedAt     time.Time
}

// Detail is a pick joined with its fight for display.
type Detail struct {
	Pick
	Fight event.Fight
}

// UserTotal is one leaderboard row before ranking.
type UserTotal struct {
	UserID     string
	Name       string
	TotalScore int
}

const (
	winnerPoints = 1
	methodBonus  = 2
)

// Score awards 1 for the correct winner and 2 more when the method also matches.
func Score(chosenFighter string, predicted event.Method, winner string, method event.Method) int {
	if chosenFighter != winner {
		return 0
	}
	if predicted == method {
		return winnerPoints + methodBonus
	}
	return winnerPoints
}
