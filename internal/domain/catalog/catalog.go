// Package catalog holds the single event that picks are accepted for.
// A Catalog is built once at startup and shared read-only.
package catalog

import (
	"time"

	"github.com/riskibarqy/fight-picks/internal/domain/event"
)

type Catalog struct {
	event  event.Event
	fights []event.Fight
	order  map[string]int
}

func newCatalog(ev event.Event, fights []event.Fight) Catalog {
	c := Catalog{
		event:  ev,
		fights: make([]event.Fight, 0, len(fights)),
		order:  make(map[string]int, len(fights)),
	}
	for i, f := range fights {
		f.EventID = ev.ID
		f.Winner = nil
		f.Method = nil
		c.fights = append(c.fights, f)
		c.order[f.ID] = i
	}
	return c
}

func (c Catalog) Event() event.Event {
	return c.event
}

func (c Catalog) EventID() string {
	return c.event.ID
}

// Fights returns a copy in catalog order.
func (c Catalog) Fights() []event.Fight {
	return append([]event.Fight(nil), c.fights...)
}

func (c Catalog) Fight(fightID string) (event.Fight, bool) {
	i, ok := c.order[fightID]
	if !ok {
		return event.Fight{}, false
	}
	return c.fights[i], true
}

// Position reports the catalog index of a fight id.
func (c Catalog) Position(fightID string) (int, bool) {
	i, ok := c.order[fightID]
	return i, ok
}

func (c Catalog) Methods() []event.Method {
	return event.Methods()
}

// Default is the built-in card used when no catalog file is configured.
func Default() Catalog {
	return newCatalog(
		event.Event{
			ID:   "ufc-313",
			Name: "UFC 313: Pereira vs Ankalaev",
			Date: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		},
		[]event.Fight{
			{ID: "1", Bout: "Lightweight", FighterA: "King Green", FighterB: "Mauricio Ruffy"},
			{ID: "2", Bout: "Women's Strawweight", FighterA: "Amanda Lemos", FighterB: "Iasmin Lucindo"},
			{ID: "3", Bout: "Lightweight", FighterA: "Jalin Turner", FighterB: "Ignacio Bahamondes"},
			{ID: "4", Bout: "Lightweight", FighterA: "Justin Gaethje", FighterB: "Rafael Fiziev"},
			{ID: "5", Bout: "Light Heavyweight Title", FighterA: "Alex Pereira (C)", FighterB: "Magomed Ankalaev"},
		},
	)
}
