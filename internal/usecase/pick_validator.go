package usecase

import (
	"sort"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fight-picks/internal/domain/catalog"
	"github.com/riskibarqy/fight-picks/internal/domain/event"
	"github.com/riskibarqy/fight-picks/internal/domain/pick"
)

// ValidatePicks parses a submission body of the form
//
//	{"eventId": "ufc-313", "picks": {"1": {"fighter": "King Green", "method": "Decision"}}}
//
// and returns one selection per fight in catalog order. Checks run in a fixed
// order and the first failure is returned as a *ValidationError.
func ValidatePicks(body []byte, cat catalog.Catalog) ([]pick.Selection, error) {
	var root any
	if err := sonic.Unmarshal(body, &root); err != nil {
		return nil, &ValidationError{Reason: ReasonMalformedRequest}
	}
	obj, ok := root.(map[string]any)
	if !ok {
		return nil, &ValidationError{Reason: ReasonMalformedRequest}
	}

	entries, err := pickEntries(obj["picks"])
	if err != nil {
		return nil, err
	}

	if rawEventID, present := obj["eventId"]; present && rawEventID != nil {
		eventID, isString := rawEventID.(string)
		if !isString || (eventID != "" && eventID != cat.EventID()) {
			return nil, &ValidationError{Reason: ReasonUnsupportedEvent}
		}
	}

	if len(entries) == 0 {
		return nil, &ValidationError{Reason: ReasonNoPicks}
	}

	ids := make([]string, 0, len(entries))
	for fightID := range entries {
		ids = append(ids, fightID)
	}
	sortFightIDs(ids, cat)

	out := make([]pick.Selection, 0, len(ids))
	for _, fightID := range ids {
		selection, err := validateEntry(fightID, entries[fightID], cat)
		if err != nil {
			return nil, err
		}
		out = append(out, selection)
	}

	return out, nil
}

func pickEntries(raw any) (map[string]map[string]any, error) {
	if raw == nil {
		return nil, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &ValidationError{Reason: ReasonMalformedRequest}
	}

	out := make(map[string]map[string]any, len(obj))
	for fightID, value := range obj {
		entry, ok := value.(map[string]any)
		if !ok {
			return nil, &ValidationError{Reason: ReasonMalformedRequest, FightID: fightID}
		}
		out[fightID] = entry
	}
	return out, nil
}

func validateEntry(fightID string, entry map[string]any, cat catalog.Catalog) (pick.Selection, error) {
	fight, ok := cat.Fight(fightID)
	if !ok {
		return pick.Selection{}, &ValidationError{Reason: ReasonUnknownFight, FightID: fightID}
	}

	rawFighter, _ := entry["fighter"].(string)
	fighter := strings.TrimSpace(rawFighter)
	if !fight.HasFighter(fighter) {
		return pick.Selection{}, &ValidationError{Reason: ReasonInvalidFighter, FightID: fightID}
	}

	rawMethod, _ := entry["method"].(string)
	method, ok := event.ParseMethod(rawMethod)
	if !ok {
		return pick.Selection{}, &ValidationError{Reason: ReasonInvalidMethod, FightID: fightID}
	}

	return pick.Selection{
		FightID:       fightID,
		ChosenFighter: fighter,
		Method:        method,
	}, nil
}

// sortFightIDs puts catalog fights first in catalog order, unknown ids after them lexically.
func sortFightIDs(ids []string, cat catalog.Catalog) {
	sort.Slice(ids, func(i, j int) bool {
		pi, iKnown := cat.Position(ids[i])
		pj, jKnown := cat.Position(ids[j])
		switch {
		case iKnown && jKnown:
			return pi < pj
		case iKnown != jKnown:
			return iKnown
		default:
			return ids[i] < ids[j]
		}
	})
}
