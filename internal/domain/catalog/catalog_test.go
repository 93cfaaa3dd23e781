package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	c := Default()
	if c.EventID() != "ufc-313" {
		t.Fatalf("unexpected event id: %s", c.EventID())
	}
	if got := c.Event().Date; !got.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected event date: %s", got)
	}

	fights := c.Fights()
	if len(fights) != 5 {
		t.Fatalf("unexpected fight count: got=%d want=5", len(fights))
	}
	for i, f := range fights {
		if f.EventID != "ufc-313" {
			t.Fatalf("fight %s has event id %q", f.ID, f.EventID)
		}
		if pos, ok := c.Position(f.ID); !ok || pos != i {
			t.Fatalf("unexpected position for %s: %d %v", f.ID, pos, ok)
		}
	}

	f, ok := c.Fight("1")
	if !ok || f.FighterA != "King Green" || f.FighterB != "Mauricio Ruffy" {
		t.Fatalf("unexpected fight 1: %+v", f)
	}
	if _, ok := c.Fight("99"); ok {
		t.Fatalf("expected fight 99 to be unknown")
	}
}

func TestFightsReturnsCopy(t *testing.T) {
	t.Parallel()

	c := Default()
	fights := c.Fights()
	fights[0].FighterA = "changed"
	if f, _ := c.Fight("1"); f.FighterA != "King Green" {
		t.Fatalf("catalog mutated through Fights(): %+v", f)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
  "event": {"id": " ufc-314 ", "name": "UFC 314", "date": "2025-04-12T22:00:00Z"},
  "fights": [
    {"id": "10", "bout": "Featherweight Title", "fighterA": "Alexander Volkanovski", "fighterB": "Diego Lopes"},
    {"id": "11", "bout": "Featherweight", "fighterA": "Bryce Mitchell", "fighterB": "Jean Silva"}
  ]
}`)
	c, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}
	if c.EventID() != "ufc-314" {
		t.Fatalf("unexpected event id: %q", c.EventID())
	}
	if f, ok := c.Fight("11"); !ok || f.EventID != "ufc-314" || f.Bout != "Featherweight" {
		t.Fatalf("unexpected fight 11: %+v", f)
	}
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"malformed json":   `{"event":`,
		"missing event id": `{"event":{"name":"x","date":"2025-01-01T00:00:00Z"},"fights":[{"id":"1","fighterA":"a","fighterB":"b"}]}`,
		"no fights":        `{"event":{"id":"e","name":"x","date":"2025-01-01T00:00:00Z"},"fights":[]}`,
		"duplicate ids":    `{"event":{"id":"e","name":"x","date":"2025-01-01T00:00:00Z"},"fights":[{"id":"1","fighterA":"a","fighterB":"b"},{"id":"1","fighterA":"c","fighterB":"d"}]}`,
		"same fighter":     `{"event":{"id":"e","name":"x","date":"2025-01-01T00:00:00Z"},"fights":[{"id":"1","fighterA":"a","fighterB":"a"}]}`,
	}
	for name, raw := range cases {
		if _, err := Parse([]byte(raw)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	c, err := Load("")
	if err != nil || c.EventID() != "ufc-313" {
		t.Fatalf("expected default catalog for empty path, got %q %v", c.EventID(), err)
	}

	path := filepath.Join(t.TempDir(), "catalog.json")
	content := `{"event":{"id":"e1","name":"Card","date":"2025-01-01T00:00:00Z"},"fights":[{"id":"1","fighterA":"a","fighterB":"b"}]}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	c, err = Load(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if c.EventID() != "e1" || len(c.Fights()) != 1 {
		t.Fatalf("unexpected loaded catalog: %+v", c.Event())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
