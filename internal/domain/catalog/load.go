package catalog

import (
	"os"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fight-picks/internal/domain/event"
)

type fileEvent struct {
	ID   string    `json:"id" validate:"required"`
	Name string    `json:"name" validate:"required"`
	Date time.Time `json:"date" validate:"required"`
}

type fileFight struct {
	ID       string `json:"id" validate:"required"`
	Bout     string `json:"bout"`
	FighterA string `json:"fighterA" validate:"required"`
	FighterB string `json:"fighterB" validate:"required,nefield=FighterA"`
}

type file struct {
	Event  fileEvent   `json:"event"`
	Fights []fileFight `json:"fights" validate:"required,min=1,unique=ID,dive"`
}

// Load reads a catalog JSON file. An empty path yields Default().
func Load(path string) (Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, crerr.Wrapf(err, "read catalog file %q", path)
	}
	return Parse(raw)
}

func Parse(raw []byte) (Catalog, error) {
	var f file
	if err := sonic.Unmarshal(raw, &f); err != nil {
		return Catalog{}, crerr.Wrap(err, "decode catalog")
	}
	normalize(&f)
	if err := validator.New().Struct(f); err != nil {
		return Catalog{}, crerr.Wrap(err, "validate catalog")
	}

	fights := make([]event.Fight, 0, len(f.Fights))
	for _, ff := range f.Fights {
		fights = append(fights, event.Fight{
			ID:       ff.ID,
			Bout:     ff.Bout,
			FighterA: ff.FighterA,
			FighterB: ff.FighterB,
		})
	}

	return newCatalog(event.Event{
		ID:   f.Event.ID,
		Name: f.Event.Name,
		Date: f.Event.Date.UTC(),
	}, fights), nil
}

func normalize(f *file) {
	f.Event.ID = strings.TrimSpace(f.Event.ID)
	f.Event.Name = strings.TrimSpace(f.Event.Name)
	for i := range f.Fights {
		f.Fights[i].ID = strings.TrimSpace(f.Fights[i].ID)
		f.Fights[i].Bout = strings.TrimSpace(f.Fights[i].Bout)
		f.Fights[i].FighterA = strings.TrimSpace(f.Fights[i].FighterA)
		f.Fights[i].FighterB = strings.TrimSpace(f.Fights[i].FighterB)
	}
}
