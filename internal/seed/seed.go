// Package seed loads a small sample catalog into a store.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/mcoot/gamestore/internal/model"
	"github.com/mcoot/gamestore/internal/storage"
)

type sampleGame struct {
	name        string
	description string
	released    string
	price       float64
	ageRating   string
	publisher   string // empty when unknown
	developer   string // empty when unknown
}

var publishers = []string{"Nintendo", "Annapurna Interactive", "Devolver Digital"}

var developers = []string{"Nintendo EPD", "Supergiant Games", "Team Cherry", "Mobius Digital", "Maddy Makes Games"}

var games = []sampleGame{
	{"The Legend of Zelda: Breath of the Wild", "Explore a vast open world as Link.", "2017-03-03", 59.99, "E10+", "Nintendo", "Nintendo EPD"},
	{"Hades", "Battle out of the Underworld in this rogue-like dungeon crawler.", "2020-09-17", 24.99, "T", "", "Supergiant Games"},
	{"Hollow Knight", "Descend into the ruined kingdom of Hallownest.", "2017-02-24", 14.99, "E10+", "", "Team Cherry"},
	{"Outer Wilds", "Unravel the mysteries of a solar system stuck in a time loop.", "2019-05-28", 24.99, "E10+", "Annapurna Interactive", "Mobius Digital"},
	{"Celeste", "Help Madeline survive her inner demons on her journey to the top of Celeste Mountain.", "2018-01-25", 19.99, "E10+", "", "Maddy Makes Games"},
	{"Enter the Gungeon", "A bullet hell dungeon crawler.", "2016-04-05", 14.99, "T", "Devolver Digital", ""},
	{"Mario Kart 8 Deluxe", "Race and battle with friends.", "2017-04-28", 59.99, "E", "Nintendo", "Nintendo EPD"},
	{"Untitled Indie Prototype", "", "", 0, "", "", ""},
}

// Result counts what was written
type Result struct {
	Publishers int
	Developers int
	Games      int
}

// Load writes the sample catalog through w
func Load(ctx context.Context, w storage.CatalogWriter) (Result, error) {
	var res Result

	publisherIDs := make(map[string]model.PublisherID, len(publishers))
	for _, name := range publishers {
		id, err := w.SavePublisher(ctx, &model.Publisher{Name: name})
		if err != nil {
			return res, fmt.Errorf("seed publisher %q: %w", name, err)
		}
		publisherIDs[name] = id
		res.Publishers++
	}

	developerIDs := make(map[string]model.DeveloperID, len(developers))
	for _, studio := range developers {
		id, err := w.SaveDeveloper(ctx, &model.Developer{Studio: studio})
		if err != nil {
			return res, fmt.Errorf("seed developer %q: %w", studio, err)
		}
		developerIDs[studio] = id
		res.Developers++
	}

	for _, g := range games {
		game := &model.Game{
			Name:        g.name,
			Description: g.description,
			Price:       g.price,
			AgeRating:   g.ageRating,
		}
		if g.released != "" {
			released, err := time.Parse(model.DateLayout, g.released)
			if err != nil {
				return res, fmt.Errorf("seed game %q: %w", g.name, err)
			}
			game.ReleaseDate = &released
		}
		if id, ok := publisherIDs[g.publisher]; ok {
			game.PublisherID = &id
		}
		if id, ok := developerIDs[g.developer]; ok {
			game.DeveloperID = &id
		}
		if _, err := w.SaveGame(ctx, game); err != nil {
			return res, fmt.Errorf("seed game %q: %w", g.name, err)
		}
		res.Games++
	}
	return res, nil
}

// Target is a store that can be checked for existing games before seeding
type Target interface {
	storage.CatalogWriter
	ListGames(ctx context.Context) ([]model.GameSummary, error)
}

// LoadIfEmpty seeds t only when it has no games. loaded reports whether
// anything was written.
func LoadIfEmpty(ctx context.Context, t Target) (res Result, loaded bool, err error) {
	existing, err := t.ListGames(ctx)
	if err != nil {
		return res, false, fmt.Errorf("check catalog: %w", err)
	}
	if len(existing) > 0 {
		return res, false, nil
	}
	res, err = Load(ctx, t)
	return res, err == nil, err
}
