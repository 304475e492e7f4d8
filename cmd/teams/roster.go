package main

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/futsal/internal/domain/attendance"
	"github.com/okian/futsal/internal/domain/model"
)

// rosterFile is the YAML layout read by loadRoster.
type rosterFile struct {
	Players []rosterEntry `koanf:"players"`
	// Present names who showed up. Empty means everyone.
	Present []string `koanf:"present"`
}

type rosterEntry struct {
	Name     string `koanf:"name"`
	Rating   int    `koanf:"rating"`
	Position string `koanf:"position"`
	Goalie   bool   `koanf:"goalie"`
	LinkedTo string `koanf:"linked_to"`
}

// loadRoster reads a roster file and returns the present players in file
// order.
func loadRoster(path string) ([]model.Player, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("read roster %s: %w", path, err)
	}
	var rf rosterFile
	if err := k.UnmarshalWithConf("", &rf, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode roster %s: %w", path, err)
	}

	players := make([]model.Player, 0, len(rf.Players))
	byName := make(map[string]int64, len(rf.Players))
	for i, e := range rf.Players {
		p := model.Player{
			ID:       int64(i + 1),
			Name:     e.Name,
			Rating:   e.Rating,
			Position: model.Position(e.Position),
			IsGoalie: e.Goalie,
			LinkedTo: e.LinkedTo,
		}.Normalize()
		if p.Name == "" {
			return nil, fmt.Errorf("roster entry %d has no name", i+1)
		}
		if p.Rating < model.MinRating || p.Rating > model.MaxRating {
			return nil, fmt.Errorf("%s: rating %d outside %d-%d", p.Name, p.Rating, model.MinRating, model.MaxRating)
		}
		if _, dup := byName[p.Name]; dup {
			return nil, fmt.Errorf("duplicate player %s", p.Name)
		}
		byName[p.Name] = p.ID
		players = append(players, p)
	}

	if len(rf.Present) == 0 {
		return players, nil
	}
	present := attendance.New()
	for _, name := range rf.Present {
		id, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("present list names unknown player %s", name)
		}
		present.Set(id, true)
	}
	return present.Filter(players), nil
}
