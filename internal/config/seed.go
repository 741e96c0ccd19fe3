package config

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mergington/activities/internal/domain/model"
)

// seedDelim separates koanf key paths in seed files. Activity names may
// contain dots, so "/" (rejected in names) is used instead.
const seedDelim = "/"

// LoadSeed reads an activity catalogue from a YAML file shaped as:
//
//	activities:
//	  Chess Club:
//	    description: ...
//	    schedule: ...
//	    max_participants: 12
//	    participants: [michael@mergington.edu]
//
// Activities are returned sorted by name.
func LoadSeed(_ context.Context, path string) ([]model.Activity, error) {
	k := koanf.New(seedDelim)
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadSeed, path, err)
	}

	names := k.MapKeys("activities")
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s: no activities defined", ErrLoadSeed, path)
	}

	out := make([]model.Activity, 0, len(names))
	for _, name := range names {
		var a model.Activity
		if err := k.UnmarshalWithConf("activities"+seedDelim+name, &a, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
			return nil, fmt.Errorf("%w: %s: activity %q: %w", ErrLoadSeed, path, name, err)
		}
		a.Name = name
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadSeed, path, err)
		}
		out = append(out, a.Normalize())
	}
	return out, nil
}
