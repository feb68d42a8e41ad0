// Package passage loads passage pools keyed by difficulty and picks passages from them.
package passage

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/typesprint/internal/model"
)

// Format selects the decoder for passage data.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor guesses the format from a file name or URL path.
func FormatFor(name string) Format {
	name = strings.ToLower(name)
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	switch path.Ext(name) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Data maps each difficulty to its pool of passages.
type Data map[model.Difficulty][]model.Passage

// Difficulties returns the difficulties present in the data, built-in ones first.
func (d Data) Difficulties() []model.Difficulty {
	out := make([]model.Difficulty, 0, len(d))
	seen := map[model.Difficulty]struct{}{}
	for _, diff := range model.Difficulties {
		if _, ok := d[diff]; ok {
			out = append(out, diff)
			seen[diff] = struct{}{}
		}
	}
	var extra []model.Difficulty
	for diff := range d {
		if _, ok := seen[diff]; !ok {
			extra = append(extra, diff)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode parses passage data and validates every entry.
func Decode(raw []byte, format Format) (Data, error) {
	var doc map[string][]model.Passage
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode passage yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode passage json: %w", err)
		}
	}
	if len(doc) == 0 {
		return nil, fmt.Errorf("passage data has no difficulties")
	}
	data := make(Data, len(doc))
	for name, entries := range doc {
		diff := model.Difficulty(strings.ToLower(strings.TrimSpace(name)))
		if diff == "" {
			return nil, fmt.Errorf("passage data has an empty difficulty name")
		}
		for i, p := range entries {
			if err := validate.Struct(p); err != nil {
				return nil, fmt.Errorf("invalid passage %s[%d]: %w", diff, i, err)
			}
		}
		data[diff] = append(data[diff], entries...)
	}
	return data, nil
}
