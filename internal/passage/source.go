package passage

import (
	"context"
	_ "embed" // default passage data.
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/verte-zerg/typesprint/internal/model"
)

var (
	// ErrUnknownDifficulty is returned for a difficulty missing from the data.
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	// ErrEmptyPool is returned when a difficulty has no passages.
	ErrEmptyPool = errors.New("no passages for difficulty")
)

//go:embed data/passages.json
var defaultData []byte

const fetchTimeout = 15 * time.Second

// DefaultData decodes the built-in passages.
func DefaultData() (Data, error) {
	return Decode(defaultData, FormatJSON)
}

// LoadFunc produces passage data.
type LoadFunc func(ctx context.Context) (Data, error)

// Source picks passages from data that is loaded on first use. A failed load is
// not cached, so the next call retries.
type Source struct {
	load   LoadFunc
	picker *Picker
	data   Data
}

// NewSource builds a Source for location: empty for the built-in passages, an
// http(s) URL, or a local JSON/YAML file.
func NewSource(location string, picker *Picker) *Source {
	if picker == nil {
		picker = NewPicker()
	}
	return &Source{load: loaderFor(location), picker: picker}
}

// NewStaticSource builds a Source over already decoded data.
func NewStaticSource(data Data, picker *Picker) *Source {
	if picker == nil {
		picker = NewPicker()
	}
	return &Source{
		load:   func(context.Context) (Data, error) { return data, nil },
		picker: picker,
	}
}

func loaderFor(location string) LoadFunc {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return func(context.Context) (Data, error) { return DefaultData() }
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return func(ctx context.Context) (Data, error) { return Fetch(ctx, location) }
	default:
		return func(context.Context) (Data, error) { return LoadFile(location) }
	}
}

// Data returns the loaded passage data, loading it if needed.
func (s *Source) Data(ctx context.Context) (Data, error) {
	if s.data != nil {
		return s.data, nil
	}
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.data = data
	return data, nil
}

// Passage picks a passage for difficulty uniformly at random.
func (s *Source) Passage(ctx context.Context, difficulty model.Difficulty) (model.Passage, error) {
	data, err := s.Data(ctx)
	if err != nil {
		return model.Passage{}, err
	}
	pool, ok := data[difficulty]
	if !ok {
		return model.Passage{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, difficulty)
	}
	if len(pool) == 0 {
		return model.Passage{}, fmt.Errorf("%w %q", ErrEmptyPool, difficulty)
	}
	return pool[s.picker.Pick(len(pool))], nil
}

// LoadFile reads passage data from a local file.
func LoadFile(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read passages: %w", err)
	}
	return Decode(raw, FormatFor(path))
}

// Fetch downloads passage data from url.
func Fetch(ctx context.Context, url string) (Data, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch passages: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected passages status: %s", resp.Status)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read passages: %w", err)
	}
	return Decode(raw, FormatFor(url))
}
