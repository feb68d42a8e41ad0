package passage

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/verte-zerg/typesprint/internal/model"
)

func TestDefaultDataHasBuiltInDifficulties(t *testing.T) {
	data, err := DefaultData()
	if err != nil {
		t.Fatalf("decode default data: %v", err)
	}
	diffs := data.Difficulties()
	if len(diffs) != 3 || diffs[0] != model.DifficultyEasy || diffs[1] != model.DifficultyMedium || diffs[2] != model.DifficultyHard {
		t.Fatalf("unexpected difficulties: %v", diffs)
	}
	for _, d := range diffs {
		if len(data[d]) == 0 {
			t.Fatalf("expected passages for %s", d)
		}
	}
}

func TestDecodeJSONAndYAML(t *testing.T) {
	jsonData, err := Decode([]byte(`{"Easy":[{"text":"a b"}],"custom":[{"text":"x"}]}`), FormatJSON)
	if err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if jsonData[model.DifficultyEasy][0].Text != "a b" {
		t.Fatalf("unexpected json data: %+v", jsonData)
	}
	diffs := jsonData.Difficulties()
	if len(diffs) != 2 || diffs[0] != model.DifficultyEasy || diffs[1] != "custom" {
		t.Fatalf("unexpected difficulty order: %v", diffs)
	}

	yamlData, err := Decode([]byte("hard:\n  - text: \"long words\"\n"), FormatYAML)
	if err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if yamlData[model.DifficultyHard][0].Text != "long words" {
		t.Fatalf("unexpected yaml data: %+v", yamlData)
	}
}

func TestDecodeRejectsInvalidEntries(t *testing.T) {
	cases := map[string]string{
		"missing text": `{"easy":[{"text":""}]}`,
		"empty doc":    `{}`,
		"bad json":     `{"easy":`,
	}
	for name, raw := range cases {
		if _, err := Decode([]byte(raw), FormatJSON); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestFormatFor(t *testing.T) {
	if FormatFor("p.YML") != FormatYAML || FormatFor("https://x/p.yaml?v=1") != FormatYAML {
		t.Fatalf("expected yaml format")
	}
	if FormatFor("data.json") != FormatJSON || FormatFor("data") != FormatJSON {
		t.Fatalf("expected json format")
	}
}

func TestSourceErrors(t *testing.T) {
	src := NewStaticSource(Data{model.DifficultyEasy: nil}, nil)
	if _, err := src.Passage(context.Background(), model.DifficultyEasy); !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
	if _, err := src.Passage(context.Background(), model.DifficultyHard); !errors.Is(err, ErrUnknownDifficulty) {
		t.Fatalf("expected ErrUnknownDifficulty, got %v", err)
	}
}

func TestSourcePicksUniformly(t *testing.T) {
	data := Data{model.DifficultyEasy: {{Text: "a"}, {Text: "b"}, {Text: "c"}}}
	src := NewStaticSource(data, NewPickerWithRand(rand.New(rand.NewSource(1))))
	counts := map[string]int{}
	for i := 0; i < 3000; i++ {
		p, err := src.Passage(context.Background(), model.DifficultyEasy)
		if err != nil {
			t.Fatalf("passage: %v", err)
		}
		counts[p.Text]++
	}
	for _, text := range []string{"a", "b", "c"} {
		if counts[text] < 850 || counts[text] > 1150 {
			t.Fatalf("expected roughly uniform picks, got %v", counts)
		}
	}
}

func TestSourceFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "passages.yaml")
	if err := os.WriteFile(path, []byte("medium:\n  - text: from file\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	src := NewSource(path, nil)
	p, err := src.Passage(context.Background(), model.DifficultyMedium)
	if err != nil {
		t.Fatalf("passage: %v", err)
	}
	if p.Text != "from file" {
		t.Fatalf("unexpected passage %q", p.Text)
	}

	missing := NewSource(filepath.Join(dir, "nope.json"), nil)
	if _, err := missing.Passage(context.Background(), model.DifficultyMedium); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestSourceFromHTTPRetriesAfterFailure(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if fail.Load() {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"hard":[{"text":"remote"}]}`))
	}))
	defer srv.Close()

	src := NewSource(srv.URL+"/data.json", nil)
	if _, err := src.Passage(context.Background(), model.DifficultyHard); err == nil {
		t.Fatalf("expected error from failing server")
	}
	fail.Store(false)
	p, err := src.Passage(context.Background(), model.DifficultyHard)
	if err != nil {
		t.Fatalf("passage after recovery: %v", err)
	}
	if p.Text != "remote" {
		t.Fatalf("unexpected passage %q", p.Text)
	}
}
