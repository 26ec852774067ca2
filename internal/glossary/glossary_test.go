package glossary

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testTable = "piscina|pileta; piscina; pool; Swimming pool, either word is fine\n" +
	"guagua; guagua; bus; The city bus\n" +
	"fr[ií]o; frío; cold; Cold weather\n"

func newTestGlossary(t *testing.T, maxAge time.Duration) *Glossary {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glossary_terms.csv")
	if err := os.WriteFile(path, []byte(testTable), 0o644); err != nil {
		t.Fatal(err)
	}
	return New(path, maxAge, testLogger())
}

func TestDamerauLevenshtein(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"Identical", "piscina", "piscina", 0},
		{"Empty against word", "", "abc", 3},
		{"Single deletion", "pisina", "piscina", 1},
		{"Single substitution", "piscena", "piscina", 1},
		{"Transposition is one edit", "psicina", "piscina", 1},
		{"Unrelated", "guagua", "frío", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DamerauLevenshtein(tt.a, tt.b); got != tt.want {
				t.Errorf("DamerauLevenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := DamerauLevenshtein(tt.b, tt.a); got != tt.want {
				t.Errorf("distance is not symmetric for %q, %q", tt.a, tt.b)
			}
		})
	}
}

func TestParseTerms(t *testing.T) {
	t.Run("Tolerates BOM and skips malformed rows", func(t *testing.T) {
		data := []byte("\xef\xbb\xbfguagua; guagua; bus; The city bus\nonly;two\n[oops; bad; regex; row\n")
		terms := ParseTerms(data, testLogger())
		if len(terms) != 1 {
			t.Fatalf("parsed %d terms, want 1", len(terms))
		}
		if terms[0].Canonical != "guagua" {
			t.Errorf("canonical = %q", terms[0].Canonical)
		}
	})

	t.Run("Regex is word-bounded and case-insensitive", func(t *testing.T) {
		terms := ParseTerms([]byte("guagua; guagua; bus; The city bus"), testLogger())
		if !terms[0].Pattern.MatchString("La GUAGUA llega") {
			t.Error("case-insensitive match failed")
		}
		if terms[0].Pattern.MatchString("guaguas") {
			t.Error("matched inside a longer word")
		}
	})
}

func TestScanAndRecent(t *testing.T) {
	g := newTestGlossary(t, 5*time.Minute)
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return clock }

	matched, err := g.Scan("la guagua pasa por la piscina")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("matched %d terms, want 2", len(matched))
	}
	if matched[0].Canonical != "guagua" || matched[1].Canonical != "piscina" {
		t.Errorf("matched order = %q, %q", matched[0].Canonical, matched[1].Canonical)
	}

	// A repeat sighting does not duplicate the remembered set.
	if _, err := g.Scan("otra guagua"); err != nil {
		t.Fatal(err)
	}

	recent := g.Recent()
	if len(recent) != 2 {
		t.Fatalf("recent %d terms, want 2", len(recent))
	}

	// The window is drained.
	if again := g.Recent(); len(again) != 0 {
		t.Errorf("window kept %d terms after drain", len(again))
	}
}

func TestScanPrunesOldTriggers(t *testing.T) {
	g := newTestGlossary(t, 5*time.Minute)
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return clock }

	if _, err := g.Scan("guagua"); err != nil {
		t.Fatal(err)
	}

	clock = clock.Add(6 * time.Minute)
	if recent := g.Recent(); len(recent) != 0 {
		t.Errorf("stale trigger survived: %d terms", len(recent))
	}
}

func TestLookup(t *testing.T) {
	g := newTestGlossary(t, 5*time.Minute)

	t.Run("Exact match ignores diacritics", func(t *testing.T) {
		exact, _, err := g.Lookup("frio")
		if err != nil {
			t.Fatal(err)
		}
		if exact == nil || exact.Canonical != "frío" {
			t.Errorf("exact = %v", exact)
		}
	})

	t.Run("Close misspelling becomes a candidate", func(t *testing.T) {
		exact, candidates, err := g.Lookup("pisina")
		if err != nil {
			t.Fatal(err)
		}
		if exact != nil {
			t.Fatalf("unexpected exact match %q", exact.Canonical)
		}
		if len(candidates) != 1 || candidates[0].Canonical != "piscina" {
			t.Errorf("candidates = %v", candidates)
		}
	})

	t.Run("Distant query finds nothing", func(t *testing.T) {
		exact, candidates, err := g.Lookup("helicopter")
		if err != nil {
			t.Fatal(err)
		}
		if exact != nil || len(candidates) != 0 {
			t.Errorf("exact = %v, candidates = %v", exact, candidates)
		}
	})
}
