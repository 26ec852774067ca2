// Package glossary recognizes community slang in chat messages and answers
// "what does that mean" questions. Terms live in an administrator-editable
// CSV; recent sightings are kept in a rolling window so an /explain request
// can cover the last few minutes of conversation.
package glossary

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Term is one glossary entry.
type Term struct {
	Pattern     *regexp.Regexp
	Canonical   string
	Foreign     string
	Explanation string

	// folded is the diacritics-stripped lowercase canonical, the key used by
	// exact and fuzzy lookup.
	folded string
}

type trigger struct {
	term *Term
	at   time.Time
}

// Glossary holds the term table and the rolling trigger window.
type Glossary struct {
	path    string
	maxAge  time.Duration
	logsink *slog.Logger
	now     func() time.Time

	mu     sync.Mutex
	terms  []*Term
	loaded bool
	window []trigger
}

func New(path string, maxAge time.Duration, logsink *slog.Logger) *Glossary {
	return &Glossary{path: path, maxAge: maxAge, logsink: logsink, now: time.Now}
}

// Fold lowercases a string and strips diacritics, so "piscína" and "piscina"
// compare equal.
func Fold(s string) string {
	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(chain, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

// ParseTerms reads the semicolon-separated table `regex; canonical; foreign;
// explanation`. A UTF-8 BOM is tolerated; malformed rows are skipped with a
// warning.
func ParseTerms(data []byte, logsink *slog.Logger) []*Term {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		logsink.Warn("Failed to read glossary table", "error", err)
		return nil
	}

	terms := make([]*Term, 0, len(records))
	for i, record := range records {
		if len(record) != 4 {
			logsink.Warn("Skipping malformed glossary row", "row", i+1, "fields", len(record))
			continue
		}
		for j := range record {
			record[j] = strings.TrimSpace(record[j])
		}
		pattern, err := regexp.Compile(`(?i)\b` + record[0] + `\b`)
		if err != nil {
			logsink.Warn("Skipping glossary row with bad regex", "row", i+1, "error", err)
			continue
		}
		terms = append(terms, &Term{
			Pattern:     pattern,
			Canonical:   record[1],
			Foreign:     record[2],
			Explanation: record[3],
			folded:      Fold(record[1]),
		})
	}
	return terms
}

func (g *Glossary) load() ([]*Term, error) {
	if g.loaded {
		return g.terms, nil
	}
	data, err := os.ReadFile(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			g.logsink.Warn("Glossary table missing", "path", g.path)
			data = nil
		} else {
			return nil, fmt.Errorf("failed to read glossary table: %w", err)
		}
	}
	g.terms = ParseTerms(data, g.logsink)
	g.loaded = true
	g.logsink.Info("Glossary loaded", "terms", len(g.terms))
	return g.terms, nil
}

// Invalidate drops the cached table so the next use reloads from disk.
func (g *Glossary) Invalidate() {
	g.mu.Lock()
	g.loaded = false
	g.terms = nil
	g.mu.Unlock()
}

func (g *Glossary) prune(now time.Time) {
	cutoff := now.Add(-g.maxAge)
	kept := g.window[:0]
	for _, t := range g.window {
		if t.at.After(cutoff) {
			kept = append(kept, t)
		}
	}
	g.window = kept
}

// Scan records every term matching the text in the trigger window and
// returns the set that matched, sorted by canonical form.
func (g *Glossary) Scan(text string) ([]*Term, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	terms, err := g.load()
	if err != nil {
		return nil, err
	}
	now := g.now()
	g.prune(now)

	var matched []*Term
	for _, term := range terms {
		if term.Pattern.MatchString(text) {
			matched = append(matched, term)
			g.window = append(g.window, trigger{term: term, at: now})
		}
	}
	sortTerms(matched)
	return matched, nil
}

// Recent drains the trigger window: it returns the remembered terms,
// deduplicated and sorted by canonical form, and clears the window.
func (g *Glossary) Recent() []*Term {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.prune(g.now())

	seen := make(map[string]struct{})
	var terms []*Term
	for _, t := range g.window {
		if _, ok := seen[t.term.Canonical]; ok {
			continue
		}
		seen[t.term.Canonical] = struct{}{}
		terms = append(terms, t.term)
	}
	g.window = nil
	sortTerms(terms)
	return terms
}

// Lookup resolves a queried term. An exact match on the folded canonical
// returns it alone; otherwise every term within Damerau-Levenshtein distance
// 2 (and length difference at most 2) comes back as a fuzzy candidate.
func (g *Glossary) Lookup(query string) (exact *Term, candidates []*Term, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	terms, err := g.load()
	if err != nil {
		return nil, nil, err
	}
	folded := Fold(query)
	for _, term := range terms {
		if term.folded == folded {
			return term, nil, nil
		}
	}
	for _, term := range terms {
		diff := len([]rune(term.folded)) - len([]rune(folded))
		if diff < -2 || diff > 2 {
			continue
		}
		if DamerauLevenshtein(term.folded, folded) <= 2 {
			candidates = append(candidates, term)
		}
	}
	sortTerms(candidates)
	return nil, candidates, nil
}

func sortTerms(terms []*Term) {
	sort.Slice(terms, func(i, j int) bool { return terms[i].Canonical < terms[j].Canonical })
}
