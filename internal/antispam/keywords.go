package antispam

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"unicode"
)

// KeywordsLayer fires when any message token equals a banned keyword. The
// keyword list is loaded lazily from disk and can be rebound after an
// administrator upload.
type KeywordsLayer struct {
	path    string
	logsink *slog.Logger

	mu       sync.RWMutex
	keywords map[string]struct{}
	loaded   bool
}

func NewKeywordsLayer(path string, logsink *slog.Logger) *KeywordsLayer {
	return &KeywordsLayer{path: path, logsink: logsink}
}

func (l *KeywordsLayer) Name() string { return "keywords" }

// ParseKeywords reads one keyword per line, lowercased, blanks skipped.
func ParseKeywords(data []byte) map[string]struct{} {
	keywords := make(map[string]struct{})
	for _, line := range strings.Split(string(data), "\n") {
		word := strings.ToLower(strings.TrimSpace(line))
		if word == "" {
			continue
		}
		keywords[word] = struct{}{}
	}
	return keywords
}

func (l *KeywordsLayer) load() (map[string]struct{}, error) {
	l.mu.RLock()
	if l.loaded {
		keywords := l.keywords
		l.mu.RUnlock()
		return keywords, nil
	}
	l.mu.RUnlock()

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			l.logsink.Warn("Keyword list missing, layer inert", "path", l.path)
			data = nil
		} else {
			return nil, fmt.Errorf("failed to read keyword list: %w", err)
		}
	}
	keywords := ParseKeywords(data)

	l.mu.Lock()
	l.keywords = keywords
	l.loaded = true
	l.mu.Unlock()

	l.logsink.Info("Keyword list loaded", "count", len(keywords))
	return keywords, nil
}

// Invalidate drops the cached list so the next check reloads from disk.
func (l *KeywordsLayer) Invalidate() {
	l.mu.Lock()
	l.loaded = false
	l.keywords = nil
	l.mu.Unlock()
}

func (l *KeywordsLayer) Check(_ context.Context, msg Message) (Verdict, error) {
	keywords, err := l.load()
	if err != nil {
		return Verdict{}, err
	}
	if len(keywords) == 0 {
		return Verdict{}, nil
	}
	for _, token := range tokenize(msg.Text) {
		if _, ok := keywords[token]; ok {
			return Verdict{Fired: true, Confidence: 1}, nil
		}
	}
	return Verdict{}, nil
}

// tokenize lowercases, splits on whitespace and strips trailing punctuation,
// so "Casino!!!" matches the keyword "casino".
func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		token := strings.TrimRightFunc(field, unicode.IsPunct)
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
