// Package i18n selects a translation catalog per user. Catalogs are JSON
// files named by language code; lookups fall back to the default language and
// finally to the key itself.
package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Translator picks catalog strings for users.
type Translator struct {
	translations map[string]map[string]string
	defaultLang  string

	mu sync.Mutex
	// Single-slot cache: the catalog used for the previous lookup. Almost all
	// consecutive updates come from speakers of the same language.
	slotLang    string
	slotCatalog map[string]string
}

// NewTranslator loads every *.json catalog from dir.
func NewTranslator(dir, defaultLang string) (*Translator, error) {
	t := &Translator{
		translations: make(map[string]map[string]string),
		defaultLang:  defaultLang,
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}
		lang := strings.TrimSuffix(file.Name(), ".json")
		data, err := os.ReadFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog %s: %w", file.Name(), err)
		}
		var catalog map[string]string
		if err := json.Unmarshal(data, &catalog); err != nil {
			return nil, fmt.Errorf("failed to parse catalog %s: %w", file.Name(), err)
		}
		t.translations[lang] = catalog
	}
	if _, ok := t.translations[defaultLang]; !ok {
		return nil, fmt.Errorf("default catalog %q missing", defaultLang)
	}
	return t, nil
}

// Get returns the string for key in the user's language. An empty lang picks
// the default catalog.
func (t *Translator) Get(lang, key string) string {
	if lang == "" {
		lang = t.defaultLang
	}

	t.mu.Lock()
	if t.slotLang != lang {
		catalog, ok := t.translations[lang]
		if !ok {
			catalog = t.translations[t.defaultLang]
		}
		t.slotLang = lang
		t.slotCatalog = catalog
	}
	catalog := t.slotCatalog
	t.mu.Unlock()

	if value, ok := catalog[key]; ok {
		return value
	}
	if value, ok := t.translations[t.defaultLang][key]; ok {
		return value
	}
	return key
}

// Getf formats the string for key with fmt.Sprintf.
func (t *Translator) Getf(lang, key string, args ...any) string {
	return fmt.Sprintf(t.Get(lang, key), args...)
}

// Languages lists the loaded catalog codes.
func (t *Translator) Languages() []string {
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	return langs
}

// Keys returns the key set of one catalog, used by the catalog maintenance
// commands.
func (t *Translator) Keys(lang string) []string {
	keys := make([]string, 0, len(t.translations[lang]))
	for key := range t.translations[lang] {
		keys = append(keys, key)
	}
	return keys
}
