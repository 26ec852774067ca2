package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func readCatalog(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	var catalog map[string]string
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return catalog, nil
}

func writeCatalog(path string, catalog map[string]string) error {
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize catalog %s: %w", path, err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// SyncCatalogs copies keys missing from the non-default catalogs out of the
// default one, so translators see every key. It returns the number of keys
// added.
func SyncCatalogs(dir, defaultLang string) (int, error) {
	reference, err := readCatalog(filepath.Join(dir, defaultLang+".json"))
	if err != nil {
		return 0, err
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read catalog directory: %w", err)
	}
	added := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") || file.Name() == defaultLang+".json" {
			continue
		}
		path := filepath.Join(dir, file.Name())
		catalog, err := readCatalog(path)
		if err != nil {
			return added, err
		}
		changed := false
		for key, value := range reference {
			if _, ok := catalog[key]; !ok {
				catalog[key] = value
				added++
				changed = true
			}
		}
		if changed {
			if err := writeCatalog(path, catalog); err != nil {
				return added, err
			}
		}
	}
	return added, nil
}

// CompileCatalogs validates and normalizes every catalog. It returns the
// catalog count and fails on unparseable files or keys absent from the
// default catalog.
func CompileCatalogs(dir, defaultLang string) (int, error) {
	reference, err := readCatalog(filepath.Join(dir, defaultLang+".json"))
	if err != nil {
		return 0, err
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read catalog directory: %w", err)
	}
	compiled := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, file.Name())
		catalog, err := readCatalog(path)
		if err != nil {
			return compiled, err
		}
		for key := range catalog {
			if _, ok := reference[key]; !ok {
				return compiled, fmt.Errorf("catalog %s has key %q missing from the default catalog", file.Name(), key)
			}
		}
		if err := writeCatalog(path, catalog); err != nil {
			return compiled, err
		}
		compiled++
	}
	return compiled, nil
}
