package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"diaspora-bot/internal/fileswap"
)

// RewriteSettingsFile regenerates settings.yaml: every setting appears in
// declaration order with its comment, defaults commented out, and values the
// operator has overridden kept live. The file is swapped atomically.
func (c *Config) RewriteSettingsFile() error {
	overrides := map[string]any{}
	if raw, err := os.ReadFile(c.SettingsPath()); err == nil {
		if err := yaml.Unmarshal(raw, &overrides); err != nil {
			return fmt.Errorf("failed to parse current settings: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read current settings: %w", err)
	}

	var b strings.Builder
	b.WriteString("# diaspora-bot settings. Uncomment a key to override its default.\n")

	defaults := Defaults()
	v := reflect.ValueOf(defaults)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		key := strings.Split(t.Field(i).Tag.Get("yaml"), ",")[0]
		if key == "" || key == "-" {
			continue
		}

		b.WriteString("\n")
		if comment, ok := comments[key]; ok {
			b.WriteString("# " + comment + "\n")
		}

		if value, ok := overrides[key]; ok {
			block, err := marshalEntry(key, value)
			if err != nil {
				return err
			}
			b.WriteString(block)
			continue
		}

		block, err := marshalEntry(key, v.Field(i).Interface())
		if err != nil {
			return err
		}
		for _, line := range strings.Split(strings.TrimRight(block, "\n"), "\n") {
			b.WriteString("# " + line + "\n")
		}
	}

	validate := func(data []byte) error {
		var parsed Settings
		return yaml.Unmarshal(data, &parsed)
	}
	if err := fileswap.ReplaceWithBackup(c.SettingsPath(), []byte(b.String()), validate); err != nil {
		return fmt.Errorf("failed to rewrite settings file: %w", err)
	}
	return nil
}

func marshalEntry(key string, value any) (string, error) {
	out, err := yaml.Marshal(map[string]any{key: value})
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return string(out), nil
}
