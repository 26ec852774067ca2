package fileswap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReplaceWithBackup(t *testing.T) {
	tests := []struct {
		name       string
		existing   string
		backup     string
		data       string
		validate   ValidateFunc
		wantErr    bool
		wantFile   string
		wantBackup string
	}{
		{
			name:     "Fresh file",
			data:     "new",
			wantFile: "new",
		},
		{
			name:       "Existing file becomes backup",
			existing:   "old",
			data:       "new",
			wantFile:   "new",
			wantBackup: "old",
		},
		{
			name:       "Existing backup is rotated away",
			existing:   "old",
			backup:     "older",
			data:       "new",
			wantFile:   "new",
			wantBackup: "old",
		},
		{
			name:     "Validation failure leaves disk untouched",
			existing: "old",
			data:     "broken",
			validate: func(_ []byte) error {
				return errors.New("nope")
			},
			wantErr:  true,
			wantFile: "old",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "data.txt")
			if tt.existing != "" {
				if err := os.WriteFile(path, []byte(tt.existing), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			if tt.backup != "" {
				if err := os.WriteFile(path+".backup", []byte(tt.backup), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			err := ReplaceWithBackup(path, []byte(tt.data), tt.validate)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReplaceWithBackup() error = %v, wantErr %v", err, tt.wantErr)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading %s: %v", path, err)
			}
			if string(got) != tt.wantFile {
				t.Errorf("file contents = %q, want %q", got, tt.wantFile)
			}
			if tt.wantBackup != "" {
				gotBackup, err := os.ReadFile(path + ".backup")
				if err != nil {
					t.Fatalf("reading backup: %v", err)
				}
				if string(gotBackup) != tt.wantBackup {
					t.Errorf("backup contents = %q, want %q", gotBackup, tt.wantBackup)
				}
			}
			if _, err := os.Stat(path + ".backup.backup"); !os.IsNotExist(err) {
				t.Errorf("double backup left behind")
			}
		})
	}
}
