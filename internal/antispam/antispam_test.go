package antispam

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeKeywords(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "antispam_keywords.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestKeywordsLayer(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"Exact match", "buy casino now", true},
		{"Case insensitive", "CASINO", true},
		{"Trailing punctuation stripped", "visit casino!!!", true},
		{"Substring does not match", "casinos are great", false},
		{"Clean message", "hello everyone", false},
		{"Empty message", "", false},
	}

	layer := NewKeywordsLayer(writeKeywords(t, "casino\ncrypto\n"), testLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := layer.Check(context.Background(), Message{Text: tt.text})
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			if verdict.Fired != tt.want {
				t.Errorf("Check(%q) fired = %v, want %v", tt.text, verdict.Fired, tt.want)
			}
			if verdict.Fired && verdict.Confidence != 1 {
				t.Errorf("confidence = %v, want 1", verdict.Confidence)
			}
		})
	}
}

func TestKeywordsLayerMissingFileIsInert(t *testing.T) {
	layer := NewKeywordsLayer(filepath.Join(t.TempDir(), "absent.txt"), testLogger())
	verdict, err := layer.Check(context.Background(), Message{Text: "casino"})
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if verdict.Fired {
		t.Error("layer fired without a keyword list")
	}
}

func TestKeywordsLayerInvalidateReloads(t *testing.T) {
	path := writeKeywords(t, "casino\n")
	layer := NewKeywordsLayer(path, testLogger())

	verdict, _ := layer.Check(context.Background(), Message{Text: "pizza"})
	if verdict.Fired {
		t.Fatal("unexpected fire before reload")
	}

	if err := os.WriteFile(path, []byte("pizza\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Still the cached list.
	verdict, _ = layer.Check(context.Background(), Message{Text: "pizza"})
	if verdict.Fired {
		t.Fatal("cached list was bypassed")
	}

	layer.Invalidate()
	verdict, _ = layer.Check(context.Background(), Message{Text: "pizza"})
	if !verdict.Fired {
		t.Error("reloaded list not in effect")
	}
}

func TestEmojisLayer(t *testing.T) {
	layer := NewEmojisLayer(5)

	tests := []struct {
		name  string
		count int
		want  bool
	}{
		{"Below threshold", 3, false},
		{"At threshold", 5, false},
		{"Above threshold", 6, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := layer.Check(context.Background(), Message{CustomEmojiCount: tt.count})
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			if verdict.Fired != tt.want {
				t.Errorf("count %d fired = %v, want %v", tt.count, verdict.Fired, tt.want)
			}
		})
	}
}

type stubLayer struct {
	name    string
	verdict Verdict
	err     error
}

func (s *stubLayer) Name() string { return s.name }
func (s *stubLayer) Check(context.Context, Message) (Verdict, error) {
	return s.verdict, s.err
}

func TestDetectorComposition(t *testing.T) {
	t.Run("No layers never fires", func(t *testing.T) {
		result, err := NewDetector(testLogger()).Classify(context.Background(), Message{Text: "anything"})
		if err != nil {
			t.Fatalf("Classify() error = %v", err)
		}
		if result.Spam {
			t.Error("empty detector fired")
		}
	})

	t.Run("Any layer firing condemns", func(t *testing.T) {
		detector := NewDetector(testLogger(),
			&stubLayer{name: "keywords"},
			&stubLayer{name: "openai", verdict: Verdict{Fired: true, Confidence: 0.93}},
		)
		result, err := detector.Classify(context.Background(), Message{})
		if err != nil {
			t.Fatalf("Classify() error = %v", err)
		}
		if !result.Spam {
			t.Fatal("detector did not fire")
		}
		if result.Trigger() != "openai" {
			t.Errorf("trigger = %q", result.Trigger())
		}
	})

	t.Run("Highest confidence and joined names", func(t *testing.T) {
		detector := NewDetector(testLogger(),
			&stubLayer{name: "keywords", verdict: Verdict{Fired: true, Confidence: 1}},
			&stubLayer{name: "openai", verdict: Verdict{Fired: true, Confidence: 0.93}},
		)
		result, _ := detector.Classify(context.Background(), Message{})
		if result.Trigger() != "keywords,openai" {
			t.Errorf("trigger = %q", result.Trigger())
		}
		if result.Confidence != 1 {
			t.Errorf("confidence = %v, want 1", result.Confidence)
		}
	})

	t.Run("Firing layer wins over failing layer", func(t *testing.T) {
		detector := NewDetector(testLogger(),
			&stubLayer{name: "openai", err: errors.New("embedding service down")},
			&stubLayer{name: "keywords", verdict: Verdict{Fired: true, Confidence: 1}},
		)
		result, err := detector.Classify(context.Background(), Message{})
		if !result.Spam {
			t.Error("verdict lost to a failing layer")
		}
		if err == nil {
			t.Error("layer error was swallowed")
		}
	})
}

type stubEmbedder struct {
	embedding []float64
	err       error
}

func (s *stubEmbedder) Embed(context.Context, string) ([]float64, error) {
	return s.embedding, s.err
}

func writeModel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "antispam_openai.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenAILayer(t *testing.T) {
	// Weights [1, 0], bias 0, Platt A -4, B 0: p = 1/(1+exp(-4*e0)).
	path := writeModel(t, `{"weights": [1, 0], "bias": 0, "platt_a": -4, "platt_b": 0}`)

	t.Run("Fires above threshold", func(t *testing.T) {
		layer := NewOpenAILayer(path, 0.9, &stubEmbedder{embedding: []float64{1, 0}}, testLogger())
		verdict, err := layer.Check(context.Background(), Message{Text: "spam"})
		if err != nil {
			t.Fatalf("Check() error = %v", err)
		}
		if !verdict.Fired {
			t.Errorf("did not fire, confidence = %v", verdict.Confidence)
		}
	})

	t.Run("Stays quiet below threshold", func(t *testing.T) {
		layer := NewOpenAILayer(path, 0.9, &stubEmbedder{embedding: []float64{0, 0}}, testLogger())
		verdict, err := layer.Check(context.Background(), Message{Text: "ham"})
		if err != nil {
			t.Fatalf("Check() error = %v", err)
		}
		if verdict.Fired {
			t.Errorf("fired at confidence %v", verdict.Confidence)
		}
	})

	t.Run("Dimension mismatch is an error", func(t *testing.T) {
		layer := NewOpenAILayer(path, 0.9, &stubEmbedder{embedding: []float64{1, 2, 3}}, testLogger())
		if _, err := layer.Check(context.Background(), Message{}); err == nil {
			t.Error("expected dimension error")
		}
	})

	t.Run("Embedder failure propagates", func(t *testing.T) {
		layer := NewOpenAILayer(path, 0.9, &stubEmbedder{err: errors.New("remote down")}, testLogger())
		if _, err := layer.Check(context.Background(), Message{}); err == nil {
			t.Error("expected embedder error")
		}
	})
}

func TestParseModelRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Not JSON", "not json"},
		{"No weights", `{"bias": 1}`},
		{"Empty weights", `{"weights": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseModel([]byte(tt.data)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}
