package antispam

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// Embedder turns text into a vector. The production implementation calls the
// OpenAI embeddings endpoint.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// OpenAIEmbedder calls the embeddings API.
type OpenAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func NewOpenAIEmbedder(apiKey string, model openai.EmbeddingModel) *OpenAIEmbedder {
	return &OpenAIEmbedder{client: openai.NewClient(apiKey), model: model}
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding response is empty")
	}
	embedding := make([]float64, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		embedding[i] = float64(v)
	}
	return embedding, nil
}

// Model is a linear decision function over an embedding with Platt-scaled
// probability output.
type Model struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
	PlattA  float64   `json:"platt_a"`
	PlattB  float64   `json:"platt_b"`
}

// ParseModel decodes and validates a serialized classifier. Used both for
// loading and as the validation hook when an administrator uploads a new one.
func ParseModel(data []byte) (*Model, error) {
	var model Model
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("failed to parse classifier: %w", err)
	}
	if len(model.Weights) == 0 {
		return nil, fmt.Errorf("classifier has no weights")
	}
	return &model, nil
}

// Probability returns the positive-class probability for an embedding.
func (m *Model) Probability(embedding []float64) (float64, error) {
	if len(embedding) != len(m.Weights) {
		return 0, fmt.Errorf("embedding dimension %d does not match classifier dimension %d",
			len(embedding), len(m.Weights))
	}
	score := m.Bias
	for i, w := range m.Weights {
		score += w * embedding[i]
	}
	return 1 / (1 + math.Exp(m.PlattA*score+m.PlattB)), nil
}

// OpenAILayer fires when the classifier's spam probability exceeds the
// configured threshold. The model file is loaded lazily and swapped only
// after a successful parse.
type OpenAILayer struct {
	path      string
	threshold float64
	embedder  Embedder
	logsink   *slog.Logger

	mu     sync.RWMutex
	model  *Model
	loaded bool
}

func NewOpenAILayer(path string, threshold float64, embedder Embedder, logsink *slog.Logger) *OpenAILayer {
	return &OpenAILayer{path: path, threshold: threshold, embedder: embedder, logsink: logsink}
}

func (l *OpenAILayer) Name() string { return "openai" }

func (l *OpenAILayer) load() (*Model, error) {
	l.mu.RLock()
	if l.loaded {
		model := l.model
		l.mu.RUnlock()
		return model, nil
	}
	l.mu.RUnlock()

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read classifier: %w", err)
	}
	model, err := ParseModel(data)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.model = model
	l.loaded = true
	l.mu.Unlock()

	l.logsink.Info("Classifier loaded", "dimensions", len(model.Weights))
	return model, nil
}

// Invalidate drops the cached model so the next check reloads from disk.
func (l *OpenAILayer) Invalidate() {
	l.mu.Lock()
	l.loaded = false
	l.model = nil
	l.mu.Unlock()
}

func (l *OpenAILayer) Check(ctx context.Context, msg Message) (Verdict, error) {
	model, err := l.load()
	if err != nil {
		return Verdict{}, err
	}
	embedding, err := l.embedder.Embed(ctx, msg.Text)
	if err != nil {
		return Verdict{}, err
	}
	probability, err := model.Probability(embedding)
	if err != nil {
		return Verdict{}, err
	}
	if probability > l.threshold {
		return Verdict{Fired: true, Confidence: probability}, nil
	}
	return Verdict{Confidence: probability}, nil
}
