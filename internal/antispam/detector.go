package antispam

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Result is the composed classification of one message.
type Result struct {
	Spam       bool
	Layers     []string
	Confidence float64
}

// Trigger is the comma-joined list of fired layer names, the form stored in
// spam reports.
func (r Result) Trigger() string { return strings.Join(r.Layers, ",") }

// Detector runs every enabled layer and composes their verdicts.
type Detector struct {
	layers  []Layer
	logsink *slog.Logger
}

func NewDetector(logsink *slog.Logger, layers ...Layer) *Detector {
	return &Detector{layers: layers, logsink: logsink}
}

// Classify runs all layers. The message is spam iff any layer fires; the
// result carries the fired layer names and the highest confidence seen. Layer
// errors are joined and returned alongside whatever verdicts succeeded, so a
// firing layer still condemns the message when another layer failed.
func (d *Detector) Classify(ctx context.Context, msg Message) (Result, error) {
	var result Result
	var errs []error
	for _, layer := range d.layers {
		verdict, err := layer.Check(ctx, msg)
		if err != nil {
			errs = append(errs, fmt.Errorf("layer %s: %w", layer.Name(), err))
			continue
		}
		if !verdict.Fired {
			continue
		}
		d.logsink.Info("Spam layer fired", "layer", layer.Name(), "confidence", verdict.Confidence)
		result.Spam = true
		result.Layers = append(result.Layers, layer.Name())
		if verdict.Confidence > result.Confidence {
			result.Confidence = verdict.Confidence
		}
	}
	return result, errors.Join(errs...)
}
