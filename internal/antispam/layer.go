// Package antispam classifies first messages from unknown users. Layers are
// independent detectors; a message is spam as soon as any enabled layer fires.
package antispam

import "context"

// Message is the platform-independent view of an incoming message.
type Message struct {
	Text             string
	CustomEmojiCount int
}

// Verdict is one layer's opinion.
type Verdict struct {
	Fired      bool
	Confidence float64
}

// Layer checks a message against one detection strategy.
type Layer interface {
	Name() string
	Check(ctx context.Context, msg Message) (Verdict, error)
}
