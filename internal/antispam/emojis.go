package antispam

import "context"

// EmojisLayer fires when a message carries more custom emojis than allowed.
type EmojisLayer struct {
	maxCount int
}

func NewEmojisLayer(maxCount int) *EmojisLayer {
	return &EmojisLayer{maxCount: maxCount}
}

func (l *EmojisLayer) Name() string { return "emojis" }

func (l *EmojisLayer) Check(_ context.Context, msg Message) (Verdict, error) {
	if msg.CustomEmojiCount > l.maxCount {
		return Verdict{Fired: true, Confidence: 1}, nil
	}
	return Verdict{}, nil
}
