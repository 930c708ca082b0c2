package tts

import (
	"context"
	"errors"
)

// ErrSynthesis marks speech synthesis failures. Answers degrade to
// text-only when synthesis fails, so callers check for this sentinel
// rather than aborting the request.
var ErrSynthesis = errors.New("speech synthesis failed")

// Synthesizer converts answer text to speech and returns a handle (file
// name) that the audio route can serve.
type Synthesizer interface {
	Convert(ctx context.Context, text string) (string, error)
}
