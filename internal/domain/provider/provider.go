// Package provider defines interfaces for the external synthesis services the
// toast engine consumes. This decouples the pipeline from the concrete
// HTTP clients in internal/infra.
package provider

import "context"

// Language generates toast prose from a system instruction and a user prompt.
// Implementations must bound the call with a timeout; the pipeline makes a
// single attempt and falls back to templated text on any error.
type Language interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Speech converts text into audio bytes using a provider-specific voice ID.
// Implementations should return classifiable errors (see infra/speech).
type Speech interface {
	SynthesizeSpeech(ctx context.Context, text, voiceID string) ([]byte, error)
}

// ObjectStore persists an audio asset and returns its public URL.
type ObjectStore interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
}
