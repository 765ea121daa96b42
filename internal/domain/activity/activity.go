package activity

import "context"

// Event types recorded by the toast engine.
const (
	EventToastGenerated   = "TOAST_GENERATED"
	EventNarrationFailed  = "NARRATION_FAILED"
	EventToastRegenerated = "TOAST_REGENERATED"
)

// Logger records lightweight activity entries. Calls are best-effort:
// failures are logged by the caller and never roll back a toast.
type Logger interface {
	Log(ctx context.Context, userID int64, eventType string, metadata map[string]any) error
}
