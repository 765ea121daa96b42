package toast

// NarrationFailure classifies why narration could not be produced. Stored in
// the toast's narration_error column; a null column with a null audio_url
// means narration has not been attempted yet.
type NarrationFailure string

const (
	NarrationFailureRateLimited   NarrationFailure = "RATE_LIMITED"
	NarrationFailureQuotaExceeded NarrationFailure = "QUOTA_EXCEEDED"
	NarrationFailureTimeout       NarrationFailure = "TIMEOUT"
	NarrationFailureUnknown       NarrationFailure = "UNKNOWN"
)

// Message returns the user-facing text shown where an audio player would be.
func (f NarrationFailure) Message() string {
	switch f {
	case NarrationFailureRateLimited:
		return "Audio narration is temporarily busy. Your toast text is ready below."
	case NarrationFailureQuotaExceeded:
		return "The weekly audio narration quota has been used up. Your toast text is ready below."
	case NarrationFailureTimeout:
		return "Audio narration took too long to generate. Your toast text is ready below."
	default:
		return "Audio narration could not be generated this time. Your toast text is ready below."
	}
}

// NarrationResult is the terminal outcome of the Narration Synthesizer:
// either a public audio URL or a classified failure. It is never both.
type NarrationResult struct {
	AudioURL string
	Failure  NarrationFailure
}

// OK reports whether narration produced an audio asset.
func (r NarrationResult) OK() bool { return r.AudioURL != "" }

// NarrationSuccess builds a successful result.
func NarrationSuccess(url string) NarrationResult { return NarrationResult{AudioURL: url} }

// NarrationFailed builds a failed result with a classified reason.
func NarrationFailed(reason NarrationFailure) NarrationResult {
	return NarrationResult{Failure: reason}
}
