package user

import "time"

// VoiceStyle selects the narration voice a user prefers. Unknown values fall
// back to the provider's default voice, never an error.
type VoiceStyle string

const (
	VoiceStyleWarm      VoiceStyle = "WARM"
	VoiceStyleEnergetic VoiceStyle = "ENERGETIC"
	VoiceStyleCalm      VoiceStyle = "CALM"
	VoiceStyleNarrator  VoiceStyle = "NARRATOR"
)

// User carries the preference fields the toast engine reads. The wider
// product profile (email, social graph, badges) lives outside this service.
type User struct {
	ID             int64
	DisplayName    string
	Timezone       string // IANA name; invalid values are treated as UTC downstream
	WeeklyToastDay int    // 0=Sunday .. 6=Saturday
	VoiceStyle     VoiceStyle
	IsActive       bool
	IsTest         bool // synthetic/system accounts, excluded from scheduled ticks
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
