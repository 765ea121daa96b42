package toast

import (
	"database/sql"
	"time"
)

// Type indicates the cadence a toast was generated for. Only WEEKLY is
// produced today; the column is wide enough for daily/monthly/yearly later.
type Type string

const (
	TypeWeekly Type = "WEEKLY"
)

// WeeklyWindowDays is the length of the weekly eligibility window.
const WeeklyWindowDays = 7

// Toast is a synthesized celebratory summary of a user's reflections over one
// eligibility window. Corresponds to the 'toasts' table.
//
// AudioURL holds only real URLs. When narration fails, NarrationError carries
// the classified reason instead; the text content is durable either way.
type Toast struct {
	ID             int64
	UserID         int64
	Content        string
	AudioURL       sql.NullString
	NarrationError sql.NullString // one of the NarrationFailure values
	NoteIDs        []int64        // notes included, in the order they were synthesized
	Type           Type
	IntervalStart  time.Time
	IntervalEnd    time.Time
	CreatedAt      time.Time
}
