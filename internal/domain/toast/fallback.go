package toast

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrNoReflections is returned when synthesis is attempted over an empty set
// of notes. The caller must skip the user, not create a toast.
var ErrNoReflections = errors.New("no reflections available for synthesis")

// fallbackTemplates are the degradation mode when the language provider is
// unconfigured or failing. Each takes the note count. Pure formatting, so
// this path can never fail.
var fallbackTemplates = []string{
	"What a week! You took a moment to reflect %d times — that's %d wins worth raising a glass to. Keep showing up for yourself!",
	"Here's to you! You captured %d reflections this week. Every one of those %d moments is proof you're paying attention to your own story.",
	"Cheers to a week well lived! With %d notes in your journal, you gave yourself %d chances to grow. That deserves a toast!",
	"You did it — %d reflections this week! Those %d small pauses add up to something big. Celebrate yourself today!",
}

// FallbackMessage builds a templated toast referencing the note count,
// choosing one of the fixed templates at random.
func FallbackMessage(noteCount int) string {
	tmpl := fallbackTemplates[rand.Intn(len(fallbackTemplates))]
	return fmt.Sprintf(tmpl, noteCount, noteCount)
}
