package speech

import "weekly_toast_bot/internal/domain/user"

// Static catalogue mapping a user's voice style to an ElevenLabs premade
// voice. An unknown style gets the default voice, never an error.
var voiceCatalogue = map[user.VoiceStyle]string{
	user.VoiceStyleWarm:      "21m00Tcm4TlvDq8ikWAM", // Rachel
	user.VoiceStyleEnergetic: "AZnzlk1XvdvUeBnXmlld", // Domi
	user.VoiceStyleCalm:      "EXAVITQu4vr4xnSDxMaL", // Bella
	user.VoiceStyleNarrator:  "pNInz6obpgDQGcFmaJgB", // Adam
}

const defaultVoiceID = "21m00Tcm4TlvDq8ikWAM"

// VoiceIDFor resolves a voice style to a provider voice identifier.
func VoiceIDFor(style user.VoiceStyle) string {
	if id, ok := voiceCatalogue[style]; ok {
		return id
	}
	return defaultVoiceID
}
