package speech

// ElevenLabs voice ids by character.
const (
	voiceRachel = "21m00Tcm4TlvDq8ikWAM" // warm female
	voiceBella  = "EXAVITQu4vr4xnSDxMaL" // professional female
	voiceElli   = "MF3mGyEYCl7XYWbV9V6O" // friendly female
)

// DefaultVoiceID is used when no tone mapping applies.
const DefaultVoiceID = voiceRachel

// VoiceForTone maps an interview tone to a synthesis voice.
func VoiceForTone(tone string) string {
	switch tone {
	case "friendly":
		return voiceElli
	case "adversarial":
		return voiceBella
	default:
		return voiceRachel
	}
}
