package timeline

import "github.com/kago96/character-worker/internal/scenes"

// VoiceWindow is the sub-interval of a scene during which spoken dialogue
// with lip-sync is active. It is always strictly inside its owning entry.
type VoiceWindow struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	LipSync bool    `json:"lip_sync"`
}

// Entry is one scene placed on the shared time axis. Entries are contiguous:
// each entry starts where the previous one ended, the first at 0.
type Entry struct {
	SceneIndex int          `json:"scene_index"`
	Start      float64      `json:"start"`
	End        float64      `json:"end"`
	Action     string       `json:"action"`
	Object     *string      `json:"object"`
	Dialogue   *string      `json:"dialogue"`
	Voice      *VoiceWindow `json:"voice"`
}

const (
	voiceLeadIn = 0.3
	voiceMargin = 0.2
	voiceCap    = 3.0
)

// Build lays scenes end to end on a single time axis and carves a voice
// window out of every scene that carries dialogue. Scene durations are
// elastic: when the voice window cannot fit inside the scene's nominal
// bounds, the scene end moves out so the window is strictly contained.
// Returns the ordered entries and the total duration of the take.
func Build(scs []scenes.Scene) ([]Entry, float64) {
	entries := make([]Entry, 0, len(scs))
	currentTime := 0.0

	for i, s := range scs {
		duration := s.Duration
		if duration <= 0 {
			duration = scenes.DefaultDuration
		}

		start := currentTime
		end := start + duration

		var voice *VoiceWindow
		if s.Dialogue != nil {
			voiceStart := start + voiceLeadIn
			voiceEnd := min(end-voiceMargin, voiceStart+voiceCap)
			if voiceEnd <= voiceStart {
				// Scene too short for lead-in plus margin: fall back to a
				// cap-length window and let the scene stretch around it.
				voiceEnd = voiceStart + voiceCap
			}
			if voiceEnd >= end {
				end = voiceEnd + voiceMargin
			}
			voice = &VoiceWindow{Start: voiceStart, End: voiceEnd, LipSync: true}
		}

		entries = append(entries, Entry{
			SceneIndex: i + 1,
			Start:      start,
			End:        end,
			Action:     s.Action,
			Object:     s.Object,
			Dialogue:   s.Dialogue,
			Voice:      voice,
		})
		currentTime = end
	}

	return entries, currentTime
}
