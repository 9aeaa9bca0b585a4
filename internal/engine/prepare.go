package engine

import "github.com/kago96/character-worker/internal/timeline"

// SceneDescriptor is the engine-agnostic unit handed to a video/voice
// generation backend: one time window with its motion, object, dialogue and
// voice data plus fixed camera and generation constraints.
type SceneDescriptor struct {
	SceneIndex  int                   `json:"scene_index"`
	Start       float64               `json:"start"`
	End         float64               `json:"end"`
	CharacterID string                `json:"character_id"`
	Motion      string                `json:"motion"`
	Object      *string               `json:"object"`
	Dialogue    *string               `json:"dialogue"`
	Voice       *timeline.VoiceWindow `json:"voice"`
	Camera      CameraMeta            `json:"camera"`
	Rules       Rules                 `json:"rules"`
}

// CameraMeta is fixed for every generated scene: a static medium shot.
type CameraMeta struct {
	Shot     string `json:"shot"`
	Movement string `json:"movement"`
}

// Rules constrain what the generation engine may render per scene.
type Rules struct {
	MaxObjects      int  `json:"max_objects"`
	HumanMotionOnly bool `json:"human_motion_only"`
	SingleCharacter bool `json:"single_character"`
}

// Prepare maps timeline entries into engine-ready scene descriptors for the
// given character.
func Prepare(characterID string, entries []timeline.Entry) []SceneDescriptor {
	out := make([]SceneDescriptor, 0, len(entries))
	for _, e := range entries {
		out = append(out, SceneDescriptor{
			SceneIndex:  e.SceneIndex,
			Start:       e.Start,
			End:         e.End,
			CharacterID: characterID,
			Motion:      e.Action,
			Object:      e.Object,
			Dialogue:    e.Dialogue,
			Voice:       e.Voice,
			Camera:      CameraMeta{Shot: "medium", Movement: "static"},
			Rules:       Rules{MaxObjects: 1, HumanMotionOnly: true, SingleCharacter: true},
		})
	}
	return out
}
