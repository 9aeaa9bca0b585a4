package scenes

import (
	"fmt"
	"strings"
)

// Normalize turns split action fragments into ordered scenes using the
// smart-split policy: the most recently detected object is carried forward
// across fragments that do not name a new one, and dialogue attaches only to
// the terminal scene (compound actions are one continuous take with a single
// spoken line at the end).
//
// Object detection is substring containment against the fragment text; when
// several objects match, the first in list order wins.
func Normalize(characterID string, actions, objects []string, dialogue string, duration float64) []Scene {
	if duration <= 0 {
		duration = DefaultDuration
	}

	out := make([]Scene, 0, len(actions))
	var current *string

	for i, action := range actions {
		for _, obj := range objects {
			if strings.Contains(action, obj) {
				o := obj
				current = &o
				break
			}
		}

		s := Scene{
			SceneID:     fmt.Sprintf("scene_%d", i+1),
			CharacterID: characterID,
			Action:      action,
			Object:      current,
			Duration:    duration,
		}
		if dialogue != "" && i == len(actions)-1 {
			d := dialogue
			s.Dialogue = &d
		}
		out = append(out, s)
	}
	return out
}

// NormalizeStrict validates caller-supplied scenes where objects and
// durations are explicit rather than derived from a compound string.
// Durations are clamped into [MinDuration, MaxDuration]; a scene without an
// action or object is a blocking error. Overlong dialogue produces a warning
// but does not fail the batch.
func NormalizeStrict(characterID string, inputs []SceneInput) ([]Scene, []string, error) {
	out := make([]Scene, 0, len(inputs))
	var warnings []string

	for i, in := range inputs {
		id := fmt.Sprintf("scene_%d", i+1)

		action := strings.TrimSpace(in.Action)
		if action == "" {
			return nil, nil, fmt.Errorf("%s: action is required", id)
		}
		if in.Object == nil || strings.TrimSpace(*in.Object) == "" {
			return nil, nil, fmt.Errorf("%s: object is required", id)
		}

		duration := DefaultDuration
		if in.Duration != nil {
			duration = clampDuration(*in.Duration)
		}

		if in.Dialogue != nil {
			if n := len(strings.Fields(*in.Dialogue)); n > MaxDialogueWords {
				warnings = append(warnings, fmt.Sprintf("%s: dialogue too long (%d words, max %d)", id, n, MaxDialogueWords))
			}
		}

		out = append(out, Scene{
			SceneID:     id,
			CharacterID: characterID,
			Action:      action,
			Object:      in.Object,
			Dialogue:    in.Dialogue,
			Duration:    duration,
		})
	}
	return out, warnings, nil
}

func clampDuration(d float64) float64 {
	if d < MinDuration {
		return MinDuration
	}
	if d > MaxDuration {
		return MaxDuration
	}
	return d
}
