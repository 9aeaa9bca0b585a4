package identity

import (
	"encoding/json"

	"github.com/kago96/character-worker/internal/scenes"
)

// CharacterRef attaches a character's locked identity record to a scene for
// prompt assembly. The identity blob is opaque and treated as read-only.
type CharacterRef struct {
	ID       string          `json:"id"`
	Identity json.RawMessage `json:"identity"`
}

// EnrichedScene is a Scene plus its character reference.
type EnrichedScene struct {
	scenes.Scene
	Character CharacterRef `json:"character"`
}

// Enrich merges the stored identity into each scene. Purely structural: the
// identity is shared by reference and never mutated.
func Enrich(scs []scenes.Scene, identity json.RawMessage) []EnrichedScene {
	out := make([]EnrichedScene, 0, len(scs))
	for _, s := range scs {
		out = append(out, EnrichedScene{
			Scene:     s,
			Character: CharacterRef{ID: s.CharacterID, Identity: identity},
		})
	}
	return out
}
