package scenes

// Scene is one discrete unit of action derived from a compound description.
// Object and Dialogue are nil when absent rather than empty strings so the
// JSON output carries explicit nulls for downstream engines.
type Scene struct {
	SceneID     string  `json:"scene_id"`
	CharacterID string  `json:"character_id"`
	Action      string  `json:"action"`
	Object      *string `json:"object"`
	Dialogue    *string `json:"dialogue"`
	Duration    float64 `json:"duration"`
}

// SceneInput is a caller-supplied scene on the validate and timeline routes,
// before normalization. Optional fields are pointers so absence is
// distinguishable from zero values.
type SceneInput struct {
	Action   string   `json:"action"`
	Object   *string  `json:"object"`
	Dialogue *string  `json:"dialogue"`
	Duration *float64 `json:"duration"`
}

const (
	// DefaultDuration is applied when a request carries no duration.
	DefaultDuration = 5.0

	// MinDuration and MaxDuration bound per-scene durations in strict mode.
	MinDuration = 3.0
	MaxDuration = 5.0

	// MaxDialogueWords is the advisory cap before a "dialogue too long"
	// warning is emitted. Longer lines still process.
	MaxDialogueWords = 12
)
