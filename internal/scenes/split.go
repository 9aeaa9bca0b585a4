package scenes

import "strings"

// Literal delimiters in the action description language. Splitting is plain
// substring matching, not regex.
const (
	ActionDelimiter = " lalu "
	ObjectDelimiter = " dan "
)

// Split tokenizes a compound action string and an optional compound object
// string into ordered fragment lists. Fragments are trimmed; empty fragments
// are dropped. With no delimiter present the action list is exactly the
// trimmed input.
func Split(actionText, objectText string) (actions []string, objects []string) {
	actions = splitOn(actionText, ActionDelimiter)
	if objectText != "" {
		objects = splitOn(objectText, ObjectDelimiter)
	}
	return actions, objects
}

func splitOn(text, delim string) []string {
	var out []string
	for _, frag := range strings.Split(text, delim) {
		frag = strings.TrimSpace(frag)
		if frag != "" {
			out = append(out, frag)
		}
	}
	return out
}
