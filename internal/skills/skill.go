// Package skills provides the in-memory trampoline skill dataset and the
// relevance matching used to ground chat prompts.
package skills

// Skill is a single record from the skill dataset.
//
// Name may encode alternate names, either as "/"-separated segments or as a
// trailing parenthetical, e.g. "Triffis / Triff (Triff Pike)". Notation is
// the FIG shorthand code and may be empty.
type Skill struct {
	Name        string
	Notation    string
	Difficulty  float64
	Description string
}
