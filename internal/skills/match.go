package skills

import (
	"context"
	"strings"
)

// broadAnalysisTriggers are phrases that signal a comparative or ranking
// question. Such questions need the whole dataset rather than a name hit,
// so any of these bypasses alias matching entirely. This is a deliberate,
// enumerable heuristic; it will miss some phrasings and over-trigger on
// others.
var broadAnalysisTriggers = []string{
	"highest",
	"lowest",
	"most difficult",
	"least difficult",
	"hardest",
	"easiest",
	"compare",
	"difference",
	"which skill",
}

// Matcher decides which stored skills are relevant to a free-text question.
type Matcher struct {
	store *Store
}

// NewMatcher creates a Matcher over the given store.
func NewMatcher(store *Store) *Matcher {
	return &Matcher{store: store}
}

// MatchResult is the outcome of relevance matching for one question.
type MatchResult struct {
	// Skills relevant to the question, in dataset order.
	Skills []Skill
	// BroadAnalysis is true when a trigger phrase caused the whole dataset
	// to be returned.
	BroadAnalysis bool
}

// Match returns the skills relevant to the question.
//
// A skill is relevant when the normalized question contains one of the
// skill's aliases as a substring. Comparative questions (see
// broadAnalysisTriggers) return the entire dataset instead. Matching never
// fails beyond a dataset load error; an empty result is valid and left to
// the caller to handle.
func (m *Matcher) Match(ctx context.Context, question string) (MatchResult, error) {
	all, err := m.store.Load(ctx)
	if err != nil {
		return MatchResult{}, err
	}

	if IsBroadAnalysis(question) {
		return MatchResult{Skills: all, BroadAnalysis: true}, nil
	}

	normalized := Normalize(question)

	var matched []Skill
	for _, skill := range all {
		if skillMentioned(normalized, skill) {
			matched = append(matched, skill)
		}
	}

	return MatchResult{Skills: matched}, nil
}

// IsBroadAnalysis reports whether the raw question contains any
// broad-analysis trigger phrase (case-insensitive).
func IsBroadAnalysis(question string) bool {
	q := strings.ToLower(question)
	for _, trigger := range broadAnalysisTriggers {
		if strings.Contains(q, trigger) {
			return true
		}
	}
	return false
}

// skillMentioned reports whether any alias of the skill appears in the
// normalized question.
func skillMentioned(normalizedQuestion string, skill Skill) bool {
	for _, alias := range Aliases(skill.Name) {
		// An empty alias would be "contained" in every question.
		if alias == "" {
			continue
		}
		if strings.Contains(normalizedQuestion, alias) {
			return true
		}
	}
	return false
}

// Aliases derives the normalized alternate names encoded in a skill name:
// each "/"-separated segment, plus the contents of any parenthetical in the
// raw name. Empty segments are dropped.
func Aliases(name string) []string {
	var aliases []string
	for _, part := range strings.Split(name, "/") {
		if alias := Normalize(part); alias != "" {
			aliases = append(aliases, alias)
		}
	}
	if inner := parenthetical(name); inner != "" {
		if alias := Normalize(inner); alias != "" {
			aliases = append(aliases, alias)
		}
	}
	return aliases
}

// Normalize lowercases text, removes parenthetical substrings, strips every
// character that is not a lowercase letter, digit, or whitespace, and trims
// the result.
func Normalize(text string) string {
	lower := strings.ToLower(text)
	lower = stripParentheticals(lower)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == '\t', r == '\n':
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(b.String())
}

// stripParentheticals removes every "(...)" span, including the parens.
// Unbalanced input keeps the text after the stray paren.
func stripParentheticals(text string) string {
	var b strings.Builder
	depth := 0
	for _, r := range text {
		switch {
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parenthetical returns the contents of the first "(...)" span in the raw
// name, or "" when there is none.
func parenthetical(name string) string {
	open := strings.Index(name, "(")
	if open < 0 {
		return ""
	}
	end := strings.Index(name[open:], ")")
	if end < 0 {
		return ""
	}
	return name[open+1 : open+end]
}
