// Package grounding builds the authoritative skill-information block that is
// injected into the model prompt, and enforces the gate that keeps
// unanswerable questions away from the model.
package grounding

import (
	"strconv"
	"strings"

	"github.com/reece-davies/trampoline-coach-ai/internal/prompts"
	"github.com/reece-davies/trampoline-coach-ai/internal/skills"
)

// ErrNoRelevantSkills indicates a question that matched nothing in the
// dataset and did not ask for broad analysis. The model must not be invoked
// for it; the caller answers with the fixed refusal text instead.
type ErrNoRelevantSkills struct{}

func (e *ErrNoRelevantSkills) Error() string {
	return "no relevant skills found for question"
}

// Refusal is the fixed reply for gated questions.
func (e *ErrNoRelevantSkills) Refusal() string {
	return prompts.Refusal()
}

// Gate rejects narrow questions with no skill matches. Broad-analysis
// results always pass: they carry the whole dataset, and even when that is
// empty the composer substitutes a placeholder sentence.
func Gate(result skills.MatchResult) error {
	if len(result.Skills) == 0 && !result.BroadAnalysis {
		return &ErrNoRelevantSkills{}
	}
	return nil
}

// Compose merges the matched skills and the user's question into the single
// message sent to the model.
//
// The result is internal plumbing only: conversation history keeps the
// literal question, never the composed message.
func Compose(matched []skills.Skill, question string) string {
	var b strings.Builder

	b.WriteString(prompts.MustGet("grounding_header"))
	b.WriteString("\n")
	if len(matched) == 0 {
		b.WriteString(prompts.MustGet("no_skill_information"))
		b.WriteString("\n")
	} else {
		line := prompts.MustGet("skill_line")
		for _, skill := range matched {
			b.WriteString(prompts.Format(line, map[string]string{
				"Name":        skill.Name,
				"Notation":    skill.Notation,
				"Difficulty":  strconv.FormatFloat(skill.Difficulty, 'f', -1, 64),
				"Description": skill.Description,
			}))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(prompts.MustGet("user_question_header"))
	b.WriteString("\n")
	b.WriteString(question)

	return b.String()
}
