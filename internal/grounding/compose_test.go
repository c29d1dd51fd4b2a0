package grounding

import (
	"errors"
	"strings"
	"testing"

	"github.com/reece-davies/trampoline-coach-ai/internal/skills"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_RejectsNarrowQuestionWithNoMatches(t *testing.T) {
	err := Gate(skills.MatchResult{})
	require.Error(t, err)

	var gateErr *ErrNoRelevantSkills
	require.True(t, errors.As(err, &gateErr))
	assert.NotEmpty(t, gateErr.Refusal())
}

func TestGate_AllowsMatches(t *testing.T) {
	err := Gate(skills.MatchResult{Skills: []skills.Skill{{Name: "Barani"}}})
	assert.NoError(t, err)
}

func TestGate_AllowsBroadAnalysisEvenWhenEmpty(t *testing.T) {
	err := Gate(skills.MatchResult{BroadAnalysis: true})
	assert.NoError(t, err)
}

func TestCompose_ContainsSkillBlockAndVerbatimQuestion(t *testing.T) {
	matched := []skills.Skill{
		{Name: "Barani", Notation: "f F", Difficulty: 0.6, Description: "Front somersault with a half twist"},
		{Name: "Rudolph (Rudy)", Notation: "f 1.5", Difficulty: 1.0, Description: "Front somersault with one and a half twists"},
	}
	question := "What is a Rudy? And how does it compare to a Barani?!"

	msg := Compose(matched, question)

	assert.Contains(t, msg, "SKILL INFORMATION (authoritative):")
	assert.Contains(t, msg, "Skill: Barani | Notation: f F | Difficulty: 0.6 | Description: Front somersault with a half twist")
	assert.Contains(t, msg, "Skill: Rudolph (Rudy) | Notation: f 1.5 | Difficulty: 1 |")
	assert.Contains(t, msg, "USER QUESTION:\n"+question)

	// Matcher order is preserved in the block.
	assert.Less(t, strings.Index(msg, "Barani"), strings.Index(msg, "Rudolph"))
}

func TestCompose_EmptyMatchUsesPlaceholderSentence(t *testing.T) {
	msg := Compose(nil, "what is the highest difficulty skill")

	assert.Contains(t, msg, "No relevant skill information found.")
	assert.Contains(t, msg, "USER QUESTION:\nwhat is the highest difficulty skill")
}
