// Package observability provides formatted output utilities for the CLI
// inspection commands.
package observability

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/reece-davies/trampoline-coach-ai/internal/skills"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for the skills inspection command.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDataset outputs a summary of the loaded skill dataset.
func (p *Printer) PrintDataset(list []skills.Skill) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Skills loaded: %d\n", len(list)))
	if len(list) > 0 {
		min, max := list[0].Difficulty, list[0].Difficulty
		for _, skill := range list[1:] {
			if skill.Difficulty < min {
				min = skill.Difficulty
			}
			if skill.Difficulty > max {
				max = skill.Difficulty
			}
		}
		sb.WriteString(fmt.Sprintf("Difficulty range: %s - %s\n",
			formatDifficulty(min), formatDifficulty(max)))
	}
	sb.WriteString("\n")

	for i, skill := range list {
		if i == maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more", len(list)-maxItemsToShow))
			break
		}
		sb.WriteString(skillLine(skill) + "\n")
	}

	p.printBox("SKILL DATASET", strings.TrimRight(sb.String(), "\n"))
}

// PrintMatchResult outputs the relevance match for a question.
func (p *Printer) PrintMatchResult(question string, result skills.MatchResult) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Question: %s\n", question))
	if result.BroadAnalysis {
		sb.WriteString("Mode: broad analysis (whole dataset injected)\n")
	} else {
		sb.WriteString("Mode: alias match\n")
	}
	sb.WriteString(fmt.Sprintf("Matched: %d\n\n", len(result.Skills)))

	if len(result.Skills) == 0 {
		sb.WriteString("No matches - this question would be refused.")
	}
	for i, skill := range result.Skills {
		if i == maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more", len(result.Skills)-maxItemsToShow))
			break
		}
		sb.WriteString(skillLine(skill) + "\n")
	}

	p.printBox("RELEVANCE MATCH", strings.TrimRight(sb.String(), "\n"))
}

func skillLine(skill skills.Skill) string {
	line := fmt.Sprintf("%s (%s)", skill.Name, formatDifficulty(skill.Difficulty))
	if skill.Notation != "" {
		line += " [" + skill.Notation + "]"
	}
	return line
}

func formatDifficulty(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}
