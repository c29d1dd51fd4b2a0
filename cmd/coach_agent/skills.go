package main

import (
	"fmt"
	"os"

	"github.com/reece-davies/trampoline-coach-ai/internal/observability"
	"github.com/reece-davies/trampoline-coach-ai/internal/skills"
	"github.com/spf13/cobra"
)

var (
	skillsDataset  string
	skillsQuestion string
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Inspect the skill dataset and relevance matching",
	Long: `Load the skill dataset offline and print it, or show which skills the
relevance matcher would inject for a given question. No API key needed.`,
	RunE: runSkills,
}

func init() {
	skillsCmd.Flags().StringVar(&skillsDataset, "dataset", "data/skills.csv", "Path to the skill CSV dataset")
	skillsCmd.Flags().StringVar(&skillsQuestion, "question", "", "Question to run through the relevance matcher")
	rootCmd.AddCommand(skillsCmd)
}

func runSkills(cmd *cobra.Command, _ []string) error {
	store := skills.NewStore(skills.FileSource{Path: skillsDataset})
	printer := observability.NewPrinter(os.Stdout)

	if skillsQuestion == "" {
		list, err := store.Load(cmd.Context())
		if err != nil {
			return err
		}
		printer.PrintDataset(list)
		return nil
	}

	result, err := skills.NewMatcher(store).Match(cmd.Context(), skillsQuestion)
	if err != nil {
		return err
	}
	printer.PrintMatchResult(skillsQuestion, result)

	if len(result.Skills) == 0 {
		fmt.Println("The server would answer this question with the fixed refusal.")
	}
	return nil
}
