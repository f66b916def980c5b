package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/store"
	"github.com/gdsc-alina/alina/internal/suggestion"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge two submissions into one (one for jobs, one for trainings)",
	Run: func(cmd *cobra.Command, _ []string) {
		merge(cmd)
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().Int("jobs", 0, "submission index providing the awareness and jobs+trainings entries")
	mergeCmd.Flags().Int("trainings", 0, "submission index providing the trainings-only entries")
	mergeCmd.MarkFlagRequired("jobs")
	mergeCmd.MarkFlagRequired("trainings")
}

func merge(cmd *cobra.Command) {
	e := newEnv()

	jobsIndex, _ := cmd.Flags().GetInt("jobs")
	trainingsIndex, _ := cmd.Flags().GetInt("trainings")

	jobsBatch, err := store.LoadSubmission(e.ws, jobsIndex)
	if err != nil {
		e.logger.Fatal("loading jobs submission", zap.Int("index", jobsIndex), zap.Error(err))
	}
	trainingsBatch, err := store.LoadSubmission(e.ws, trainingsIndex)
	if err != nil {
		e.logger.Fatal("loading trainings submission", zap.Int("index", trainingsIndex), zap.Error(err))
	}

	trainingsByPersona := make(map[string]*suggestion.Result, len(trainingsBatch))
	for _, result := range trainingsBatch {
		trainingsByPersona[result.PersonaID] = result
	}

	var merged []*suggestion.Result
	for _, result := range jobsBatch {
		switch result.Kind {
		case suggestion.KindAwareness, suggestion.KindJobsAndTrainings:
			merged = append(merged, result)
		case suggestion.KindTrainingsOnly:
			replacement, ok := trainingsByPersona[result.PersonaID]
			if !ok {
				e.logger.Warn("no training data found for persona, skipping",
					zap.String("persona", result.PersonaID))
				continue
			}
			merged = append(merged, replacement)
		}
	}

	path, err := store.SaveSuggestions(e.ws, merged)
	if err != nil {
		e.logger.Fatal("saving merged suggestions", zap.Error(err))
	}
	e.logger.Info("merged suggestions saved", zap.String("path", path), zap.Int("count", len(merged)))
}
