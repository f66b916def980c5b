package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/personarange"
	"github.com/gdsc-alina/alina/internal/referential"
	"github.com/gdsc-alina/alina/internal/resolver"
	"github.com/gdsc-alina/alina/internal/store"
	"github.com/gdsc-alina/alina/internal/suggestion"
	"github.com/gdsc-alina/alina/internal/workspace"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Resolve job and training suggestions for each persona",
	Run: func(cmd *cobra.Command, _ []string) {
		suggest(cmd)
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)

	suggestCmd.Flags().String("persona", "", "persona range to process (e.g. 7, 3-20, all)")
	suggestCmd.Flags().Bool("skip-jobs", false, "emit a placeholder instead of resolving jobs+trainings personas")
	suggestCmd.Flags().Bool("skip-trainings", false, "emit a placeholder instead of resolving trainings-only personas")
}

func suggest(cmd *cobra.Command) {
	e := newEnv()

	rangeFlag, _ := cmd.Flags().GetString("persona")
	skipJobs, _ := cmd.Flags().GetBool("skip-jobs")
	skipTrainings, _ := cmd.Flags().GetBool("skip-trainings")

	personas, err := personarange.Parse(rangeFlag)
	if err != nil {
		e.logger.Fatal("parsing persona range", zap.Error(err))
	}

	jobs, err := store.LoadJobs(e.ws)
	if err != nil {
		e.logger.Fatal("loading job analysis", zap.Error(err))
	}
	trainings, err := store.LoadTrainings(e.ws)
	if err != nil {
		e.logger.Fatal("loading training analysis", zap.Error(err))
	}

	res := resolver.New(e.generator(), jobs, trainings, e.logger)

	var results []*suggestion.Result
	for _, number := range personas.IDs() {
		// Checkpoints make the run resumable: a crash mid-range keeps all
		// already resolved personas.
		checkpoint, err := store.LoadCheckpoint(e.ws, number)
		if err != nil {
			e.logger.Fatal("loading checkpoint", zap.Int("persona", number), zap.Error(err))
		}
		if checkpoint != nil {
			results = append(results, checkpoint)
			continue
		}

		result, err := resolvePersona(e, res, number, skipJobs, skipTrainings)
		if err != nil {
			e.logger.Fatal("resolving suggestions", zap.Int("persona", number), zap.Error(err))
		}
		if err := store.SaveCheckpoint(e.ws, number, result); err != nil {
			e.logger.Fatal("saving checkpoint", zap.Int("persona", number), zap.Error(err))
		}
		results = append(results, result)
	}

	if personas == personarange.Full() {
		path, err := store.SaveSuggestions(e.ws, results)
		if err != nil {
			e.logger.Fatal("saving suggestions", zap.Error(err))
		}
		e.logger.Info("suggestions saved", zap.String("path", path))
	}

	if err := store.ClearCheckpoints(e.ws); err != nil {
		e.logger.Fatal("clearing checkpoints", zap.Error(err))
	}
}

func resolvePersona(e *env, res resolver.Resolver, number int, skipJobs, skipTrainings bool) (*suggestion.Result, error) {
	id := referential.PersonaID(number)
	e.logger.Info("computing recommendations", zap.String("persona", id))

	transcript, err := os.ReadFile(e.ws.InterviewFile(workspace.PhaseInitial, number))
	if err != nil {
		return nil, fmt.Errorf("interview file for %s not found: %w", id, err)
	}

	persona, err := store.LoadPersona(e.ws, id)
	if err != nil {
		return nil, err
	}

	if persona.Intent != nil {
		if skipJobs && *persona.Intent == referential.IntentJobsAndTrainings {
			return suggestion.JobsAndTrainings(id, []suggestion.JobSuggestion{
				{JobID: "j0", SuggestedTrainings: []string{}},
			}), nil
		}
		if skipTrainings && *persona.Intent == referential.IntentOnlyTrainings {
			return suggestion.TrainingsOnly(id, []string{"tr0"}), nil
		}
	}

	return res.Resolve(e.ctx, persona, string(transcript))
}
