package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/personarange"
	"github.com/gdsc-alina/alina/internal/planner"
	"github.com/gdsc-alina/alina/internal/referential"
	"github.com/gdsc-alina/alina/internal/store"
	"github.com/gdsc-alina/alina/internal/suggestion"
)

var suggestTrainingCmd = &cobra.Command{
	Use:   "suggest-training",
	Short: "Plan trainings for the trainings-only personas and compose a full suggestion set",
	Run: func(_ *cobra.Command, _ []string) {
		suggestTraining()
	},
}

func init() {
	rootCmd.AddCommand(suggestTrainingCmd)
}

func suggestTraining() {
	e := newEnv()

	gen := e.generator()
	if gen == nil {
		e.logger.Fatal("training planning needs an ai provider (set --ai)")
	}

	skills, err := store.LoadSkills(e.ws)
	if err != nil {
		e.logger.Fatal("loading skills taxonomy", zap.Error(err))
	}
	plans, err := planner.LoadPlans(e.ws)
	if err != nil {
		e.logger.Fatal("loading training plans", zap.Error(err))
	}
	manualIntents, err := store.LoadManualIntents(e.ws)
	if err != nil {
		e.logger.Fatal("loading manual intents", zap.Error(err))
	}

	p := planner.New(gen, e.ws, skills, e.logger)

	for _, number := range sortedManualPersonas(manualIntents, referential.ManualTrainingsOnly) {
		id := referential.PersonaID(number)
		plan := plans[id]
		if plan == nil {
			plan = &planner.PersonaPlan{}
		}

		if err := p.BuildPlan(e.ctx, number, plan); err != nil {
			e.logger.Warn("skipping persona", zap.String("persona", id), zap.Error(err))
			continue
		}
		plans[id] = plan

		// Persist after each persona so an interruption loses nothing.
		if err := planner.SavePlans(e.ws, plans); err != nil {
			e.logger.Fatal("saving training plans", zap.Error(err))
		}
	}

	results, err := composeSuggestions(e, plans)
	if err != nil {
		e.logger.Fatal("composing suggestions", zap.Error(err))
	}

	path, err := store.SaveSuggestions(e.ws, results)
	if err != nil {
		e.logger.Fatal("saving suggestions", zap.Error(err))
	}
	e.logger.Info("suggestions saved", zap.String("path", path))
}

// composeSuggestions assembles the full 100-persona suggestion set: planned
// trainings for the trainings-only personas, awareness entries where the
// intent calls for it, and job placeholders everywhere else.
func composeSuggestions(e *env, plans planner.Plans) ([]*suggestion.Result, error) {
	var results []*suggestion.Result
	for _, number := range personarange.Full().IDs() {
		id := referential.PersonaID(number)
		persona, err := store.LoadPersona(e.ws, id)
		if err != nil {
			return nil, err
		}

		var result *suggestion.Result
		switch {
		case persona.Age < 16:
			result = suggestion.Awareness(id, suggestion.ItemsTooYoung)
		case persona.Intent != nil && *persona.Intent == referential.IntentAwareness:
			result = suggestion.Awareness(id, suggestion.ItemsInfo)
		case persona.Intent != nil && *persona.Intent == referential.IntentOnlyTrainings:
			plan := plans[id]
			trainings := []string{}
			if plan != nil {
				for _, trainingNumber := range plan.Trainings {
					trainings = append(trainings, referential.TrainingID(trainingNumber))
				}
			}
			result = suggestion.TrainingsOnly(id, trainings)
		default:
			result = suggestion.JobsAndTrainings(id, []suggestion.JobSuggestion{
				{JobID: "j0", SuggestedTrainings: []string{}},
			})
		}
		results = append(results, result)
	}
	return results, nil
}
