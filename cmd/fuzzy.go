package cmd

import (
	"hash/fnv"
	"math/rand"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/store"
	"github.com/gdsc-alina/alina/internal/suggestion"
)

// Overlong suggestion lists dilute the score, so a fuzzed batch trims them to
// these caps by random sampling.
const (
	limitOfTrainings       = 4
	limitOfJobs            = 20
	limitOfTrainingsPerJob = 30
)

var fuzzyCmd = &cobra.Command{
	Use:   "fuzzy",
	Short: "Randomly trim an existing submission down to the suggestion caps",
	Run: func(cmd *cobra.Command, _ []string) {
		fuzzy(cmd)
	},
}

func init() {
	rootCmd.AddCommand(fuzzyCmd)

	fuzzyCmd.Flags().Int("submission", 0, "submission index to fuzz")
	fuzzyCmd.Flags().String("seed", "", "seed for the random sampling")
	fuzzyCmd.MarkFlagRequired("submission")
	fuzzyCmd.MarkFlagRequired("seed")
}

func fuzzy(cmd *cobra.Command) {
	e := newEnv()

	index, _ := cmd.Flags().GetInt("submission")
	seed, _ := cmd.Flags().GetString("seed")

	results, err := store.LoadSubmission(e.ws, index)
	if err != nil {
		e.logger.Fatal("loading submission", zap.Int("index", index), zap.Error(err))
	}

	rng := rand.New(rand.NewSource(seedValue(seed)))

	for _, result := range results {
		switch result.Kind {
		case suggestion.KindTrainingsOnly:
			result.Trainings = sample(rng, result.Trainings, limitOfTrainings)
		case suggestion.KindJobsAndTrainings:
			if len(result.Jobs) > limitOfJobs {
				result.Jobs = sample(rng, result.Jobs, limitOfJobs)
				for i := range result.Jobs {
					result.Jobs[i].SuggestedTrainings = sample(rng, result.Jobs[i].SuggestedTrainings, limitOfTrainingsPerJob)
				}
			}
		}
	}

	path, err := store.SaveSuggestions(e.ws, results)
	if err != nil {
		e.logger.Fatal("saving fuzzed suggestions", zap.Error(err))
	}
	e.logger.Info("fuzzed suggestions saved", zap.String("path", path))
}

func seedValue(seed string) int64 {
	h := fnv.New64a()
	h.Write([]byte(seed))
	return int64(h.Sum64())
}

// sample keeps at most limit elements, chosen uniformly without replacement.
func sample[T any](rng *rand.Rand, items []T, limit int) []T {
	if len(items) <= limit {
		return items
	}
	picked := make([]T, 0, limit)
	for _, i := range rng.Perm(len(items))[:limit] {
		picked = append(picked, items[i])
	}
	return picked
}
