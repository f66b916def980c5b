package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/analysis"
	"github.com/gdsc-alina/alina/internal/store"
)

var buildSkillsCmd = &cobra.Command{
	Use:   "build-skills",
	Short: "Aggregate the analyzed trainings into the skills taxonomy",
	Run: func(_ *cobra.Command, _ []string) {
		buildSkills()
	},
}

func init() {
	rootCmd.AddCommand(buildSkillsCmd)
}

func buildSkills() {
	e := newEnv()

	trainings, err := store.LoadTrainings(e.ws)
	if err != nil {
		e.logger.Fatal("loading training analysis", zap.Error(err))
	}

	builder := analysis.NewSkillBuilder(e.generator(), e.logger)
	skills, err := builder.Build(e.ctx, trainings)
	if err != nil {
		e.logger.Fatal("building skills taxonomy", zap.Error(err))
	}

	if err := store.SaveSkills(e.ws, skills); err != nil {
		e.logger.Fatal("saving skills taxonomy", zap.Error(err))
	}
	e.logger.Info("skills taxonomy saved", zap.Int("count", len(skills)))
}
