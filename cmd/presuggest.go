package cmd

import (
	"os"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gdsc-alina/alina/internal/analysis"
	"github.com/gdsc-alina/alina/internal/personarange"
	"github.com/gdsc-alina/alina/internal/referential"
	"github.com/gdsc-alina/alina/internal/store"
	"github.com/gdsc-alina/alina/internal/utils"
	"github.com/gdsc-alina/alina/internal/workspace"
)

const presuggestChunkSize = 5

var presuggestCmd = &cobra.Command{
	Use:   "presuggest",
	Short: "Infer persona profiles and intents from the interview transcripts",
	Run: func(cmd *cobra.Command, _ []string) {
		presuggest(cmd)
	},
}

func init() {
	rootCmd.AddCommand(presuggestCmd)

	presuggestCmd.Flags().String("persona", "", "persona range to process (e.g. 7, 3-20, all)")
}

func presuggest(cmd *cobra.Command) {
	e := newEnv()

	rangeFlag, _ := cmd.Flags().GetString("persona")
	personas, err := personarange.Parse(rangeFlag)
	if err != nil {
		e.logger.Fatal("parsing persona range", zap.Error(err))
	}

	jobs, err := store.LoadJobs(e.ws)
	if err != nil {
		e.logger.Fatal("loading job analysis", zap.Error(err))
	}
	results, err := store.LoadPersonas(e.ws)
	if err != nil {
		e.logger.Fatal("loading persona analysis", zap.Error(err))
	}
	manualIntents, err := store.LoadManualIntents(e.ws)
	if err != nil {
		e.logger.Fatal("loading manual intents", zap.Error(err))
	}

	analyzer := analysis.NewPersonaAnalyzer(e.generator(), jobs, e.logger)

	var mu sync.Mutex
	upsert := func(persona *referential.Persona) {
		mu.Lock()
		defer mu.Unlock()
		for i, existing := range results {
			if existing.ID == persona.ID {
				results[i] = persona
				return
			}
		}
		results = append(results, persona)
	}

	numbers := personas.IDs()
	for i := 0; i < len(numbers); i += presuggestChunkSize {
		end := i + presuggestChunkSize
		if end > len(numbers) {
			end = len(numbers)
		}

		group, gctx := errgroup.WithContext(e.ctx)
		for _, number := range numbers[i:end] {
			group.Go(func() error {
				id := referential.PersonaID(number)

				var manual *referential.ManualIntent
				if intent, ok := manualIntents[id]; ok {
					manual = &intent
				}

				persona, err := analyzer.Analyze(gctx, id, interviewTranscripts(e.ws, number), manual)
				if err != nil {
					return err
				}
				upsert(persona)
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			e.logger.Fatal("analyzing personas", zap.Error(err))
		}

		e.logger.Info("processed personas", zap.Int("from", i+1), zap.Int("to", end))
		if err := store.SavePersonas(e.ws, results); err != nil {
			e.logger.Fatal("saving persona analysis", zap.Error(err))
		}
		if err := utils.WaitFor(e.ctx, analyzePause); err != nil {
			e.logger.Fatal("waiting between chunks", zap.Error(err))
		}
	}
}

// interviewTranscripts collects every transcript recorded for the persona:
// the initial interview plus the optional job and training follow-ups.
func interviewTranscripts(ws *workspace.Workspace, number int) []string {
	files := []string{ws.InterviewFile(workspace.PhaseInitial, number)}
	for _, phase := range []workspace.Phase{workspace.PhaseJob, workspace.PhaseTraining} {
		file := ws.InterviewFile(phase, number)
		if _, err := os.Stat(file); err == nil {
			files = append(files, file)
		}
	}
	return files
}
