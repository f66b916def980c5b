package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gdsc-alina/alina/internal/analysis"
	"github.com/gdsc-alina/alina/internal/store"
	"github.com/gdsc-alina/alina/internal/utils"
)

// analyzeChunkSize bounds the number of concurrent extraction calls; a short
// pause between chunks keeps the provider rate limits happy.
const (
	analyzeChunkSize = 10
	analyzePause     = 500 * time.Millisecond
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Extract structured records from the raw job and training postings",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().Bool("jobs-only", false, "analyze only the job postings")
	analyzeCmd.Flags().Bool("trainings-only", false, "analyze only the training postings")
	analyzeCmd.Flags().String("only", "", "analyze a single posting (j* or tr*) and print the result")
}

func analyze(cmd *cobra.Command) {
	e := newEnv()

	jobsOnly, _ := cmd.Flags().GetBool("jobs-only")
	trainingsOnly, _ := cmd.Flags().GetBool("trainings-only")
	only, _ := cmd.Flags().GetString("only")

	if jobsOnly && trainingsOnly {
		e.logger.Fatal("cannot specify both --jobs-only and --trainings-only")
	}

	gen := e.generator()
	jobAnalyzer := analysis.NewJobAnalyzer(gen, e.logger)
	trainingAnalyzer := analysis.NewTrainingAnalyzer(gen, e.logger)

	if only != "" {
		analyzeOne(e, jobAnalyzer, trainingAnalyzer, only)
		return
	}

	e.logger.Info("analyzing input data", zap.String("path", e.config.Data))

	if !trainingsOnly {
		jobs, err := analyzeFolder(e.ctx, e.ws.DataJobsDir(), jobAnalyzer.Analyze, e.logger)
		if err != nil {
			e.logger.Fatal("analyzing job postings", zap.Error(err))
		}
		if err := store.SaveJobs(e.ws, jobs); err != nil {
			e.logger.Fatal("saving job analysis", zap.Error(err))
		}
		e.logger.Info("job analysis saved", zap.Int("count", len(jobs)))
	}

	if !jobsOnly {
		trainings, err := analyzeFolder(e.ctx, e.ws.DataTrainingsDir(), trainingAnalyzer.Analyze, e.logger)
		if err != nil {
			e.logger.Fatal("analyzing training postings", zap.Error(err))
		}
		if err := store.SaveTrainings(e.ws, trainings); err != nil {
			e.logger.Fatal("saving training analysis", zap.Error(err))
		}
		e.logger.Info("training analysis saved", zap.Int("count", len(trainings)))
	}
}

func analyzeOne(e *env, jobAnalyzer analysis.JobAnalyzer, trainingAnalyzer analysis.TrainingAnalyzer, only string) {
	if !strings.HasSuffix(only, ".md") {
		only += ".md"
	}

	var (
		result any
		err    error
	)
	switch {
	case strings.HasPrefix(only, "tr"):
		result, err = trainingAnalyzer.Analyze(e.ctx, filepath.Join(e.ws.DataTrainingsDir(), only))
	case strings.HasPrefix(only, "j"):
		result, err = jobAnalyzer.Analyze(e.ctx, filepath.Join(e.ws.DataJobsDir(), only))
	default:
		e.logger.Fatal("invalid value for --only, must start with 'j' for jobs or 'tr' for trainings",
			zap.String("only", only))
	}
	if err != nil {
		e.logger.Fatal("analyzing posting", zap.String("file", only), zap.Error(err))
	}

	pretty, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(pretty))
}

// analyzeFolder runs the analyzer over every markdown file of dir, a chunk at
// a time.
func analyzeFolder[T any](ctx context.Context, dir string, analyzeFn func(context.Context, string) (T, error), logger *zap.Logger) ([]T, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no markdown files found in %s", dir)
	}

	logger.Info("found markdown files to analyze", zap.Int("count", len(files)))

	var mu sync.Mutex
	results := make([]T, 0, len(files))

	for i := 0; i < len(files); i += analyzeChunkSize {
		end := i + analyzeChunkSize
		if end > len(files) {
			end = len(files)
		}

		group, gctx := errgroup.WithContext(ctx)
		for _, file := range files[i:end] {
			group.Go(func() error {
				result, err := analyzeFn(gctx, file)
				if err != nil {
					return err
				}
				mu.Lock()
				results = append(results, result)
				mu.Unlock()
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return nil, err
		}

		logger.Info("processed files", zap.Int("from", i+1), zap.Int("to", end))
		if err := utils.WaitFor(ctx, analyzePause); err != nil {
			return nil, err
		}
	}
	return results, nil
}
