package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/challenge"
	"github.com/gdsc-alina/alina/internal/report"
	"github.com/gdsc-alina/alina/internal/store"
)

var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "Generate an Excel report of all recorded submissions",
	Run: func(cmd *cobra.Command, _ []string) {
		submissionsReport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(submissionsCmd)

	submissionsCmd.Flags().Int("tail", 0, "show only the last N submissions")
	submissionsCmd.Flags().Int("inspect", 0, "inspect a specific submission by its index (default is the latest)")
}

func submissionsReport(cmd *cobra.Command) {
	e := newEnv()

	tail, _ := cmd.Flags().GetInt("tail")
	inspect, _ := cmd.Flags().GetInt("inspect")

	files, err := e.ws.SubmissionFiles()
	if err != nil {
		e.logger.Fatal("listing submissions", zap.Error(err))
	}
	if len(files) == 0 {
		e.logger.Fatal("no recorded submissions found")
	}

	scored, err := cachedScores(e, len(files))
	if err != nil {
		e.logger.Fatal("loading submission scores", zap.Error(err))
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Date < scored[j].Date })

	batches := make([]report.Batch, 0, len(files))
	for _, file := range files {
		var index int
		if _, err := fmt.Sscanf(filepath.Base(file), "submission_%d.json", &index); err != nil {
			continue
		}
		results, err := store.LoadSubmission(e.ws, index)
		if err != nil {
			e.logger.Fatal("loading submission", zap.Int("index", index), zap.Error(err))
		}
		batches = append(batches, report.Batch{Index: index, Results: results})
	}
	sort.Slice(batches, func(i, j int) bool { return batches[i].Index < batches[j].Index })

	if tail > 0 && tail < len(batches) {
		batches = batches[len(batches)-tail:]
	}
	if tail > 0 && tail < len(scored) {
		scored = scored[len(scored)-tail:]
	}

	scores := make([]float64, len(scored))
	for i, entry := range scored {
		scores[i] = entry.Score
	}

	inspected := batches[len(batches)-1].Results
	if inspect > 0 {
		if inspected, err = store.LoadSubmission(e.ws, inspect); err != nil {
			e.logger.Fatal("loading inspected submission", zap.Int("index", inspect), zap.Error(err))
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		e.logger.Fatal("resolving home folder", zap.Error(err))
	}
	output := filepath.Join(home, "Downloads",
		fmt.Sprintf("submissions_%s.xlsx", time.Now().Format("20060102_150405")))
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		e.logger.Fatal("creating output folder", zap.Error(err))
	}

	if err := report.Write(output, batches, scores, inspected); err != nil {
		e.logger.Fatal("writing workbook", zap.Error(err))
	}
	fmt.Printf("Saved submissions XLSX file to: %s\n", output)
}

// cachedScores returns the server-side scores, refreshing the local cache
// whenever its entry count no longer matches the recorded submissions.
func cachedScores(e *env, expected int) ([]challenge.ScoredSubmission, error) {
	cacheFile := e.ws.SubmissionsCacheFile()

	var cached []challenge.ScoredSubmission
	if data, err := os.ReadFile(cacheFile); err == nil {
		if err := json.Unmarshal(data, &cached); err != nil {
			return nil, fmt.Errorf("parse scores cache: %w", err)
		}
	}

	if len(cached) == expected {
		e.logger.Info("loading submission scores from cache")
		return cached, nil
	}

	e.logger.Info("difference in submissions count, reloading",
		zap.Int("cached", len(cached)),
		zap.Int("expected", expected),
	)
	scored, err := e.challengeClient().Submissions(e.ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(scored, "", "    ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(cacheFile, data, 0o644); err != nil {
		return nil, fmt.Errorf("write scores cache: %w", err)
	}
	return scored, nil
}
