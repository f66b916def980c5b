package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/challenge"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Show the submission history and the leaderboard",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().Int("head", 5, "number of submissions to show per section")
}

func rank(cmd *cobra.Command) {
	e := newEnv()

	head, _ := cmd.Flags().GetInt("head")
	client := e.challengeClient()

	submissions, err := client.Submissions(e.ctx)
	if err != nil {
		e.logger.Fatal("fetching submissions", zap.Error(err))
	}

	if len(submissions) == 0 {
		fmt.Println("No submissions found.")
	} else {
		printSubmissions(submissions, head)
	}

	leaderboard, err := client.Leaderboard(e.ctx)
	if err != nil {
		e.logger.Fatal("fetching leaderboard", zap.Error(err))
	}
	printLeaderboard(leaderboard)
}

func printSubmissions(submissions []challenge.ScoredSubmission, head int) {
	byDate := append([]challenge.ScoredSubmission(nil), submissions...)
	sort.SliceStable(byDate, func(i, j int) bool { return byDate[i].Date > byDate[j].Date })

	byScore := append([]challenge.ScoredSubmission(nil), submissions...)
	sort.SliceStable(byScore, func(i, j int) bool { return byScore[i].Score > byScore[j].Score })

	// The ordinal of a submission is its position in chronological order:
	// the newest one is #len.
	ordinal := func(entry challenge.ScoredSubmission) int {
		for i, candidate := range byDate {
			if candidate == entry {
				return len(byDate) - i
			}
		}
		return 0
	}

	fmt.Printf("Last %d submissions:\n", head)
	for _, entry := range byDate[:min(head, len(byDate))] {
		fmt.Printf(" - #%d: %s, score = %v\n", ordinal(entry), formatSubmissionDate(entry.Date), entry.Score)
	}

	fmt.Printf("\nTop %d submissions by score:\n", head)
	for _, entry := range byScore[:min(head, len(byScore))] {
		fmt.Printf(" - #%d: %s, score = %v\n", ordinal(entry), formatSubmissionDate(entry.Date), entry.Score)
	}
}

func printLeaderboard(leaderboard []challenge.LeaderboardEntry) {
	topScores := make(map[string]challenge.LeaderboardEntry)
	counts := make(map[string]int)
	for _, entry := range leaderboard {
		best, ok := topScores[entry.TeamName]
		if !ok || entry.Score > best.Score {
			topScores[entry.TeamName] = entry
		}
		counts[entry.TeamName]++
	}
	if len(topScores) == 0 {
		return
	}

	entries := make([]challenge.LeaderboardEntry, 0, len(topScores))
	for _, entry := range topScores {
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	if len(entries) > 20 {
		entries = entries[:20]
	}

	fmt.Println("\nLeaderboard Top Scores:")
	for i, entry := range entries {
		team := entry.TeamName
		if team == "" {
			team = "(none)"
		}
		score := strconv.FormatFloat(entry.Score, 'f', -1, 64)
		fmt.Printf(" %2d. %-30s | %-8s | %3d/120\n", i+1, team, score, counts[entry.TeamName])
	}
}

// formatSubmissionDate renders a server timestamp in UTC+2 as "day/month
// hour:minute:second". Unparseable values pass through untouched.
func formatSubmissionDate(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		if t, err = time.Parse("2006-01-02T15:04:05", raw); err != nil {
			return raw
		}
		t = t.UTC()
	}
	return t.In(time.FixedZone("UTC+2", 2*60*60)).Format("02/01 15:04:05")
}
