package cmd

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/ai"
	"github.com/gdsc-alina/alina/internal/interview"
	"github.com/gdsc-alina/alina/internal/personarange"
	"github.com/gdsc-alina/alina/internal/referential"
	"github.com/gdsc-alina/alina/internal/store"
	"github.com/gdsc-alina/alina/internal/workspace"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Interview the simulated personas and record the transcripts",
	Run: func(cmd *cobra.Command, _ []string) {
		runInterviews(cmd)
	},
}

func init() {
	rootCmd.AddCommand(interviewCmd)

	interviewCmd.Flags().String("persona", "", "persona range to interview (e.g. 7, 3-20, all)")
	interviewCmd.Flags().String("phase", string(workspace.PhaseInitial), "interview phase: initial, job, training or full")
	interviewCmd.Flags().Bool("live", false, "full phase only: chat with the remote persona instead of typing the replies yourself")
}

func runInterviews(cmd *cobra.Command) {
	e := newEnv()

	rangeFlag, _ := cmd.Flags().GetString("persona")
	phaseFlag, _ := cmd.Flags().GetString("phase")
	live, _ := cmd.Flags().GetBool("live")

	personas, err := personarange.Parse(rangeFlag)
	if err != nil {
		e.logger.Fatal("parsing persona range", zap.Error(err))
	}
	phase, err := workspace.ParsePhase(phaseFlag)
	if err != nil {
		e.logger.Fatal("parsing interview phase", zap.Error(err))
	}

	switch phase {
	case workspace.PhaseInitial:
		initialInterviews(e, personas)
	case workspace.PhaseFull:
		fullInterviews(e, personas, live)
	default:
		followUpInterviews(e, phase)
	}
}

func initialInterviews(e *env, personas personarange.Range) {
	gen := e.generator()

	for _, number := range personas.IDs() {
		interviewer := interview.NewMockInterviewer()
		chatter := interview.NewMockChatter()
		if gen != nil {
			interviewer = interview.NewInitialInterviewer(gen, e.logger)
			chatter = interview.NewRemoteChatter(e.challengeClient(), e.logger)
		}

		e.logger.Info("interviewing persona", zap.Int("persona", number))
		conversation, err := interview.Run(e.ctx, interviewer, chatter, number, e.logger)
		if err != nil {
			e.logger.Fatal("interview failed", zap.Int("persona", number), zap.Error(err))
		}
		if err := interview.WriteTranscript(e.ws.InterviewFile(workspace.PhaseInitial, number), conversation); err != nil {
			e.logger.Fatal("writing transcript", zap.Int("persona", number), zap.Error(err))
		}
		e.logger.Info("interview completed", zap.Int("persona", number))
	}
}

// followUpInterviews runs the job or training deep dives. These target the
// personas whose manual intent matches the phase and skip transcripts that
// already exist, so the command is safe to re-run after interruptions.
func followUpInterviews(e *env, phase workspace.Phase) {
	gen := e.generator()
	if gen == nil {
		e.logger.Fatal("follow-up interviews need an ai provider (set --ai)")
	}

	skills, err := store.LoadSkills(e.ws)
	if err != nil {
		e.logger.Fatal("loading skills taxonomy", zap.Error(err))
	}
	jobs, err := store.LoadJobs(e.ws)
	if err != nil {
		e.logger.Fatal("loading job analysis", zap.Error(err))
	}
	manualIntents, err := store.LoadManualIntents(e.ws)
	if err != nil {
		e.logger.Fatal("loading manual intents", zap.Error(err))
	}

	wanted := referential.ManualTrainingsOnly
	if phase == workspace.PhaseJob {
		wanted = referential.ManualJobsAndTrainings
	}

	client := e.challengeClient()

	for _, number := range sortedManualPersonas(manualIntents, wanted) {
		transcript := e.ws.InterviewFile(phase, number)
		if _, err := os.Stat(transcript); err == nil {
			e.logger.Info("transcript already exists, skipping", zap.Int("persona", number))
			continue
		}

		summary, err := interviewSummary(e, gen, number)
		if err != nil {
			e.logger.Warn("summarizing previous interview failed, skipping",
				zap.Int("persona", number), zap.Error(err))
			continue
		}

		interviewer := interview.NewTrainingInterviewer(gen, skills, summary, e.logger)
		if phase == workspace.PhaseJob {
			interviewer = interview.NewJobInterviewer(gen, skills, jobs, summary, e.logger)
		}

		e.logger.Info("interviewing persona", zap.Int("persona", number), zap.String("phase", string(phase)))
		conversation, err := interview.Run(e.ctx, interviewer, interview.NewRemoteChatter(client, e.logger), number, e.logger)
		if err != nil {
			e.logger.Fatal("interview failed", zap.Int("persona", number), zap.Error(err))
		}
		if err := interview.WriteTranscript(transcript, conversation); err != nil {
			e.logger.Fatal("writing transcript", zap.Int("persona", number), zap.Error(err))
		}
		e.logger.Info("interview completed", zap.Int("persona", number))
	}
}

// fullInterviews runs the single-pass interview covering the base profile and
// the job/skill deep dive. Without --live the operator types the persona's
// replies, which is handy for probing the interviewer prompts.
func fullInterviews(e *env, personas personarange.Range, live bool) {
	gen := e.generator()
	if gen == nil {
		e.logger.Fatal("full interviews need an ai provider (set --ai)")
	}

	skills, err := store.LoadSkills(e.ws)
	if err != nil {
		e.logger.Fatal("loading skills taxonomy", zap.Error(err))
	}
	jobs, err := store.LoadJobs(e.ws)
	if err != nil {
		e.logger.Fatal("loading job analysis", zap.Error(err))
	}

	chatter := interview.NewConsoleChatter()
	if live {
		chatter = interview.NewRemoteChatter(e.challengeClient(), e.logger)
	}

	for _, number := range personas.IDs() {
		interviewer := interview.NewFullInterviewer(gen, skills, jobs, e.logger)

		e.logger.Info("interviewing persona", zap.Int("persona", number))
		conversation, err := interview.Run(e.ctx, interviewer, chatter, number, e.logger)
		if err != nil {
			e.logger.Fatal("interview failed", zap.Int("persona", number), zap.Error(err))
		}
		if err := interview.WriteTranscript(e.ws.InterviewFile(workspace.PhaseFull, number), conversation); err != nil {
			e.logger.Fatal("writing transcript", zap.Int("persona", number), zap.Error(err))
		}
		e.logger.Info("interview completed", zap.Int("persona", number))
	}
}

// interviewSummary returns the cached summary of the persona's initial
// interview, producing and caching it on first use.
func interviewSummary(e *env, gen ai.Generator, number int) (string, error) {
	cache := e.ws.InterviewSummaryFile(number)
	if data, err := os.ReadFile(cache); err == nil {
		return string(data), nil
	}

	previous, err := os.ReadFile(e.ws.InterviewFile(workspace.PhaseInitial, number))
	if err != nil {
		return "", err
	}

	summary, err := interview.Summarize(e.ctx, gen, string(previous))
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(cache), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(cache, []byte(summary), 0o644); err != nil {
		return "", err
	}
	return summary, nil
}

// sortedManualPersonas returns the persona numbers carrying the wanted manual
// intent, ascending.
func sortedManualPersonas(intents map[string]referential.ManualIntent, wanted referential.ManualIntent) []int {
	var numbers []int
	for id, intent := range intents {
		if intent != wanted {
			continue
		}
		number, err := referential.PersonaNumber(id)
		if err != nil {
			continue
		}
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)
	return numbers
}
