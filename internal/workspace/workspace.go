// Package workspace resolves every file the pipeline reads or writes under a
// single root directory. It is constructed once per command and passed down
// explicitly; nothing in the repository touches paths on its own.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Phase names an interview pass. Each phase keeps its transcripts in a
// separate folder so a persona can be interviewed several times.
type Phase string

const (
	PhaseInitial  Phase = "initial"
	PhaseJob      Phase = "job"
	PhaseTraining Phase = "training"
	PhaseFull     Phase = "full"
)

var phaseDirs = map[Phase]string{
	PhaseInitial:  "interviews",
	PhaseJob:      "interviews_job",
	PhaseTraining: "interviews_training",
	PhaseFull:     "interviews_full",
}

// ParsePhase validates a phase name given on the command line.
func ParsePhase(s string) (Phase, error) {
	phase := Phase(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := phaseDirs[phase]; !ok {
		return "", fmt.Errorf("unknown interview phase %q (expected initial, job, training or full)", s)
	}
	return phase, nil
}

// Workspace is the on-disk layout of one competition run. Root holds all
// derived state; DataRoot holds the raw markdown postings.
type Workspace struct {
	Root     string
	DataRoot string
}

// New creates the workspace root if needed.
func New(root, dataRoot string) (*Workspace, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("workspace root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace root: %w", err)
	}
	return &Workspace{Root: root, DataRoot: dataRoot}, nil
}

func (w *Workspace) DataJobsDir() string      { return filepath.Join(w.DataRoot, "jobs") }
func (w *Workspace) DataTrainingsDir() string { return filepath.Join(w.DataRoot, "trainings") }

func (w *Workspace) JobsFile() string          { return filepath.Join(w.Root, "jobs.json") }
func (w *Workspace) TrainingsFile() string     { return filepath.Join(w.Root, "trainings.json") }
func (w *Workspace) PersonasFile() string      { return filepath.Join(w.Root, "personas.json") }
func (w *Workspace) SkillsFile() string        { return filepath.Join(w.Root, "skills.json") }
func (w *Workspace) ManualIntentsFile() string { return filepath.Join(w.Root, "manual-intents.json") }

// SubmissionsCacheFile caches the scored submission history fetched from the
// challenge API.
func (w *Workspace) SubmissionsCacheFile() string {
	return filepath.Join(w.Root, "submissions.json")
}

// TrainingPlansFile is the checkpoint of the trainings-only batch pass.
func (w *Workspace) TrainingPlansFile() string {
	return filepath.Join(w.Root, "training_suggestions.json")
}

// InterviewFile returns the transcript path for one persona and phase.
func (w *Workspace) InterviewFile(phase Phase, personaNumber int) string {
	return filepath.Join(w.Root, phaseDirs[phase], fmt.Sprintf("persona_%03d.md", personaNumber))
}

// InterviewSummaryFile returns the cached interview summary path.
func (w *Workspace) InterviewSummaryFile(personaNumber int) string {
	return filepath.Join(w.Root, "interview_summaries", fmt.Sprintf("persona_%03d_summary.md", personaNumber))
}

func (w *Workspace) SuggestionsDir() string { return filepath.Join(w.Root, "suggestions") }

// CheckpointDir holds per-persona suggestion checkpoints of an interrupted run.
func (w *Workspace) CheckpointDir() string {
	return filepath.Join(w.SuggestionsDir(), "in_progress")
}

// CheckpointFile returns the checkpoint path for one persona.
func (w *Workspace) CheckpointFile(personaNumber int) string {
	return filepath.Join(w.CheckpointDir(), fmt.Sprintf("persona_%03d_suggestions.json", personaNumber))
}

// NextSuggestionsFile returns the next free numbered suggestions file.
// Suggestion batches are append-only: a new run never overwrites an old one.
func (w *Workspace) NextSuggestionsFile() (string, error) {
	dir := w.SuggestionsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create suggestions folder: %w", err)
	}
	max, err := maxIndex(dir, "suggestions_")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fmt.Sprintf("suggestions_%03d.json", max+1)), nil
}

// LastSuggestionsFile returns the most recent suggestions file.
func (w *Workspace) LastSuggestionsFile() (string, error) {
	max, err := maxIndex(w.SuggestionsDir(), "suggestions_")
	if err != nil {
		return "", err
	}
	if max == 0 {
		return "", fmt.Errorf("no suggestion files found in %s", w.SuggestionsDir())
	}
	return filepath.Join(w.SuggestionsDir(), fmt.Sprintf("suggestions_%03d.json", max)), nil
}

func (w *Workspace) SubmissionsDir() string { return filepath.Join(w.Root, "submissions") }

// SubmissionFile returns the path of a specific numbered submission.
func (w *Workspace) SubmissionFile(index int) string {
	return filepath.Join(w.SubmissionsDir(), fmt.Sprintf("submission_%03d.json", index))
}

// NextSubmissionFile returns the next free numbered submission file.
func (w *Workspace) NextSubmissionFile() (string, error) {
	dir := w.SubmissionsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create submissions folder: %w", err)
	}
	max, err := maxIndex(dir, "submission_")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fmt.Sprintf("submission_%03d.json", max+1)), nil
}

// SubmissionFiles lists all numbered submission files in ascending order.
func (w *Workspace) SubmissionFiles() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(w.SubmissionsDir(), "submission_*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// maxIndex scans dir for files named <prefix>NNN.json and returns the highest
// NNN, or 0 when none exist.
func maxIndex(dir, prefix string) (int, error) {
	files, err := filepath.Glob(filepath.Join(dir, prefix+"*.json"))
	if err != nil {
		return 0, err
	}
	max := 0
	for _, file := range files {
		stem := strings.TrimSuffix(filepath.Base(file), ".json")
		n, err := strconv.Atoi(strings.TrimPrefix(stem, prefix))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max, nil
}
