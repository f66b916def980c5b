// Package store reads and writes the flat-file collections owned by the
// workspace. Collections are loaded whole into memory and rewritten whole;
// there are no partial updates and no locking.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdsc-alina/alina/internal/referential"
	"github.com/gdsc-alina/alina/internal/suggestion"
	"github.com/gdsc-alina/alina/internal/workspace"
)

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create folder for %s: %w", path, err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func SaveJobs(ws *workspace.Workspace, jobs []*referential.Job) error {
	return writeJSON(ws.JobsFile(), jobs)
}

func LoadJobs(ws *workspace.Workspace) ([]*referential.Job, error) {
	var jobs []*referential.Job
	if err := readJSON(ws.JobsFile(), &jobs); err != nil {
		return nil, fmt.Errorf("load jobs: %w", err)
	}
	return jobs, nil
}

func SaveTrainings(ws *workspace.Workspace, trainings []*referential.Training) error {
	return writeJSON(ws.TrainingsFile(), trainings)
}

func LoadTrainings(ws *workspace.Workspace) ([]*referential.Training, error) {
	var trainings []*referential.Training
	if err := readJSON(ws.TrainingsFile(), &trainings); err != nil {
		return nil, fmt.Errorf("load trainings: %w", err)
	}
	return trainings, nil
}

func SaveSkills(ws *workspace.Workspace, skills []*referential.Skill) error {
	return writeJSON(ws.SkillsFile(), skills)
}

func LoadSkills(ws *workspace.Workspace) ([]*referential.Skill, error) {
	var skills []*referential.Skill
	if err := readJSON(ws.SkillsFile(), &skills); err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}
	return skills, nil
}

func SavePersonas(ws *workspace.Workspace, personas []*referential.Persona) error {
	return writeJSON(ws.PersonasFile(), personas)
}

// LoadPersonas returns the persona collection, or an empty slice when the
// file does not exist yet.
func LoadPersonas(ws *workspace.Workspace) ([]*referential.Persona, error) {
	var personas []*referential.Persona
	err := readJSON(ws.PersonasFile(), &personas)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load personas: %w", err)
	}
	return personas, nil
}

// LoadPersona returns a single persona record. A missing record is a fatal
// precondition for every consumer, so it is an error here, not a nil.
func LoadPersona(ws *workspace.Workspace, id string) (*referential.Persona, error) {
	personas, err := LoadPersonas(ws)
	if err != nil {
		return nil, err
	}
	for _, persona := range personas {
		if persona.ID == id {
			return persona, nil
		}
	}
	return nil, fmt.Errorf("persona analysis for %s not found", id)
}

// LoadManualIntents returns the hand-curated intent overrides, empty when the
// file is absent.
func LoadManualIntents(ws *workspace.Workspace) (map[string]referential.ManualIntent, error) {
	intents := make(map[string]referential.ManualIntent)
	err := readJSON(ws.ManualIntentsFile(), &intents)
	if os.IsNotExist(err) {
		return intents, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load manual intents: %w", err)
	}
	return intents, nil
}

// SaveSuggestions appends a new numbered suggestions batch and returns its
// path. Previous batches are never overwritten.
func SaveSuggestions(ws *workspace.Workspace, results []*suggestion.Result) (string, error) {
	path, err := ws.NextSuggestionsFile()
	if err != nil {
		return "", err
	}
	if err := writeJSON(path, results); err != nil {
		return "", err
	}
	return path, nil
}

// LoadLastSuggestions returns the most recent suggestions batch.
func LoadLastSuggestions(ws *workspace.Workspace) ([]*suggestion.Result, error) {
	path, err := ws.LastSuggestionsFile()
	if err != nil {
		return nil, err
	}
	var results []*suggestion.Result
	if err := readJSON(path, &results); err != nil {
		return nil, fmt.Errorf("load suggestions: %w", err)
	}
	return results, nil
}

// SaveCheckpoint flushes one persona's resolved suggestion so an interrupted
// run can resume without recomputing it.
func SaveCheckpoint(ws *workspace.Workspace, personaNumber int, result *suggestion.Result) error {
	return writeJSON(ws.CheckpointFile(personaNumber), result)
}

// LoadCheckpoint returns a previously flushed checkpoint, or nil when the
// persona has not been resolved yet.
func LoadCheckpoint(ws *workspace.Workspace, personaNumber int) (*suggestion.Result, error) {
	var result suggestion.Result
	err := readJSON(ws.CheckpointFile(personaNumber), &result)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}
	return &result, nil
}

// ClearCheckpoints removes the in-progress folder after a completed run.
func ClearCheckpoints(ws *workspace.Workspace) error {
	if err := os.RemoveAll(ws.CheckpointDir()); err != nil {
		return fmt.Errorf("clear checkpoints: %w", err)
	}
	return nil
}

// SaveSubmission records a submitted batch as the next numbered submission
// file and returns its path.
func SaveSubmission(ws *workspace.Workspace, results []*suggestion.Result) (string, error) {
	path, err := ws.NextSubmissionFile()
	if err != nil {
		return "", err
	}
	if err := writeJSON(path, results); err != nil {
		return "", err
	}
	return path, nil
}

// LoadSubmission reads one numbered submission file back.
func LoadSubmission(ws *workspace.Workspace, index int) ([]*suggestion.Result, error) {
	var results []*suggestion.Result
	if err := readJSON(ws.SubmissionFile(index), &results); err != nil {
		return nil, fmt.Errorf("load submission %d: %w", index, err)
	}
	return results, nil
}
