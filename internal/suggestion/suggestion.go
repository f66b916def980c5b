// Package suggestion defines the per-persona recommendation result in the
// shape the scoring endpoint expects. The three variants share a common
// envelope and are discriminated by the predicted_type tag.
package suggestion

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the three result variants.
type Kind string

const (
	KindAwareness        Kind = "awareness"
	KindJobsAndTrainings Kind = "jobs+trainings"
	KindTrainingsOnly    Kind = "trainings_only"
)

// Predicted items for awareness results.
const (
	ItemsTooYoung = "too_young"
	ItemsInfo     = "info"
)

// JobSuggestion pairs a recommended job with the trainings closing the gap
// between the persona's skills and the job's required ones.
type JobSuggestion struct {
	JobID              string   `json:"job_id"`
	SuggestedTrainings []string `json:"suggested_trainings"`
}

// Result is a tagged union: exactly the payload field matching Kind is
// serialized, the others stay absent from the wire format.
type Result struct {
	PersonaID      string
	Kind           Kind
	PredictedItems string          // awareness only
	Trainings      []string        // trainings_only only
	Jobs           []JobSuggestion // jobs+trainings only
}

// Awareness builds an awareness-only result.
func Awareness(personaID, predictedItems string) *Result {
	return &Result{PersonaID: personaID, Kind: KindAwareness, PredictedItems: predictedItems}
}

// TrainingsOnly builds a trainings-only result.
func TrainingsOnly(personaID string, trainings []string) *Result {
	if trainings == nil {
		trainings = []string{}
	}
	return &Result{PersonaID: personaID, Kind: KindTrainingsOnly, Trainings: trainings}
}

// JobsAndTrainings builds a jobs+trainings result.
func JobsAndTrainings(personaID string, jobs []JobSuggestion) *Result {
	if jobs == nil {
		jobs = []JobSuggestion{}
	}
	return &Result{PersonaID: personaID, Kind: KindJobsAndTrainings, Jobs: jobs}
}

type envelope struct {
	PersonaID      string          `json:"persona_id"`
	PredictedType  Kind            `json:"predicted_type"`
	PredictedItems string          `json:"predicted_items,omitempty"`
	Trainings      []string        `json:"trainings,omitempty"`
	Jobs           []JobSuggestion `json:"jobs,omitempty"`
}

// MarshalJSON serializes only the payload field selected by Kind.
func (r *Result) MarshalJSON() ([]byte, error) {
	env := envelope{PersonaID: r.PersonaID, PredictedType: r.Kind}
	switch r.Kind {
	case KindAwareness:
		env.PredictedItems = r.PredictedItems
	case KindTrainingsOnly:
		trainings := r.Trainings
		if trainings == nil {
			trainings = []string{}
		}
		// force presence even when empty
		return json.Marshal(struct {
			PersonaID     string   `json:"persona_id"`
			PredictedType Kind     `json:"predicted_type"`
			Trainings     []string `json:"trainings"`
		}{r.PersonaID, r.Kind, trainings})
	case KindJobsAndTrainings:
		jobs := r.Jobs
		if jobs == nil {
			jobs = []JobSuggestion{}
		}
		return json.Marshal(struct {
			PersonaID     string          `json:"persona_id"`
			PredictedType Kind            `json:"predicted_type"`
			Jobs          []JobSuggestion `json:"jobs"`
		}{r.PersonaID, r.Kind, jobs})
	default:
		return nil, fmt.Errorf("unknown prediction type: %q", r.Kind)
	}
	return json.Marshal(env)
}

// UnmarshalJSON restores a result, dispatching on the predicted_type tag.
func (r *Result) UnmarshalJSON(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	switch env.PredictedType {
	case KindAwareness:
		*r = Result{PersonaID: env.PersonaID, Kind: env.PredictedType, PredictedItems: env.PredictedItems}
	case KindTrainingsOnly:
		trainings := env.Trainings
		if trainings == nil {
			trainings = []string{}
		}
		*r = Result{PersonaID: env.PersonaID, Kind: env.PredictedType, Trainings: trainings}
	case KindJobsAndTrainings:
		jobs := env.Jobs
		if jobs == nil {
			jobs = []JobSuggestion{}
		}
		*r = Result{PersonaID: env.PersonaID, Kind: env.PredictedType, Jobs: jobs}
	default:
		return fmt.Errorf("unknown prediction type: %q", env.PredictedType)
	}
	return nil
}
