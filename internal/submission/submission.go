// Package submission validates a complete suggestion batch before it is sent
// for scoring. Validation always runs client-side first; a malformed batch
// never reaches the network.
package submission

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/gdsc-alina/alina/internal/personarange"
	"github.com/gdsc-alina/alina/internal/suggestion"
)

//go:embed schema.json
var schemaJSON string

var schema = gojsonschema.NewStringLoader(schemaJSON)

// BatchSize is the number of personas a scored batch must cover.
const BatchSize = personarange.MaxPersona

// Validate checks a full batch: exactly BatchSize entries, every entry
// well-formed for its predicted type, and the serialized form conforming to
// the wire schema.
func Validate(results []*suggestion.Result) error {
	if len(results) == 0 {
		return fmt.Errorf("results list is empty")
	}
	if len(results) != BatchSize {
		return fmt.Errorf("expected %d personas, got %d", BatchSize, len(results))
	}

	for i, result := range results {
		if err := validateEntry(result); err != nil {
			return fmt.Errorf("result %d: %w", i, err)
		}
	}

	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("serialize batch: %w", err)
	}
	verdict, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return fmt.Errorf("run schema validation: %w", err)
	}
	if !verdict.Valid() {
		first := verdict.Errors()[0]
		return fmt.Errorf("batch does not match wire schema: %s: %s", first.Field(), first.Description())
	}
	return nil
}

func validateEntry(result *suggestion.Result) error {
	if result.PersonaID == "" {
		return fmt.Errorf("missing persona_id")
	}

	switch result.Kind {
	case suggestion.KindJobsAndTrainings:
		if result.Jobs == nil {
			return fmt.Errorf("missing jobs field")
		}
		for _, job := range result.Jobs {
			if job.JobID == "" {
				return fmt.Errorf("job missing job_id")
			}
			if job.SuggestedTrainings == nil {
				return fmt.Errorf("job %s missing suggested_trainings", job.JobID)
			}
		}
	case suggestion.KindTrainingsOnly:
		if result.Trainings == nil {
			return fmt.Errorf("missing trainings field")
		}
	case suggestion.KindAwareness:
		if result.PredictedItems != "" &&
			result.PredictedItems != suggestion.ItemsTooYoung &&
			result.PredictedItems != suggestion.ItemsInfo {
			return fmt.Errorf("invalid predicted_items %q", result.PredictedItems)
		}
	default:
		return fmt.Errorf("invalid predicted_type %q", result.Kind)
	}
	return nil
}
