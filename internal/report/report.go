// Package report renders the submission history workbook: an intent matrix
// across all recorded batches with their scores, plus detail sheets for the
// inspected batch.
package report

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/gdsc-alina/alina/internal/personarange"
	"github.com/gdsc-alina/alina/internal/referential"
	"github.com/gdsc-alina/alina/internal/suggestion"
)

// Batch is one recorded submission with its ordinal number.
type Batch struct {
	Index   int
	Results []*suggestion.Result
}

const (
	intentSheet    = "Intent"
	trainingsSheet = "Trainings Only"
	jobsSheet      = "Jobs + Trainings"
)

// Write builds the workbook at path. scores align with batches by position;
// inspected is the batch rendered in the detail sheets.
func Write(path string, batches []Batch, scores []float64, inspected []*suggestion.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", intentSheet); err != nil {
		return err
	}
	if err := writeIntentMatrix(f, batches, scores); err != nil {
		return err
	}
	if err := writeTrainingsSheet(f, inspected); err != nil {
		return err
	}
	if err := writeJobsSheet(f, inspected); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// intentCode compresses a result into the two-letter matrix cell.
func intentCode(result *suggestion.Result) string {
	switch result.Kind {
	case suggestion.KindTrainingsOnly:
		return "Tr"
	case suggestion.KindJobsAndTrainings:
		return "Jo"
	case suggestion.KindAwareness:
		switch result.PredictedItems {
		case suggestion.ItemsTooYoung:
			return "Ay"
		case suggestion.ItemsInfo:
			return "Ai"
		}
	}
	return "?"
}

func buildMatrix(batches []Batch) []map[int]string {
	matrix := make([]map[int]string, 0, len(batches))
	for _, batch := range batches {
		cells := make(map[int]string)
		for _, result := range batch.Results {
			number, err := referential.PersonaNumber(result.PersonaID)
			if err != nil {
				continue
			}
			cells[number] = intentCode(result)
		}
		matrix = append(matrix, cells)
	}
	return matrix
}

func writeIntentMatrix(f *excelize.File, batches []Batch, scores []float64) error {
	centerBold, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Font:      &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}
	center, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	redFont, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Font:      &excelize.Font{Color: "FF0000"},
	})
	if err != nil {
		return err
	}
	grayBg, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D3D3D3"}},
	})
	if err != nil {
		return err
	}
	greenBg, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"90EE90"}},
	})
	if err != nil {
		return err
	}
	redBg, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFCCCB"}},
	})
	if err != nil {
		return err
	}

	if err := f.SetPanes(intentSheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      2,
		TopLeftCell: "B3",
		ActivePane:  "bottomRight",
	}); err != nil {
		return err
	}

	for persona := personarange.MinPersona; persona <= personarange.MaxPersona; persona++ {
		cell, _ := excelize.CoordinatesToCellName(1, persona+2)
		if err := f.SetCellValue(intentSheet, cell, fmt.Sprintf("P%03d", persona)); err != nil {
			return err
		}
		_ = f.SetCellStyle(intentSheet, cell, cell, centerBold)
	}

	matrix := buildMatrix(batches)
	for col, batch := range batches {
		header, _ := excelize.CoordinatesToCellName(col+2, 1)
		if err := f.SetCellValue(intentSheet, header, fmt.Sprintf("#%d", batch.Index)); err != nil {
			return err
		}
		_ = f.SetCellStyle(intentSheet, header, header, centerBold)

		if col < len(scores) {
			scoreCell, _ := excelize.CoordinatesToCellName(col+2, 2)
			if err := f.SetCellValue(intentSheet, scoreCell, scores[col]); err != nil {
				return err
			}
			if col > 0 && col-1 < len(scores) {
				switch {
				case scores[col] > scores[col-1]:
					_ = f.SetCellStyle(intentSheet, scoreCell, scoreCell, greenBg)
				case scores[col] < scores[col-1]:
					_ = f.SetCellStyle(intentSheet, scoreCell, scoreCell, redBg)
				}
			}
		}

		for persona := personarange.MinPersona; persona <= personarange.MaxPersona; persona++ {
			content := matrix[col][persona]
			cell, _ := excelize.CoordinatesToCellName(col+2, persona+2)
			if err := f.SetCellValue(intentSheet, cell, content); err != nil {
				return err
			}

			style := center
			previous := ""
			if col > 0 {
				previous = matrix[col-1][persona]
			}
			switch {
			case previous != "" && content != previous:
				style = grayBg
			case content == "?" || content == "":
				style = redFont
			}
			_ = f.SetCellStyle(intentSheet, cell, cell, style)
		}
	}

	// Collapse personas whose intent never changed across batches.
	for persona := personarange.MinPersona; persona <= personarange.MaxPersona; persona++ {
		allSame := true
		for col := 1; col < len(matrix); col++ {
			if matrix[col][persona] != matrix[0][persona] {
				allSame = false
				break
			}
		}
		if allSame && len(matrix) > 1 {
			_ = f.SetRowVisible(intentSheet, persona+2, false)
		}
	}
	return nil
}

func writeTrainingsSheet(f *excelize.File, inspected []*suggestion.Result) error {
	if _, err := f.NewSheet(trainingsSheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Font:      &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	row := 1
	for _, result := range inspected {
		if result.Kind != suggestion.KindTrainingsOnly {
			continue
		}
		number, err := referential.PersonaNumber(result.PersonaID)
		if err != nil {
			continue
		}

		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(trainingsSheet, cell, fmt.Sprintf("P%03d", number)); err != nil {
			return err
		}
		_ = f.SetCellStyle(trainingsSheet, cell, cell, bold)

		trainings := append([]string(nil), result.Trainings...)
		sort.Strings(trainings)
		for col, id := range trainings {
			cell, _ := excelize.CoordinatesToCellName(col+2, row)
			if err := f.SetCellValue(trainingsSheet, cell, id); err != nil {
				return err
			}
		}
		row++
	}
	return nil
}

func writeJobsSheet(f *excelize.File, inspected []*suggestion.Result) error {
	if _, err := f.NewSheet(jobsSheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Font:      &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	row := 1
	for _, result := range inspected {
		if result.Kind != suggestion.KindJobsAndTrainings {
			continue
		}
		number, err := referential.PersonaNumber(result.PersonaID)
		if err != nil {
			continue
		}

		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(jobsSheet, cell, fmt.Sprintf("P%03d", number)); err != nil {
			return err
		}
		_ = f.SetCellStyle(jobsSheet, cell, cell, bold)

		jobs := append([]suggestion.JobSuggestion(nil), result.Jobs...)
		sort.Slice(jobs, func(i, k int) bool { return jobs[i].JobID < jobs[k].JobID })

		maxTrainings := 0
		for col, job := range jobs {
			cell, _ := excelize.CoordinatesToCellName(col+2, row)
			if err := f.SetCellValue(jobsSheet, cell, job.JobID); err != nil {
				return err
			}
			_ = f.SetCellStyle(jobsSheet, cell, cell, bold)

			trainings := append([]string(nil), job.SuggestedTrainings...)
			sort.Strings(trainings)
			for idx, id := range trainings {
				tc, _ := excelize.CoordinatesToCellName(col+2, row+idx+1)
				if err := f.SetCellValue(jobsSheet, tc, id); err != nil {
					return err
				}
			}
			if len(trainings) > maxTrainings {
				maxTrainings = len(trainings)
			}
		}
		row += 1 + maxTrainings
	}
	return nil
}
