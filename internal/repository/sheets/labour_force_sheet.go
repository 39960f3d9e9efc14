package sheets

import (
	"context"
	"fmt"

	"github.com/mamadbah2/lfs-pipeline/internal/domain/models"
)

// LabourForceSheet keeps a header row plus one row per month, keyed by the
// date in column A.
type LabourForceSheet struct {
	repo       Repository
	sheetRange string
}

// NewLabourForceSheet binds the sheet upsert logic to a range such as "LabourForce!A:H".
func NewLabourForceSheet(repo Repository, sheetRange string) *LabourForceSheet {
	return &LabourForceSheet{repo: repo, sheetRange: sheetRange}
}

// UpsertLabourForce reads the current range, replaces rows whose date matches an
// incoming row, appends the rest and writes the whole range back in one call.
func (s *LabourForceSheet) UpsertLabourForce(ctx context.Context, rows []models.LabourForceRow) error {
	if len(rows) == 0 {
		return nil
	}

	existing, err := s.repo.ReadRange(ctx, s.sheetRange)
	if err != nil {
		return fmt.Errorf("load labour force sheet: %w", err)
	}

	if err := s.repo.WriteRange(ctx, s.sheetRange, mergeRows(existing, rows)); err != nil {
		return fmt.Errorf("write labour force sheet: %w", err)
	}
	return nil
}

func mergeRows(existing [][]interface{}, rows []models.LabourForceRow) [][]interface{} {
	header := make([]interface{}, len(models.Columns))
	for i, col := range models.Columns {
		header[i] = col
	}

	body := existing
	if len(body) > 0 && isHeader(body[0]) {
		body = body[1:]
	}

	merged := make([][]interface{}, 0, len(body)+len(rows)+1)
	merged = append(merged, header)

	index := make(map[string]int, len(body))
	for _, row := range body {
		if len(row) == 0 {
			continue
		}
		index[fmt.Sprint(row[0])] = len(merged)
		merged = append(merged, row)
	}

	for _, row := range rows {
		if pos, ok := index[row.Date]; ok {
			merged[pos] = row.Values()
			continue
		}
		index[row.Date] = len(merged)
		merged = append(merged, row.Values())
	}

	return merged
}

func isHeader(row []interface{}) bool {
	return len(row) > 0 && fmt.Sprint(row[0]) == models.Columns[0]
}
