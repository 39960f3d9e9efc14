package transform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/mamadbah2/lfs-pipeline/internal/domain/models"
)

const (
	// LogicTolerance is the absolute gap, in thousands, allowed between
	// lf_employed + lf_unemployed and lf before a row is flagged.
	LogicTolerance = 0.2

	minRate = 0.0
	maxRate = 100.0
)

const (
	colDate         = "date"
	colLF           = "lf"
	colLFEmployed   = "lf_employed"
	colLFUnemployed = "lf_unemployed"
	colLFOutside    = "lf_outside"
	colURate        = "u_rate"
	colPRate        = "p_rate"
	colEPRatio      = "ep_ratio"
)

var numericColumns = []string{colLF, colLFEmployed, colLFUnemployed, colLFOutside, colURate, colPRate, colEPRatio}

// Service turns raw catalogue payloads into clean labour force rows.
type Service struct {
	logger *zap.Logger
}

// NewService wires a new transform service instance.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// Transform decodes raw, drops incomplete rows and flags rows failing the
// consistency and boundary checks. Flagged rows are kept. The returned rows
// preserve input order.
func (s *Service) Transform(raw models.RawData) ([]models.LabourForceRow, models.QualityReport, error) {
	var report models.QualityReport

	records, err := decodeRecords(raw)
	if err != nil {
		return nil, report, err
	}
	report.Input = len(records)

	clean := make([]models.LabourForceRecord, 0, len(records))
	for _, rec := range records {
		if parsed, ok := coerceRecord(rec); ok {
			clean = append(clean, parsed)
		}
	}

	report.Dropped = report.Input - len(clean)
	if report.Dropped > 0 {
		s.logger.Warn("dropped rows with null values", zap.Int("dropped", report.Dropped))
	}

	var logicDates, boundaryDates []string
	for _, rec := range clean {
		if math.Abs((rec.LFEmployed+rec.LFUnemployed)-rec.LF) > LogicTolerance {
			logicDates = append(logicDates, rec.Date.Format(models.DateLayout))
		}
		if rec.URate < minRate || rec.URate > maxRate {
			boundaryDates = append(boundaryDates, rec.Date.Format(models.DateLayout))
		}
	}

	report.LogicErrors = len(logicDates)
	if report.LogicErrors > 0 {
		s.logger.Warn("logic error: lf_employed + lf_unemployed != lf",
			zap.Int("rows", report.LogicErrors),
			zap.Float64("tolerance", LogicTolerance),
			zap.Strings("dates", logicDates))
	}

	report.BoundaryErrors = len(boundaryDates)
	if report.BoundaryErrors > 0 {
		s.logger.Warn("boundary error: impossible unemployment rates",
			zap.Int("rows", report.BoundaryErrors),
			zap.Strings("dates", boundaryDates))
	}

	rows := make([]models.LabourForceRow, 0, len(clean))
	for _, rec := range clean {
		rows = append(rows, rec.Row())
	}
	report.Output = len(rows)

	return rows, report, nil
}

// decodeRecords accepts either a JSON array of objects or an object wrapping
// that array under "data". Every tracked column must appear in at least one record.
func decodeRecords(raw models.RawData) ([]map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if envelope, ok := payload.(map[string]any); ok {
		data, found := envelope["data"]
		if !found {
			return nil, fmt.Errorf("%w: object payload without data field", ErrMalformedPayload)
		}
		payload = data
	}

	items, ok := payload.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list of records, got %T", ErrMalformedPayload, payload)
	}

	records := make([]map[string]any, 0, len(items))
	for i, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: record %d is %T, not an object", ErrMalformedPayload, i, item)
		}
		records = append(records, rec)
	}

	for _, col := range append([]string{colDate}, numericColumns...) {
		if !hasColumn(records, col) {
			return nil, &MissingColumnError{Column: col}
		}
	}

	return records, nil
}

func hasColumn(records []map[string]any, col string) bool {
	for _, rec := range records {
		if _, ok := rec[col]; ok {
			return true
		}
	}
	return false
}

// coerceRecord reports false when any tracked cell is missing or unparseable.
func coerceRecord(rec map[string]any) (models.LabourForceRecord, bool) {
	date, ok := coerceDate(rec[colDate])
	if !ok {
		return models.LabourForceRecord{}, false
	}

	values := make(map[string]float64, len(numericColumns))
	for _, col := range numericColumns {
		v, ok := coerceFloat(rec[col])
		if !ok {
			return models.LabourForceRecord{}, false
		}
		values[col] = v
	}

	return models.LabourForceRecord{
		Date:         date,
		LF:           values[colLF],
		LFEmployed:   values[colLFEmployed],
		LFUnemployed: values[colLFUnemployed],
		LFOutside:    values[colLFOutside],
		URate:        values[colURate],
		PRate:        values[colPRate],
		EPRatio:      values[colEPRatio],
	}, true
}
