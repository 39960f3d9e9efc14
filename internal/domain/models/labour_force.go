package models

import (
	"encoding/json"
	"time"
)

// DateLayout is the wire format used for the date column of every sink.
const DateLayout = "2006-01-02"

// RawData is the untouched JSON body returned by the data catalogue API.
type RawData json.RawMessage

// LabourForceRecord captures one month of national labour force statistics.
// Counts are expressed in thousands of persons, rates in percentage points.
type LabourForceRecord struct {
	Date         time.Time
	LF           float64
	LFEmployed   float64
	LFUnemployed float64
	LFOutside    float64
	URate        float64
	PRate        float64
	EPRatio      float64
}

// Row renders the record into its serialization-ready form.
func (r LabourForceRecord) Row() LabourForceRow {
	return LabourForceRow{
		Date:         r.Date.Format(DateLayout),
		LF:           r.LF,
		LFEmployed:   r.LFEmployed,
		LFUnemployed: r.LFUnemployed,
		LFOutside:    r.LFOutside,
		URate:        r.URate,
		PRate:        r.PRate,
		EPRatio:      r.EPRatio,
	}
}

// LabourForceRow is the flat payload written to the malaysia_labour_force table.
type LabourForceRow struct {
	Date         string  `bson:"date" json:"date"`
	LF           float64 `bson:"lf" json:"lf"`
	LFEmployed   float64 `bson:"lf_employed" json:"lf_employed"`
	LFUnemployed float64 `bson:"lf_unemployed" json:"lf_unemployed"`
	LFOutside    float64 `bson:"lf_outside" json:"lf_outside"`
	URate        float64 `bson:"u_rate" json:"u_rate"`
	PRate        float64 `bson:"p_rate" json:"p_rate"`
	EPRatio      float64 `bson:"ep_ratio" json:"ep_ratio"`
}

// Columns lists the table columns in their canonical order.
var Columns = []string{"date", "lf", "lf_employed", "lf_unemployed", "lf_outside", "u_rate", "p_rate", "ep_ratio"}

// Values returns the row cells ordered like Columns.
func (r LabourForceRow) Values() []interface{} {
	return []interface{}{r.Date, r.LF, r.LFEmployed, r.LFUnemployed, r.LFOutside, r.URate, r.PRate, r.EPRatio}
}

// QualityReport summarizes the data quality checks of a single transform run.
type QualityReport struct {
	Input          int `json:"input"`
	Dropped        int `json:"dropped"`
	LogicErrors    int `json:"logic_errors"`
	BoundaryErrors int `json:"boundary_errors"`
	Output         int `json:"output"`
}
