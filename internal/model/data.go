package model

import "time"

// OverallMetric summarises every run in an upload
type OverallMetric struct {
	TotalMiles    float64 `json:"totalMiles"`
	AverageMiles  float64 `json:"averageMiles"`
	MinMiles      float64 `json:"minMiles"`
	MaxMiles      float64 `json:"maxMiles"`
	TotalRuns     int     `json:"totalRuns"`
	UniqueRunners int     `json:"uniqueRunners"`
}

// PersonMetric summarises the runs of one person
type PersonMetric struct {
	Person       string  `json:"person"`
	TotalMiles   float64 `json:"totalMiles"`
	AverageMiles float64 `json:"averageMiles"`
	MinMiles     float64 `json:"minMiles"`
	MaxMiles     float64 `json:"maxMiles"`
	RunCount     int     `json:"runCount"`
}

// DateMilesPoint is the miles total for one date
type DateMilesPoint struct {
	Date  string  `json:"date"`
	Miles float64 `json:"miles"`
}

// PersonMilesPoint is the miles total for one person
type PersonMilesPoint struct {
	Person string  `json:"person"`
	Miles  float64 `json:"miles"`
	Share  float64 `json:"share"` // percent of all miles in the upload
}

// Dashboard holds the overall and per-person views of a valid upload
type Dashboard struct {
	FileName      string             `json:"fileName"`
	RecordCount   int                `json:"recordCount"`
	Runners       []string           `json:"runners"`
	Overall       OverallMetric      `json:"overall"`
	People        []PersonMetric     `json:"people"`
	MilesByDate   []DateMilesPoint   `json:"milesByDate"`
	MilesByPerson []PersonMilesPoint `json:"milesByPerson"`
}

// PersonView is the detail view for a single runner
type PersonView struct {
	Person      string           `json:"person"`
	Metric      *PersonMetric    `json:"metric,omitempty"`
	MilesByDate []DateMilesPoint `json:"milesByDate"`
}

// ExportResult represents the result of an export operation
type ExportResult struct {
	Type        string    `json:"type"` // "csv", "json"
	Path        string    `json:"path"`
	URL         string    `json:"url"`
	RecordCount int       `json:"record_count"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
