package model

import "fmt"

// Column and field names understood by the validator.
const (
	FieldDate    = "date"
	FieldPerson  = "person"
	FieldMiles   = "miles"
	FieldHeaders = "headers"
	FieldFile    = "file"
)

// RequiredColumns lists the columns every upload must carry, in report order.
var RequiredColumns = []string{FieldDate, FieldPerson, FieldMiles}

// RawRow is one tokenized CSV line keyed by the header names as they appeared
type RawRow map[string]string

// Record represents a single validated run
type Record struct {
	Date   string  `json:"date"`   // ISO 8601 calendar date, YYYY-MM-DD
	Person string  `json:"person"` // trimmed, never empty
	Miles  float64 `json:"miles"`  // 0 <= miles <= 200
}

// ValidationError describes one problem found in an upload.
// Row 0 means the problem is file or header level; data rows start at 2.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("Row %d, %s: %s", e.Row, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult is the outcome of validating one upload.
// When Errors is non-empty Data is always empty.
type ValidationResult struct {
	Data    []Record          `json:"data"`
	Errors  []ValidationError `json:"errors"`
	IsValid bool              `json:"isValid"`
}

// FileError builds the single synthetic error reported when the file itself
// could not be read or tokenized.
func FileError(message string) ValidationResult {
	return ValidationResult{
		Data:   []Record{},
		Errors: []ValidationError{{Row: 0, Field: FieldFile, Message: message}},
	}
}
