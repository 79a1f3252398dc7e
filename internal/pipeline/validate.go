package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"runner-dashboard/internal/model"
	"runner-dashboard/pkg/utils"
)

// MaxMiles is the largest single-run distance accepted without complaint.
const MaxMiles = 200.0

// Validate checks the header set and every row of an upload. Any error
// rejects the whole file: the result then carries no records.
func Validate(rows []model.RawRow, headers []string) model.ValidationResult {
	result := model.ValidationResult{
		Data:   []model.Record{},
		Errors: []model.ValidationError{},
	}

	if headerErr, ok := validateHeaders(headers); !ok {
		result.Errors = append(result.Errors, headerErr)
		return result
	}

	for i, row := range rows {
		rowNumber := i + 2 // index is 0-based and line 1 is the header
		rec, rowErrs := validateRow(row, headers, rowNumber)
		if len(rowErrs) > 0 {
			result.Errors = append(result.Errors, rowErrs...)
			continue
		}
		result.Data = append(result.Data, rec)
	}

	if len(result.Errors) > 0 {
		result.Data = []model.Record{}
	}
	result.IsValid = len(result.Errors) == 0 && len(result.Data) > 0
	return result
}

// validateHeaders checks that every required column is present, ignoring
// case, surrounding whitespace and column order.
func validateHeaders(headers []string) (model.ValidationError, bool) {
	if len(headers) == 0 {
		return model.ValidationError{Row: 0, Field: model.FieldHeaders, Message: "CSV file has no headers"}, false
	}

	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}

	var missing []string
	for _, required := range model.RequiredColumns {
		if _, ok := present[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return model.ValidationError{
			Row:   0,
			Field: model.FieldHeaders,
			Message: fmt.Sprintf("Missing required columns: %s. Expected: %s",
				strings.Join(missing, ", "), strings.Join(model.RequiredColumns, ", ")),
		}, false
	}
	return model.ValidationError{}, true
}

// validateRow checks date, person and miles in that order and builds the
// normalized record when all three pass.
func validateRow(row model.RawRow, headers []string, rowNumber int) (model.Record, []model.ValidationError) {
	var errs []model.ValidationError
	fail := func(field, format string, args ...any) {
		errs = append(errs, model.ValidationError{Row: rowNumber, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	dateValue := lookupField(row, headers, model.FieldDate)
	personValue := lookupField(row, headers, model.FieldPerson)
	milesValue := lookupField(row, headers, model.FieldMiles)

	var date string
	if strings.TrimSpace(dateValue) == "" {
		fail(model.FieldDate, "Date is required")
	} else if normalized, ok := NormalizeDate(dateValue); ok {
		date = normalized
	} else {
		fail(model.FieldDate, "Invalid date format: \"%s\". Use YYYY-MM-DD or MM/DD/YYYY", dateValue)
	}

	person := strings.TrimSpace(personValue)
	if person == "" {
		fail(model.FieldPerson, "Person name is required")
	}

	var miles float64
	if strings.TrimSpace(milesValue) == "" {
		fail(model.FieldMiles, "Miles value is required")
	} else if parsed, ok := utils.ParseLeadingFloat(milesValue); !ok {
		fail(model.FieldMiles, "Invalid miles value: \"%s\". Must be a number", milesValue)
	} else if parsed < 0 {
		fail(model.FieldMiles, "Miles cannot be negative: %s", utils.FormatNumber(parsed))
	} else if parsed > MaxMiles {
		fail(model.FieldMiles, "Miles value seems unrealistic: %s. Please verify.", utils.FormatNumber(parsed))
	} else {
		miles = parsed
	}

	if len(errs) > 0 {
		return model.Record{}, errs
	}
	return model.Record{Date: date, Person: person, Miles: miles}, nil
}

// lookupField resolves a column by exact key first, then by the first header
// (in file order) that matches case-insensitively, then by any row key that
// does (in sorted key order). Absent columns read as "".
func lookupField(row model.RawRow, headers []string, field string) string {
	if v, ok := row[field]; ok {
		return v
	}
	for _, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), field) {
			if v, ok := row[h]; ok {
				return v
			}
		}
	}

	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.EqualFold(strings.TrimSpace(k), field) {
			return row[k]
		}
	}
	return ""
}
