package pipeline

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"runner-dashboard/internal/model"
)

// Messages reported when an upload cannot be turned into rows at all.
const (
	MsgParseFailed   = "Failed to parse CSV file"
	MsgProcessFailed = "Failed to process file"
)

// ErrIngestion marks failures of the tokenizer itself (unreadable bytes,
// broken CSV structure) as opposed to validation problems.
var ErrIngestion = errors.New("csv ingestion failed")

// ------------------- Tokenizer -------------------

// Tokenize reads a CSV stream into its header names and one RawRow per data
// line. Empty lines are skipped by encoding/csv; an empty stream yields no
// headers and no error. Fields beyond the header are dropped, short rows
// simply lack the trailing keys and a repeated header keeps its first column.
func Tokenize(ctx context.Context, r io.Reader) ([]string, []model.RawRow, error) {
	csvReader := csv.NewReader(r)
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	headers, err := csvReader.Read()
	if err == io.EOF {
		return nil, []model.RawRow{}, nil
	} else if err != nil {
		return nil, nil, fmt.Errorf("%w: read header: %v", ErrIngestion, err)
	}
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}

	rows := make([]model.RawRow, 0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		record, err := csvReader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrIngestion, err)
		}

		row := make(model.RawRow, len(headers))
		for i, h := range headers {
			if i >= len(record) {
				break
			}
			// a repeated header name keeps its first column
			if _, dup := row[h]; !dup {
				row[h] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return headers, rows, nil
}

// ParseUpload tokenizes and validates one upload. Tokenizer failures are
// reported as the single file-level error; context errors are returned.
func ParseUpload(ctx context.Context, r io.Reader) (model.ValidationResult, error) {
	headers, rows, err := Tokenize(ctx, r)
	if err != nil {
		if errors.Is(err, ErrIngestion) {
			return model.FileError(MsgParseFailed), nil
		}
		return model.ValidationResult{}, err
	}
	return Validate(rows, headers), nil
}
