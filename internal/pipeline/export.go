package pipeline

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"runner-dashboard/internal/model"
	"runner-dashboard/pkg/utils"
)

// Export file names written per upload.
const (
	DashboardFile = "dashboard.json"
	PeopleFile    = "people.csv"
)

// Exporter writes the dashboard of a valid upload to disk
type Exporter struct {
	output *utils.OutputManager
	logger *utils.Logger
	retry  RetryConfig
}

// NewExporter creates an exporter rooted at output
func NewExporter(output *utils.OutputManager, logger *utils.Logger) *Exporter {
	cfg := DefaultExportRetry
	cfg.NonRetryable = []error{os.ErrPermission}
	return &Exporter{output: output, logger: logger, retry: cfg}
}

// ExportDashboard writes dashboard.json and people.csv for an upload.
// Every attempted export is reported; the error is the first failure.
func (e *Exporter) ExportDashboard(ctx context.Context, uploadID string, dashboard model.Dashboard) ([]model.ExportResult, error) {
	var firstErr error
	results := make([]model.ExportResult, 0, 2)

	for _, target := range []struct {
		name  string
		count int
		write func(path string) error
	}{
		{DashboardFile, dashboard.RecordCount, func(path string) error { return writeJSON(path, dashboard) }},
		{PeopleFile, len(dashboard.People), func(path string) error { return writePeopleCSV(path, dashboard.People) }},
	} {
		result := model.ExportResult{
			Type:        e.output.GetFileType(target.name),
			URL:         e.output.GetDownloadURL(uploadID, target.name),
			RecordCount: target.count,
			Timestamp:   time.Now().UTC(),
		}

		err := retry(ctx, e.retry, func() error {
			path, err := e.output.GetOutputFilePath(uploadID, target.name)
			if err != nil {
				return err
			}
			result.Path = path
			return target.write(path)
		})
		if err != nil {
			result.Error = err.Error()
			e.logger.Error("❌ Export of %s for upload %s failed: %v", target.name, uploadID, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("export %s: %w", target.name, err)
			}
		} else {
			result.Success = true
			e.logger.Debug("💾 Exported %s for upload %s", target.name, uploadID)
		}
		results = append(results, result)
	}

	return results, firstErr
}

// writeJSON writes v as indented JSON
func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writePeopleCSV writes the per-person leaderboard
func writePeopleCSV(path string, people []model.PersonMetric) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"person", "total_miles", "average_miles", "min_miles", "max_miles", "run_count"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, p := range people {
		row := []string{
			p.Person,
			strconv.FormatFloat(p.TotalMiles, 'f', 2, 64),
			strconv.FormatFloat(p.AverageMiles, 'f', 2, 64),
			strconv.FormatFloat(p.MinMiles, 'f', 2, 64),
			strconv.FormatFloat(p.MaxMiles, 'f', 2, 64),
			strconv.Itoa(p.RunCount),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
