package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"runner-dashboard/internal/model"
	"runner-dashboard/internal/store"
	"runner-dashboard/pkg/checksum"
	"runner-dashboard/pkg/utils"

	"github.com/google/uuid"
)

// ErrUnreadable is returned when the upload body itself cannot be read.
var ErrUnreadable = errors.New("upload could not be read")

// Store is the persistence the processor needs
type Store interface {
	SaveUpload(ctx context.Context, upload *model.Upload, records []model.Record, errs []model.ValidationError) error
	FindValidByChecksum(ctx context.Context, checksum string) (*model.Upload, error)
	GetRecords(ctx context.Context, uploadID string) ([]model.Record, error)
}

// Outcome is everything produced by processing one upload
type Outcome struct {
	Upload    *model.Upload
	Result    model.ValidationResult
	Dashboard *model.Dashboard // nil unless the upload is valid
	Exports   []model.ExportResult
	Duplicate bool
}

// Processor runs an upload through ingestion, validation and aggregation
type Processor struct {
	store    Store
	exporter *Exporter
	logger   *utils.Logger
	now      func() time.Time
}

// NewProcessor creates a processor. store and exporter may be nil, in which
// case uploads are neither kept nor exported.
func NewProcessor(store Store, exporter *Exporter, logger *utils.Logger) *Processor {
	return &Processor{store: store, exporter: exporter, logger: logger, now: time.Now}
}

// ------------------- Processing -------------------

// Process validates an uploaded file and, when it is valid, builds its dashboard.
func (p *Processor) Process(ctx context.Context, fileName string, r io.Reader) (*Outcome, error) {
	start := p.now()

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	sum := checksum.Sum(content)
	p.logger.Info("➡️ Processing upload %q (%d bytes, checksum %s)", fileName, len(content), sum)

	if outcome, ok := p.findDuplicate(ctx, fileName, sum); ok {
		return outcome, nil
	}

	result, err := ParseUpload(ctx, bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	upload := &model.Upload{
		ID:          uuid.New().String(),
		FileName:    fileName,
		Checksum:    sum,
		Status:      uploadStatus(result),
		RecordCount: len(result.Data),
		ErrorCount:  len(result.Errors),
		CreatedAt:   p.now().UTC(),
	}
	outcome := &Outcome{Upload: upload, Result: result}

	if p.store != nil {
		if err := p.store.SaveUpload(ctx, upload, result.Data, result.Errors); err != nil {
			return nil, fmt.Errorf("save upload: %w", err)
		}
	}

	if !result.IsValid {
		p.logger.Warn("❌ Upload %s (%q) rejected with %d errors", upload.ID, fileName, len(result.Errors))
		return outcome, nil
	}

	dashboard := BuildDashboard(fileName, result.Data)
	outcome.Dashboard = &dashboard

	if p.exporter != nil {
		exports, err := p.exporter.ExportDashboard(ctx, upload.ID, dashboard)
		outcome.Exports = exports
		if err != nil {
			// exports are a convenience; the upload itself succeeded
			p.logger.Warn("Export for upload %s incomplete: %v", upload.ID, err)
		}
	}

	p.logger.Info("✅ Upload %s (%q): %d records, %d runners in %v",
		upload.ID, fileName, len(result.Data), dashboard.Overall.UniqueRunners, p.now().Sub(start))
	return outcome, nil
}

// findDuplicate returns the earlier valid upload of identical content.
func (p *Processor) findDuplicate(ctx context.Context, fileName, sum string) (*Outcome, bool) {
	if p.store == nil {
		return nil, false
	}

	existing, err := p.store.FindValidByChecksum(ctx, sum)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			p.logger.Warn("Checksum lookup failed, processing %q again: %v", fileName, err)
		}
		return nil, false
	}

	records, err := p.store.GetRecords(ctx, existing.ID)
	if err != nil {
		p.logger.Warn("Could not load records of upload %s, processing %q again: %v", existing.ID, fileName, err)
		return nil, false
	}

	p.logger.Info("🔁 Upload %q matches upload %s, reusing it", fileName, existing.ID)
	dashboard := BuildDashboard(existing.FileName, records)
	return &Outcome{
		Upload:    existing,
		Result:    model.ValidationResult{Data: records, Errors: []model.ValidationError{}, IsValid: true},
		Dashboard: &dashboard,
		Duplicate: true,
	}, true
}

func uploadStatus(result model.ValidationResult) string {
	if result.IsValid {
		return model.StatusValid
	}
	return model.StatusRejected
}
