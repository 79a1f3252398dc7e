package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"runner-dashboard/internal/model"
	"runner-dashboard/internal/store"
	"runner-dashboard/pkg/checksum"
	"runner-dashboard/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStore is a mock implementation of the Store interface.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) SaveUpload(ctx context.Context, upload *model.Upload, records []model.Record, errs []model.ValidationError) error {
	args := m.Called(ctx, upload, records, errs)
	return args.Error(0)
}

func (m *MockStore) FindValidByChecksum(ctx context.Context, sum string) (*model.Upload, error) {
	args := m.Called(ctx, sum)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Upload), args.Error(1)
}

func (m *MockStore) GetRecords(ctx context.Context, uploadID string) ([]model.Record, error) {
	args := m.Called(ctx, uploadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Record), args.Error(1)
}

const validCSV = "date,person,miles\n2024-01-05,Amy,3\n2024-01-06,Bo,5\n"

func newTestProcessor(s Store) *Processor {
	p := NewProcessor(s, nil, utils.NewDiscardLogger())
	p.now = func() time.Time { return time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC) }
	return p
}

func TestProcessValidUpload(t *testing.T) {
	s := new(MockStore)
	s.On("FindValidByChecksum", mock.Anything, checksum.Sum([]byte(validCSV))).Return(nil, store.ErrNotFound)
	s.On("SaveUpload", mock.Anything, mock.MatchedBy(func(u *model.Upload) bool {
		return u.Status == model.StatusValid && u.RecordCount == 2 && u.ErrorCount == 0 && u.FileName == "runs.csv"
	}), mock.Anything, mock.Anything).Return(nil)

	outcome, err := newTestProcessor(s).Process(context.Background(), "runs.csv", strings.NewReader(validCSV))

	require.NoError(t, err)
	assert.False(t, outcome.Duplicate)
	assert.True(t, outcome.Result.IsValid)
	assert.NotEmpty(t, outcome.Upload.ID)
	assert.Equal(t, time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC), outcome.Upload.CreatedAt)
	require.NotNil(t, outcome.Dashboard)
	assert.Equal(t, 2, outcome.Dashboard.Overall.UniqueRunners)
	s.AssertExpectations(t)
}

func TestProcessRejectedUpload(t *testing.T) {
	input := "date,person,miles\n2024-01-05,Amy,3\n2024-01-06,Bo,abc\n"
	s := new(MockStore)
	s.On("FindValidByChecksum", mock.Anything, mock.Anything).Return(nil, store.ErrNotFound)
	s.On("SaveUpload", mock.Anything, mock.MatchedBy(func(u *model.Upload) bool {
		return u.Status == model.StatusRejected && u.RecordCount == 0 && u.ErrorCount == 1
	}), []model.Record{}, mock.Anything).Return(nil)

	outcome, err := newTestProcessor(s).Process(context.Background(), "bad.csv", strings.NewReader(input))

	require.NoError(t, err)
	assert.False(t, outcome.Result.IsValid)
	assert.Nil(t, outcome.Dashboard)
	assert.Equal(t, `Invalid miles value: "abc". Must be a number`, outcome.Result.Errors[0].Message)
	s.AssertExpectations(t)
}

func TestProcessDuplicateUpload(t *testing.T) {
	existing := &model.Upload{ID: "first", FileName: "runs.csv", Status: model.StatusValid, RecordCount: 2}
	records := []model.Record{
		{Date: "2024-01-05", Person: "Amy", Miles: 3},
		{Date: "2024-01-06", Person: "Bo", Miles: 5},
	}
	s := new(MockStore)
	s.On("FindValidByChecksum", mock.Anything, mock.Anything).Return(existing, nil)
	s.On("GetRecords", mock.Anything, "first").Return(records, nil)

	outcome, err := newTestProcessor(s).Process(context.Background(), "copy.csv", strings.NewReader(validCSV))

	require.NoError(t, err)
	assert.True(t, outcome.Duplicate)
	assert.Same(t, existing, outcome.Upload)
	assert.Equal(t, records, outcome.Result.Data)
	assert.Equal(t, "runs.csv", outcome.Dashboard.FileName)
	s.AssertNotCalled(t, "SaveUpload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessLookupFailureFallsBackToProcessing(t *testing.T) {
	s := new(MockStore)
	s.On("FindValidByChecksum", mock.Anything, mock.Anything).Return(nil, errors.New("db locked"))
	s.On("SaveUpload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	outcome, err := newTestProcessor(s).Process(context.Background(), "runs.csv", strings.NewReader(validCSV))

	require.NoError(t, err)
	assert.False(t, outcome.Duplicate)
	assert.True(t, outcome.Result.IsValid)
}

func TestProcessSaveFailure(t *testing.T) {
	s := new(MockStore)
	s.On("FindValidByChecksum", mock.Anything, mock.Anything).Return(nil, store.ErrNotFound)
	s.On("SaveUpload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, err := newTestProcessor(s).Process(context.Background(), "runs.csv", strings.NewReader(validCSV))

	assert.ErrorContains(t, err, "disk full")
}

func TestProcessUnreadableBody(t *testing.T) {
	_, err := newTestProcessor(nil).Process(context.Background(), "runs.csv", iotest.ErrReader(errors.New("reset")))

	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestProcessWithoutStoreOrExporter(t *testing.T) {
	outcome, err := newTestProcessor(nil).Process(context.Background(), "runs.csv", strings.NewReader(validCSV))

	require.NoError(t, err)
	assert.True(t, outcome.Result.IsValid)
	assert.Empty(t, outcome.Exports)
}

func TestProcessExports(t *testing.T) {
	exporter := NewExporter(utils.NewOutputManager(t.TempDir()), utils.NewDiscardLogger())
	p := NewProcessor(nil, exporter, utils.NewDiscardLogger())

	outcome, err := p.Process(context.Background(), "runs.csv", strings.NewReader(validCSV))

	require.NoError(t, err)
	require.Len(t, outcome.Exports, 2)
	assert.True(t, outcome.Exports[0].Success)
	assert.Contains(t, outcome.Exports[0].URL, outcome.Upload.ID)
}
