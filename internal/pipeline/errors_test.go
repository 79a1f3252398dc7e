package pipeline

import (
	"fmt"
	"testing"

	"runner-dashboard/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestDisplayErrors(t *testing.T) {
	var errs []model.ValidationError
	for i := 0; i < 13; i++ {
		errs = append(errs, model.ValidationError{Row: i + 2, Field: "miles", Message: "Miles value is required"})
	}

	lines := DisplayErrors(errs, 10)

	assert.Len(t, lines, 11)
	assert.Equal(t, "Row 2, miles: Miles value is required", lines[0])
	assert.Equal(t, "... and 3 more errors", lines[10])

	assert.Len(t, DisplayErrors(errs[:10], 10), 10)
	assert.Len(t, DisplayErrors(errs, 0), DefaultDisplayErrors+1)
	assert.Empty(t, DisplayErrors(nil, 5))
}

func TestDisplayErrorsFileLevel(t *testing.T) {
	lines := DisplayErrors(model.FileError(MsgProcessFailed).Errors, 10)

	assert.Equal(t, []string{"file: Failed to process file"}, lines)
}

func TestErrorHeadline(t *testing.T) {
	assert.Equal(t, "Found 1 error in CSV:", ErrorHeadline(1))
	for _, n := range []int{0, 2, 25} {
		assert.Equal(t, fmt.Sprintf("Found %d errors in CSV:", n), ErrorHeadline(n))
	}
}
