package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadIsValid(t *testing.T) {
	assert.True(t, (&Upload{Status: StatusValid}).IsValid())
	assert.False(t, (&Upload{Status: StatusRejected}).IsValid())
	assert.False(t, (&Upload{}).IsValid())
}

func TestValidationErrorText(t *testing.T) {
	assert.Equal(t, "Row 3, miles: Miles value is required", ValidationError{Row: 3, Field: FieldMiles, Message: "Miles value is required"}.Error())
	assert.Equal(t, "file: Failed to parse CSV file", FileError("Failed to parse CSV file").Errors[0].Error())
}
