package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunInvalidConfig(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "0")

	err := run()

	assert.ErrorContains(t, err, "invalid configuration")
}

func TestRunStoreFailure(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "")
	t.Setenv("DB_DSN", "file:"+filepath.Join(t.TempDir(), "missing", "runner.db"))

	err := run()

	assert.ErrorContains(t, err, "failed to open store")
}
