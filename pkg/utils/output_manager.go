package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputManager handles export file organization and path management
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{
		BaseOutputDir: baseOutputDir,
	}
}

// CreateUploadOutputDir creates the directory holding an upload's exports
func (om *OutputManager) CreateUploadOutputDir(uploadID string) (string, error) {
	uploadDir := filepath.Join(om.BaseOutputDir, uploadID)

	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload output directory: %w", err)
	}

	return uploadDir, nil
}

// GetOutputFilePath generates a full path for an export file
func (om *OutputManager) GetOutputFilePath(uploadID, fileName string) (string, error) {
	uploadDir, err := om.CreateUploadOutputDir(uploadID)
	if err != nil {
		return "", err
	}

	// strip any path separators smuggled into the name
	return filepath.Join(uploadDir, filepath.Base(fileName)), nil
}

// ResolveFilePath returns the path of an existing export without creating anything
func (om *OutputManager) ResolveFilePath(uploadID, fileName string) string {
	return filepath.Join(om.BaseOutputDir, filepath.Base(uploadID), filepath.Base(fileName))
}

// GetDownloadURL generates a download URL for an export file
func (om *OutputManager) GetDownloadURL(uploadID, fileName string) string {
	return fmt.Sprintf("/api/v1/downloads/%s/%s", uploadID, filepath.Base(fileName))
}

// GetFileType determines the export type based on extension
func (om *OutputManager) GetFileType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return "csv"
	case ".json":
		return "json"
	default:
		return "unknown"
	}
}

// RemoveUploadOutputs deletes every export of an upload
func (om *OutputManager) RemoveUploadOutputs(uploadID string) error {
	name := filepath.Base(uploadID)
	if name == "." || name == string(filepath.Separator) {
		return fmt.Errorf("invalid upload id %q", uploadID)
	}
	return os.RemoveAll(filepath.Join(om.BaseOutputDir, name))
}

// EnsureOutputDirExists ensures the base output directory exists
func (om *OutputManager) EnsureOutputDirExists() error {
	return os.MkdirAll(om.BaseOutputDir, 0755)
}
