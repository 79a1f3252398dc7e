package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"time"

	"runner-dashboard/internal/model"
	"runner-dashboard/internal/pipeline"
	"runner-dashboard/internal/store"
	"runner-dashboard/pkg/router"
	"runner-dashboard/pkg/utils"
)

// UploadStore is the read side of the upload store used by the handlers
type UploadStore interface {
	GetUpload(ctx context.Context, id string) (*model.Upload, error)
	ListUploads(ctx context.Context) ([]*model.Upload, error)
	GetRecords(ctx context.Context, uploadID string) ([]model.Record, error)
	GetErrors(ctx context.Context, uploadID string) ([]model.ValidationError, error)
	DeleteUpload(ctx context.Context, id string) error
}

// Options tunes request handling
type Options struct {
	MaxUploadBytes   int64
	MaxDisplayErrors int
	RequestTimeout   time.Duration
}

// UploadHandler serves the upload and dashboard endpoints
type UploadHandler struct {
	processor *pipeline.Processor
	store     UploadStore
	output    *utils.OutputManager // nil when exports are disabled
	logger    *utils.Logger
	opts      Options
}

// NewUploadHandler wires the handler dependencies
func NewUploadHandler(processor *pipeline.Processor, store UploadStore, output *utils.OutputManager, logger *utils.Logger, opts Options) *UploadHandler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	if opts.MaxDisplayErrors <= 0 {
		opts.MaxDisplayErrors = pipeline.DefaultDisplayErrors
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	return &UploadHandler{processor: processor, store: store, output: output, logger: logger, opts: opts}
}

// UploadResponse is returned for an accepted upload
type UploadResponse struct {
	Upload    *model.Upload        `json:"upload"`
	IsValid   bool                 `json:"isValid"`
	Duplicate bool                 `json:"duplicate"`
	Dashboard *model.Dashboard     `json:"dashboard"`
	Exports   []model.ExportResult `json:"exports,omitempty"`
}

// RejectionResponse is returned for an upload that failed validation
type RejectionResponse struct {
	Upload        *model.Upload           `json:"upload,omitempty"`
	IsValid       bool                    `json:"isValid"`
	Message       string                  `json:"message"`
	ErrorCount    int                     `json:"errorCount"`
	Errors        []model.ValidationError `json:"errors"`
	DisplayErrors []string                `json:"displayErrors"`
}

// CreateUpload validates an uploaded CSV file and returns its dashboard
// @Summary Upload a running log
// @Description Upload a CSV with date, person and miles columns. The file is rejected as a whole if any row is invalid.
// @Tags uploads
// @Accept multipart/form-data
// @Accept text/csv
// @Produce json
// @Param file formData file false "CSV file (multipart)"
// @Param name query string false "File name when the body is raw CSV"
// @Success 200 {object} UploadResponse "Upload accepted"
// @Failure 400 {object} RejectionResponse "File could not be read"
// @Failure 422 {object} RejectionResponse "Validation failed"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /uploads [post]
func (h *UploadHandler) CreateUpload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.opts.RequestTimeout)
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)

	fileName, body, err := h.uploadBody(r)
	if err != nil {
		h.logger.Warn("Unreadable upload: %v", err)
		h.reject(w, http.StatusBadRequest, nil, model.FileError(pipeline.MsgProcessFailed).Errors)
		return
	}
	defer body.Close()

	outcome, err := h.processor.Process(ctx, fileName, body)
	if err != nil {
		if errors.Is(err, pipeline.ErrUnreadable) {
			h.logger.Warn("Unreadable upload %q: %v", fileName, err)
			h.reject(w, http.StatusBadRequest, nil, model.FileError(pipeline.MsgProcessFailed).Errors)
			return
		}
		h.logger.Error("Processing %q failed: %v", fileName, err)
		http.Error(w, "Failed to process upload", http.StatusInternalServerError)
		return
	}

	if !outcome.Result.IsValid {
		h.reject(w, http.StatusUnprocessableEntity, outcome.Upload, outcome.Result.Errors)
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		Upload:    outcome.Upload,
		IsValid:   true,
		Duplicate: outcome.Duplicate,
		Dashboard: outcome.Dashboard,
		Exports:   outcome.Exports,
	})
}

// uploadBody returns the CSV stream of a multipart or raw request
func (h *UploadHandler) uploadBody(r *http.Request) (string, io.ReadCloser, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		file, header, err := r.FormFile("file")
		if err != nil {
			return "", nil, fmt.Errorf("read form file: %w", err)
		}
		return header.Filename, file, nil
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "upload.csv"
	}
	return name, r.Body, nil
}

func (h *UploadHandler) reject(w http.ResponseWriter, status int, upload *model.Upload, errs []model.ValidationError) {
	message := pipeline.ErrorHeadline(len(errs))
	if len(errs) == 0 {
		message = "CSV file contains no data rows"
	}
	writeJSON(w, status, RejectionResponse{
		Upload:        upload,
		IsValid:       false,
		Message:       message,
		ErrorCount:    len(errs),
		Errors:        errs,
		DisplayErrors: pipeline.DisplayErrors(errs, h.opts.MaxDisplayErrors),
	})
}

// ListUploads lists every upload held by the service
// @Summary List uploads
// @Tags uploads
// @Produce json
// @Success 200 {object} map[string]interface{} "Uploads"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /uploads [get]
func (h *UploadHandler) ListUploads(w http.ResponseWriter, r *http.Request) {
	uploads, err := h.store.ListUploads(r.Context())
	if err != nil {
		h.logger.Error("List uploads: %v", err)
		http.Error(w, "Failed to fetch uploads", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"uploads": uploads,
		"count":   len(uploads),
	})
}

// GetUpload returns the metadata of one upload
// @Summary Get upload
// @Tags uploads
// @Produce json
// @Param id path string true "Upload ID"
// @Success 200 {object} model.Upload
// @Failure 404 {string} string "Upload not found"
// @Router /uploads/{id} [get]
func (h *UploadHandler) GetUpload(w http.ResponseWriter, r *http.Request) {
	upload, ok := h.loadUpload(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, upload)
}

// GetDashboard returns the overall and per-person views of a valid upload
// @Summary Get dashboard
// @Tags dashboard
// @Produce json
// @Param id path string true "Upload ID"
// @Success 200 {object} model.Dashboard
// @Failure 404 {string} string "Upload not found"
// @Failure 409 {string} string "Upload was rejected"
// @Router /uploads/{id}/dashboard [get]
func (h *UploadHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	upload, records, ok := h.loadValidRecords(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, pipeline.BuildDashboard(upload.FileName, records))
}

// GetRecords returns the validated records of an upload
// @Summary Get records
// @Tags uploads
// @Produce json
// @Param id path string true "Upload ID"
// @Success 200 {object} map[string]interface{} "Records"
// @Failure 404 {string} string "Upload not found"
// @Router /uploads/{id}/records [get]
func (h *UploadHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	upload, ok := h.loadUpload(w, r)
	if !ok {
		return
	}

	records, err := h.store.GetRecords(r.Context(), upload.ID)
	if err != nil {
		h.logger.Error("Records of upload %s: %v", upload.ID, err)
		http.Error(w, "Failed to retrieve records", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"upload_id": upload.ID,
		"records":   records,
		"count":     len(records),
	})
}

// GetErrors returns the validation errors of an upload
// @Summary Get validation errors
// @Tags uploads
// @Produce json
// @Param id path string true "Upload ID"
// @Success 200 {object} RejectionResponse
// @Failure 404 {string} string "Upload not found"
// @Router /uploads/{id}/errors [get]
func (h *UploadHandler) GetErrors(w http.ResponseWriter, r *http.Request) {
	upload, ok := h.loadUpload(w, r)
	if !ok {
		return
	}

	errs, err := h.store.GetErrors(r.Context(), upload.ID)
	if err != nil {
		h.logger.Error("Errors of upload %s: %v", upload.ID, err)
		http.Error(w, "Failed to retrieve errors", http.StatusInternalServerError)
		return
	}

	message := pipeline.ErrorHeadline(len(errs))
	if upload.IsValid() {
		message = "Upload is valid"
	} else if len(errs) == 0 {
		message = "CSV file contains no data rows"
	}
	writeJSON(w, http.StatusOK, RejectionResponse{
		Upload:        upload,
		IsValid:       upload.IsValid(),
		Message:       message,
		ErrorCount:    len(errs),
		Errors:        errs,
		DisplayErrors: pipeline.DisplayErrors(errs, h.opts.MaxDisplayErrors),
	})
}

// GetRunner returns the detail view of one runner
// @Summary Get runner view
// @Description Metrics and miles by date for one person (exact name match). Unknown names yield an empty view.
// @Tags dashboard
// @Produce json
// @Param id path string true "Upload ID"
// @Param person path string true "Runner name"
// @Success 200 {object} model.PersonView
// @Failure 404 {string} string "Upload not found"
// @Failure 409 {string} string "Upload was rejected"
// @Router /uploads/{id}/runners/{person} [get]
func (h *UploadHandler) GetRunner(w http.ResponseWriter, r *http.Request) {
	_, records, ok := h.loadValidRecords(w, r)
	if !ok {
		return
	}

	var person string
	if params := router.Params(r); len(params) > 1 {
		person = params[1]
	}
	writeJSON(w, http.StatusOK, pipeline.BuildPersonView(records, person))
}

// DeleteUpload drops an upload and its exports
// @Summary Delete upload
// @Tags uploads
// @Produce json
// @Param id path string true "Upload ID"
// @Success 200 {object} map[string]interface{} "Upload deleted"
// @Failure 404 {string} string "Upload not found"
// @Router /uploads/{id} [delete]
func (h *UploadHandler) DeleteUpload(w http.ResponseWriter, r *http.Request) {
	id := uploadID(r)
	if err := h.store.DeleteUpload(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Upload not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Delete upload %s: %v", id, err)
		http.Error(w, "Failed to delete upload", http.StatusInternalServerError)
		return
	}

	if h.output != nil {
		if err := h.output.RemoveUploadOutputs(id); err != nil {
			h.logger.Warn("Exports of upload %s not removed: %v", id, err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Upload deleted",
		"upload_id": id,
	})
}

// DownloadFile serves an exported file
// @Summary Download export
// @Tags exports
// @Produce application/octet-stream
// @Param id path string true "Upload ID"
// @Param filename path string true "dashboard.json or people.csv"
// @Success 200 {file} file "File download"
// @Failure 404 {string} string "File not found"
// @Router /downloads/{id}/{filename} [get]
func (h *UploadHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	params := router.Params(r)
	if h.output == nil || len(params) < 2 {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	filePath := h.output.ResolveFilePath(params[0], params[1])
	if _, err := os.Stat(filePath); err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", params[1]))
	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeFile(w, r, filePath)
}

// Health reports liveness
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func uploadID(r *http.Request) string {
	if params := router.Params(r); len(params) > 0 {
		return params[0]
	}
	return ""
}

// loadUpload resolves the upload named in the path, answering 404 itself
func (h *UploadHandler) loadUpload(w http.ResponseWriter, r *http.Request) (*model.Upload, bool) {
	id := uploadID(r)
	if id == "" {
		http.Error(w, "Upload ID is required", http.StatusBadRequest)
		return nil, false
	}

	upload, err := h.store.GetUpload(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Upload not found", http.StatusNotFound)
		return nil, false
	} else if err != nil {
		h.logger.Error("Get upload %s: %v", id, err)
		http.Error(w, "Failed to retrieve upload", http.StatusInternalServerError)
		return nil, false
	}
	return upload, true
}

// loadValidRecords resolves a valid upload and its records
func (h *UploadHandler) loadValidRecords(w http.ResponseWriter, r *http.Request) (*model.Upload, []model.Record, bool) {
	upload, ok := h.loadUpload(w, r)
	if !ok {
		return nil, nil, false
	}
	if !upload.IsValid() {
		http.Error(w, "Upload was rejected; see its errors", http.StatusConflict)
		return nil, nil, false
	}

	records, err := h.store.GetRecords(r.Context(), upload.ID)
	if err != nil {
		h.logger.Error("Records of upload %s: %v", upload.ID, err)
		http.Error(w, "Failed to retrieve records", http.StatusInternalServerError)
		return nil, nil, false
	}
	return upload, records, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
