package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"

	"cvscreen/dreamteam/internal/logger"
	"cvscreen/dreamteam/internal/models"
	"cvscreen/dreamteam/internal/services"
)

// acceptedMIME lists, per extension, the sniffed content types an upload may
// carry. Word files are often only recognised as their container format.
var acceptedMIME = map[string][]string{
	".pdf":  {"application/pdf"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip"},
	".doc":  {"application/msword", "application/x-ole-storage"},
}

type UploadHandler struct {
	store       services.DocumentStore
	maxFileSize int64
}

func NewUploadHandler(store services.DocumentStore, maxFileSize int64) *UploadHandler {
	return &UploadHandler{
		store:       store,
		maxFileSize: maxFileSize,
	}
}

// HandleUpload handles POST /upload. Files arrive in the repeated "files"
// field; a single "file" field is accepted too.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to parse multipart form")
	}

	headers := make([]*multipart.FileHeader, 0, len(form.File["files"])+len(form.File["file"]))
	headers = append(headers, form.File["files"]...)
	headers = append(headers, form.File["file"]...)
	if len(headers) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "No files uploaded. Send one or more PDF, DOC or DOCX files in the 'files' field.")
	}

	resp := models.UploadResponse{
		Stored: []models.StoredFile{},
		Failed: []models.FailedFile{},
	}

	for _, fh := range headers {
		stored, err := h.storeFile(c.UserContext(), fh)
		if err != nil {
			logger.Log.WithField("filename", fh.Filename).WithError(err).Warn("⚠️ Upload rejected")
			resp.Failed = append(resp.Failed, models.FailedFile{
				OriginalName: fh.Filename,
				Reason:       err.Error(),
			})
			continue
		}
		resp.Stored = append(resp.Stored, stored)
	}

	resp.Count = len(resp.Stored)
	resp.Message = fmt.Sprintf("%d of %d file(s) uploaded successfully", resp.Count, len(headers))

	status := fiber.StatusCreated
	if resp.Count == 0 {
		status = fiber.StatusBadRequest
	}

	return c.Status(status).JSON(resp)
}

func (h *UploadHandler) storeFile(ctx context.Context, fh *multipart.FileHeader) (models.StoredFile, error) {
	if fh.Size > h.maxFileSize {
		return models.StoredFile{}, fmt.Errorf("file too large. Max size: %d bytes", h.maxFileSize)
	}

	_, ext, err := services.SplitUploadName(fh.Filename)
	if err != nil {
		return models.StoredFile{}, err
	}

	f, err := fh.Open()
	if err != nil {
		return models.StoredFile{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return models.StoredFile{}, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	detected := mimetype.Detect(data)
	if !contentMatches(detected, ext) {
		return models.StoredFile{}, fmt.Errorf("%w: content is %s, not %s", services.ErrUnsupportedFileType, detected.String(), ext)
	}

	filename, err := h.store.Save(ctx, fh.Filename, bytes.NewReader(data))
	if err != nil {
		return models.StoredFile{}, err
	}

	return models.StoredFile{
		Filename:     filename,
		OriginalName: fh.Filename,
		DetectedType: detected.String(),
	}, nil
}

// contentMatches walks up the detected type's hierarchy so that a document
// recognised as a more specific subtype still matches its container.
func contentMatches(detected *mimetype.MIME, ext string) bool {
	for m := detected; m != nil; m = m.Parent() {
		for _, accepted := range acceptedMIME[ext] {
			if m.Is(accepted) {
				return true
			}
		}
	}
	return false
}
