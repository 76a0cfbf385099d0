package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cvscreen/dreamteam/internal/logger"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrInvalidFilename     = errors.New("invalid filename")
	ErrDocumentNotFound    = errors.New("document not found")
)

// DocumentStore persists uploaded CVs, always normalized to PDF. Filenames
// are the only identifiers.
type DocumentStore interface {
	// Save normalizes the upload to PDF and returns the stored filename.
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	List(ctx context.Context) ([]string, error)
	Read(ctx context.Context, filename string) ([]byte, error)
	// Delete reports whether a document was removed. Missing documents are
	// not an error.
	Delete(ctx context.Context, filename string) (bool, error)
	EnsureReady() error
}

type storageService struct {
	uploadPath string
	normalizer *PDFNormalizer
}

// NewStorageService returns a DocumentStore backed by a flat directory.
func NewStorageService(uploadPath string, normalizer *PDFNormalizer) DocumentStore {
	return &storageService{
		uploadPath: uploadPath,
		normalizer: normalizer,
	}
}

func (s *storageService) EnsureReady() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

func (s *storageService) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	filename, content, err := s.normalizer.Normalize(ctx, name, r)
	if err != nil {
		return "", err
	}

	if err := s.EnsureReady(); err != nil {
		return "", err
	}

	// Write under a hidden name first so a failed write never shows up in List.
	tmp, err := os.CreateTemp(s.uploadPath, ".upload-*.part")
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	if err := os.Rename(tmpPath, s.GetFilePath(filename)); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to move file into place: %w", err)
	}

	logger.Log.WithField("filename", filename).Info("📄 Document stored")
	return filename, nil
}

func (s *storageService) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.uploadPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read upload directory: %w", err)
	}

	files := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			files = append(files, entry.Name())
		}
	}

	return files, nil
}

func (s *storageService) Read(ctx context.Context, filename string) ([]byte, error) {
	if err := ValidateStoredName(filename); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.GetFilePath(filename))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return data, nil
}

func (s *storageService) Delete(ctx context.Context, filename string) (bool, error) {
	if err := ValidateStoredName(filename); err != nil {
		return false, err
	}

	if err := os.Remove(s.GetFilePath(filename)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Log.WithField("filename", filename).Info("🗑️ Document deleted")
	return true, nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filename)
}

// ValidateStoredName accepts only plain base names, so Read and Delete can
// never reach outside the store.
func ValidateStoredName(filename string) error {
	if filename == "" || filename == "." || filename == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}
	if strings.ContainsAny(filename, `/\`) || strings.ContainsRune(filename, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}
	return nil
}
