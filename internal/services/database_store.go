package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"cvscreen/dreamteam/internal/logger"
	"cvscreen/dreamteam/internal/models"
	"cvscreen/dreamteam/internal/repositories"
)

type databaseStore struct {
	repo       repositories.DocumentRepository
	normalizer *PDFNormalizer
}

// NewDatabaseStore returns a DocumentStore that keeps PDF bytes in postgres
// instead of a directory.
func NewDatabaseStore(repo repositories.DocumentRepository, normalizer *PDFNormalizer) DocumentStore {
	return &databaseStore{
		repo:       repo,
		normalizer: normalizer,
	}
}

func (s *databaseStore) EnsureReady() error {
	return nil
}

func (s *databaseStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	filename, content, err := s.normalizer.Normalize(ctx, name, r)
	if err != nil {
		return "", err
	}

	now := time.Now()
	doc := &models.StoredDocument{
		Filename:  filename,
		Content:   content,
		Size:      int64(len(content)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Upsert(ctx, doc); err != nil {
		return "", err
	}

	logger.Log.WithField("filename", filename).Info("📄 Document stored")
	return filename, nil
}

func (s *databaseStore) List(ctx context.Context) ([]string, error) {
	names, err := s.repo.ListFilenames(ctx)
	if err != nil {
		return nil, err
	}

	files := []string{}
	for _, name := range names {
		if strings.HasSuffix(strings.ToLower(name), ".pdf") {
			files = append(files, name)
		}
	}

	return files, nil
}

func (s *databaseStore) Read(ctx context.Context, filename string) ([]byte, error) {
	if err := ValidateStoredName(filename); err != nil {
		return nil, err
	}

	doc, err := s.repo.FindByFilename(ctx, filename)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	return doc.Content, nil
}

func (s *databaseStore) Delete(ctx context.Context, filename string) (bool, error) {
	if err := ValidateStoredName(filename); err != nil {
		return false, err
	}

	return s.repo.DeleteByFilename(ctx, filename)
}
