package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cvscreen/dreamteam/internal/models"
)

var ErrNotFound = errors.New("record not found")

type DocumentRepository interface {
	Upsert(ctx context.Context, document *models.StoredDocument) error
	ListFilenames(ctx context.Context) ([]string, error)
	FindByFilename(ctx context.Context, filename string) (*models.StoredDocument, error)
	DeleteByFilename(ctx context.Context, filename string) (bool, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Upsert implements DocumentRepository. Saving an existing filename replaces
// its content.
func (d *documentRepository) Upsert(ctx context.Context, document *models.StoredDocument) error {
	err := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "filename"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "size", "updated_at"}),
		}).
		Create(document).Error
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	return nil
}

// ListFilenames implements DocumentRepository.
func (d *documentRepository) ListFilenames(ctx context.Context) ([]string, error) {
	var names []string
	err := d.db.WithContext(ctx).
		Model(&models.StoredDocument{}).
		Order("created_at ASC, filename ASC").
		Pluck("filename", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return names, nil
}

// FindByFilename implements DocumentRepository.
func (d *documentRepository) FindByFilename(ctx context.Context, filename string) (*models.StoredDocument, error) {
	var doc models.StoredDocument
	if err := d.db.WithContext(ctx).Where("filename = ?", filename).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to find document: %w", err)
	}

	return &doc, nil
}

// DeleteByFilename implements DocumentRepository.
func (d *documentRepository) DeleteByFilename(ctx context.Context, filename string) (bool, error) {
	result := d.db.WithContext(ctx).Where("filename = ?", filename).Delete(&models.StoredDocument{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete document: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}
