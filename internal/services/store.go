package services

import (
	"fmt"
	"os/exec"

	"cvscreen/dreamteam/internal/config"
	"cvscreen/dreamteam/internal/logger"
	"cvscreen/dreamteam/internal/repositories"
)

// OpenDocumentStore builds the document store selected by
// cfg.Storage.Backend and makes sure it is ready to accept uploads. When the
// soffice binary cannot be found Word uploads are rejected.
func OpenDocumentStore(cfg *config.Config) (DocumentStore, error) {
	var converter Converter
	if _, err := exec.LookPath(cfg.Storage.SofficePath); err != nil {
		logger.Log.WithField("soffice", cfg.Storage.SofficePath).
			Warn("⚠️ LibreOffice not found, DOC/DOCX uploads will be rejected")
	} else {
		converter = NewLibreOfficeConverter(cfg.Storage.SofficePath, cfg.Storage.ConvertTimeout)
	}
	normalizer := NewPDFNormalizer(converter, "")

	var store DocumentStore
	switch cfg.Storage.Backend {
	case config.StorageBackendPostgres:
		db, err := config.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		store = NewDatabaseStore(repositories.NewDocumentRepository(db), normalizer)
	default:
		store = NewStorageService(cfg.Storage.UploadPath, normalizer)
	}

	if err := store.EnsureReady(); err != nil {
		return nil, fmt.Errorf("document store not ready: %w", err)
	}

	return store, nil
}
