package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cvscreen/dreamteam/internal/config"
	"cvscreen/dreamteam/internal/logger"
	"cvscreen/dreamteam/internal/services"
)

// import_cvs copies every PDF, DOC and DOCX under a directory into the
// configured document store, converting Word files on the way.
func main() {
	dir := flag.String("dir", "./cvs", "directory to import CVs from")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Server.Env, cfg.Server.LogLevel)
	log := logger.Log

	log.Infof("🚀 Importing CVs from %s", *dir)

	store, err := services.OpenDocumentStore(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize document store: %v", err)
	}
	pdfParser := services.NewPDFParserService(store)

	ctx := context.Background()
	successCount := 0
	failCount := 0

	err = filepath.WalkDir(*dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".pdf", ".doc", ".docx":
		default:
			return nil
		}

		entry := log.WithField("path", path)

		filename, err := importFile(ctx, store, path)
		if err != nil {
			entry.WithError(err).Error("❌ Import failed")
			failCount++
			return nil
		}

		content, err := pdfParser.ExtractTextWithMetaData(ctx, filename)
		if err != nil {
			entry.WithError(err).Warn("⚠️ Stored, but text could not be extracted")
		} else {
			entry = entry.WithField("pages", content.PageCount).WithField("characters", len(content.Text))
		}

		entry.WithField("filename", filename).Info("✅ Imported")
		successCount++
		return nil
	})
	if err != nil {
		log.Fatalf("❌ Failed to walk %s: %v", *dir, err)
	}

	log.Info(strings.Repeat("=", 60))
	log.Info("📊 Import Summary:")
	log.Infof("   ✅ Successful: %d documents", successCount)
	log.Infof("   ❌ Failed: %d documents", failCount)
	log.Info(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Warn("⚠️ Some documents failed to import. Please check the logs above.")
		os.Exit(1)
	}
}

func importFile(ctx context.Context, store services.DocumentStore, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return store.Save(ctx, filepath.Base(path), f)
}
