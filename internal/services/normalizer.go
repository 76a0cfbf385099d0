package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"

	"cvscreen/dreamteam/internal/logger"
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// windowsDeviceNames are reserved on Windows whatever their extension.
var windowsDeviceNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// SanitizeFilename reduces an uploaded name to a safe ASCII base name:
// accents are folded, path separators become spaces, whitespace runs become
// underscores and every other character outside [A-Za-z0-9_.-] is dropped.
// Windows device names get a leading underscore.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}

	cleaned := strings.NewReplacer("/", " ", `\`, " ").Replace(b.String())
	cleaned = strings.Join(strings.Fields(cleaned), "_")
	cleaned = unsafeFilenameChars.ReplaceAllString(cleaned, "")
	cleaned = strings.Trim(cleaned, "._")

	if stem, _, _ := strings.Cut(cleaned, "."); windowsDeviceNames[strings.ToUpper(stem)] {
		cleaned = "_" + cleaned
	}

	return cleaned
}

// SplitUploadName sanitizes name and splits it into base name and lowercase
// extension. The extension must be one the store accepts.
func SplitUploadName(name string) (base, ext string, err error) {
	safe := SanitizeFilename(name)
	ext = strings.ToLower(filepath.Ext(safe))
	base = strings.TrimSuffix(safe, filepath.Ext(safe))

	if !allowedExtensions[ext] {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, filepath.Ext(safe))
	}
	if base == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}

	return base, ext, nil
}

// PDFNormalizer turns an upload into PDF bytes. Word documents go through the
// converter inside a private scratch directory that is always removed.
type PDFNormalizer struct {
	converter  Converter
	scratchDir string
}

// NewPDFNormalizer creates a normalizer. An empty scratchDir means the
// system temp directory. A nil converter rejects every Word upload.
func NewPDFNormalizer(converter Converter, scratchDir string) *PDFNormalizer {
	return &PDFNormalizer{
		converter:  converter,
		scratchDir: scratchDir,
	}
}

func (n *PDFNormalizer) Normalize(ctx context.Context, name string, r io.Reader) (string, []byte, error) {
	base, ext, err := SplitUploadName(name)
	if err != nil {
		return "", nil, err
	}
	filename := base + ".pdf"

	if ext == ".pdf" {
		content, err := io.ReadAll(r)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read uploaded file: %w", err)
		}
		UploadsNormalized.WithLabelValues("pdf").Inc()
		return filename, content, nil
	}

	if n.converter == nil {
		return "", nil, fmt.Errorf("no document converter configured for %s files", ext)
	}

	scratch, err := os.MkdirTemp(n.scratchDir, "convert-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	srcPath := filepath.Join(scratch, base+ext)
	dstPath := filepath.Join(scratch, filename)

	if err := writeFile(srcPath, r); err != nil {
		return "", nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"source": base + ext,
		"target": filename,
	}).Info("🔄 Converting Word document to PDF")

	if err := n.converter.ConvertToPDF(ctx, srcPath, dstPath); err != nil {
		return "", nil, fmt.Errorf("failed to convert %s to PDF: %w", base+ext, err)
	}

	content, err := os.ReadFile(dstPath)
	if err != nil {
		return "", nil, fmt.Errorf("converted PDF not readable: %w", err)
	}

	UploadsNormalized.WithLabelValues(strings.TrimPrefix(ext, ".")).Inc()
	return filename, content, nil
}

func writeFile(path string, r io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	return dst.Close()
}
