package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Converter produces a PDF at dstPath from the Word document at srcPath.
// On error nothing is left at dstPath.
type Converter interface {
	ConvertToPDF(ctx context.Context, srcPath, dstPath string) error
}

type libreOfficeConverter struct {
	binary  string
	timeout time.Duration
}

// NewLibreOfficeConverter converts through a headless soffice process and
// validates the result with pdfcpu before accepting it.
func NewLibreOfficeConverter(binary string, timeout time.Duration) Converter {
	api.DisableConfigDir()

	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &libreOfficeConverter{
		binary:  binary,
		timeout: timeout,
	}
}

func (c *libreOfficeConverter) ConvertToPDF(ctx context.Context, srcPath, dstPath string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	outDir := filepath.Dir(dstPath)
	profileDir, err := os.MkdirTemp("", "soffice-profile-*")
	if err != nil {
		return fmt.Errorf("failed to create soffice profile directory: %w", err)
	}
	defer os.RemoveAll(profileDir)

	cmd := exec.CommandContext(ctx, c.binary,
		"-env:UserInstallation=file://"+filepath.ToSlash(profileDir),
		"--headless",
		"--convert-to", "pdf",
		"--outdir", outDir,
		srcPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("soffice timed out after %s", c.timeout)
		}
		return fmt.Errorf("soffice failed: %w: %s", err, strings.TrimSpace(string(output)))
	}

	produced := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))+".pdf")
	if _, err := os.Stat(produced); err != nil {
		return fmt.Errorf("soffice produced no PDF: %s", strings.TrimSpace(string(output)))
	}

	if err := validatePDF(produced); err != nil {
		os.Remove(produced)
		return err
	}

	if produced != dstPath {
		if err := os.Rename(produced, dstPath); err != nil {
			os.Remove(produced)
			return fmt.Errorf("failed to move converted PDF: %w", err)
		}
	}

	return nil
}

func validatePDF(path string) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.ValidateFile(path, conf); err != nil {
		return fmt.Errorf("converted file is not a valid PDF: %w", err)
	}

	return nil
}
