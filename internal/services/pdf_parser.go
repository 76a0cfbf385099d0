package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"cvscreen/dreamteam/internal/logger"
)

type PDFParserService interface {
	ExtractText(ctx context.Context, filename string) (string, error)
	ExtractTextWithMetaData(ctx context.Context, filename string) (*PDFContent, error)
}

type PDFContent struct {
	Text      string
	PageCount int
	Filename  string
}

type pdfParserService struct {
	store DocumentStore
}

func NewPDFParserService(store DocumentStore) PDFParserService {
	return &pdfParserService{store: store}
}

// ExtractText returns the text of every page in order, each non-empty page
// followed by a blank line. Pages without text contribute nothing.
func (p *pdfParserService) ExtractText(ctx context.Context, filename string) (string, error) {
	content, err := p.ExtractTextWithMetaData(ctx, filename)
	if err != nil {
		return "", err
	}

	return content.Text, nil
}

func (p *pdfParserService) ExtractTextWithMetaData(ctx context.Context, filename string) (*PDFContent, error) {
	data, err := p.store.Read(ctx, filename)
	if err != nil {
		return nil, err
	}

	text, pages, err := extractPages(filename, data)
	if err != nil {
		return nil, err
	}

	return &PDFContent{
		Text:      text,
		PageCount: pages,
		Filename:  filename,
	}, nil
}

func extractPages(filename string, data []byte) (text string, pageCount int, err error) {
	// The pdf package panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			text, pageCount = "", 0
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			logger.Log.WithError(err).WithField("filename", filename).
				Warnf("Skipping unreadable page %d", pageIndex)
			continue
		}
		if pageText == "" {
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), totalPage, nil
}

// ExtractionMessage renders an extraction failure as the descriptive text
// shown in place of a CV's content.
func ExtractionMessage(filename string, err error) string {
	if errors.Is(err, ErrDocumentNotFound) {
		return fmt.Sprintf("Error: no file named '%s' was found.", filename)
	}
	return fmt.Sprintf("An error occurred while processing the PDF: %v", err)
}
