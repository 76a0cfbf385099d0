package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFParser_ConcatenatesPagesInOrder(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t, nil)
	_, err := store.Save(ctx, "multi.pdf", bytes.NewReader(buildPDF("First page text", "", "Third page text")))
	require.NoError(t, err)

	parser := NewPDFParserService(store)
	content, err := parser.ExtractTextWithMetaData(ctx, "multi.pdf")
	require.NoError(t, err)

	assert.Equal(t, 3, content.PageCount)
	first := strings.Index(content.Text, "First page text")
	third := strings.Index(content.Text, "Third page text")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, third)
	assert.Less(t, first, third)
	assert.Contains(t, content.Text[first:third], "\n\n")
	assert.True(t, strings.HasSuffix(content.Text, "\n\n"))
}

func TestPDFParser_EmptyPagesAreNotAnError(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t, nil)
	_, err := store.Save(ctx, "blank.pdf", bytes.NewReader(buildPDF("", "")))
	require.NoError(t, err)

	text, err := NewPDFParserService(store).ExtractText(ctx, "blank.pdf")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestPDFParser_MissingFile(t *testing.T) {
	store, _, _ := newTestStore(t, nil)

	_, err := NewPDFParserService(store).ExtractText(context.Background(), "ghost.pdf")
	require.ErrorIs(t, err, ErrDocumentNotFound)
	assert.Equal(t, "Error: no file named 'ghost.pdf' was found.", ExtractionMessage("ghost.pdf", err))
}

func TestPDFParser_CorruptFile(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t, nil)
	_, err := store.Save(ctx, "corrupt.pdf", bytes.NewReader([]byte("this is not a pdf at all")))
	require.NoError(t, err)

	_, err = NewPDFParserService(store).ExtractText(ctx, "corrupt.pdf")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(ExtractionMessage("corrupt.pdf", err), "An error occurred while processing the PDF"))
}
