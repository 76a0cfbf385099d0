package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// buildPDF renders a minimal PDF with one Helvetica text line per page. An
// empty string produces a page with an empty content stream.
func buildPDF(pages ...string) []byte {
	var objs []string
	var kids []string
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+2*i))
	}

	objs = append(objs, "<< /Type /Catalog /Pages 2 0 R >>")
	objs = append(objs, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	objs = append(objs, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for i, text := range pages {
		stream := ""
		if text != "" {
			stream = fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		}
		objs = append(objs, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			5+2*i))
		objs = append(objs, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)

	return buf.Bytes()
}

type stubConverter struct {
	content []byte
	err     error
	partial bool
	calls   int
}

func (c *stubConverter) ConvertToPDF(ctx context.Context, srcPath, dstPath string) error {
	c.calls++
	if c.partial {
		if err := os.WriteFile(dstPath, []byte("%PDF-1.4 partial"), 0644); err != nil {
			return err
		}
	}
	if c.err != nil {
		return c.err
	}
	return os.WriteFile(dstPath, c.content, 0644)
}

type stubLLM struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []Prompt
}

func (s *stubLLM) Name() string { return "stub" }

func (s *stubLLM) GenerateJSON(ctx context.Context, prompt Prompt) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func (s *stubLLM) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

// memoryStore is an in-memory DocumentStore that lists in insertion order.
type memoryStore struct {
	mu    sync.Mutex
	order []string
	docs  map[string][]byte
	err   error
}

func newMemoryStore(names ...string) *memoryStore {
	s := &memoryStore{docs: map[string][]byte{}}
	for _, n := range names {
		s.order = append(s.order, n)
		s.docs[n] = []byte(n)
	}
	return s
}

func (s *memoryStore) EnsureReady() error { return nil }

func (s *memoryStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	return "", errors.New("not supported")
}

func (s *memoryStore) List(ctx context.Context) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.order...), nil
}

func (s *memoryStore) Read(ctx context.Context, filename string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.docs[filename]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return data, nil
}

func (s *memoryStore) Delete(ctx context.Context, filename string) (bool, error) {
	return false, errors.New("not supported")
}
