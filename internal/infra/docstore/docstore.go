// Package docstore writes rendered quote documents to a local directory and
// hands back the URL path they are served under.
package docstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"obramat/go_backend/internal/domain/quote"
	"obramat/go_backend/internal/domain/quote/pdf"
)

type Store struct {
	dir     string
	baseURL string
	gen     pdf.Generator
}

func New(dir, baseURL string, gen pdf.Generator) *Store {
	return &Store{dir: dir, baseURL: baseURL, gen: gen}
}

// Render implements quote.Renderer.
func (s *Store) Render(ctx context.Context, p quote.PdfPayload) (string, error) {
	data, err := s.gen.Generate(p)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("cotizacion-%d-%d.pdf", p.QuoteID, time.Now().UnixNano())
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", err
	}
	return s.baseURL + "/" + name, nil
}

// Dir is the directory the HTTP layer serves under the base URL.
func (s *Store) Dir() string { return s.dir }
