package pdf

import "obramat/go_backend/internal/domain/quote"

type Generator interface {
	Generate(p quote.PdfPayload) ([]byte, error)
}
