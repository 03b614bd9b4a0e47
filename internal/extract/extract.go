// Package extract derives plain text from uploaded document bytes so the
// assistant can use it as context.
package extract

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor pulls text out of supported file types. Plain text and
// markdown pass through whole, PDFs go through a text extractor, every
// other type yields no text.
type Extractor struct {
	logger *slog.Logger
}

// New creates an Extractor
func New(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract returns the text content of the file, or nil when the type
// carries no extractable text. A failed PDF extraction degrades to an
// empty string rather than failing the upload.
func (e *Extractor) Extract(mimeType string, data []byte) *string {
	switch {
	case strings.HasPrefix(mimeType, "text/plain"), strings.HasPrefix(mimeType, "text/markdown"):
		s := string(data)
		return &s
	case mimeType == "application/pdf":
		s := e.extractPDF(data)
		return &s
	default:
		return nil
	}
}

func (e *Extractor) extractPDF(data []byte) (text string) {
	// The pdf parser panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			if e.logger != nil {
				e.logger.Warn("pdf extraction panicked", "panic", r)
			}
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if e.logger != nil {
			e.logger.Warn("failed to parse pdf", "error", err)
		}
		return ""
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			if e.logger != nil {
				e.logger.Warn("failed to extract pdf page", "page", i, "error", err)
			}
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return strings.TrimSpace(sb.String())
}
