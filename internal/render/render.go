// Package render writes analysis results to .docx or .pdf files.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ziadkadry99/tailor4job/internal/docx"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format: please use .docx or .pdf")
	ErrContentType       = errors.New("content must be a string, not nil")
	ErrUnsupportedEngine = errors.New("unsupported pdf engine")
)

// Format is an output document format.
type Format string

const (
	FormatDocx Format = "docx"
	FormatPDF  Format = "pdf"
)

// PDF engine names.
const (
	EngineText   = "text"
	EngineChrome = "chrome"
)

// DetectFormat infers the output format from the file extension. Matching is
// case-sensitive: "report.PDF" is rejected.
func DetectFormat(path string) (Format, error) {
	switch filepath.Ext(path) {
	case ".docx":
		return FormatDocx, nil
	case ".pdf":
		return FormatPDF, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Options configures a Renderer.
type Options struct {
	// PDFEngine is EngineText (default) or EngineChrome.
	PDFEngine string
	// Markdown renders content as markdown before building the HTML document
	// handed to the chrome engine.
	Markdown bool
	// ChromePath overrides the browser binary used by the chrome engine.
	ChromePath string
}

// pdfEngine converts content to PDF bytes.
type pdfEngine interface {
	writePDF(ctx context.Context, content string, buf *bytes.Buffer) error
}

// Renderer writes content to an output file whose format is chosen by extension.
type Renderer struct {
	opts   Options
	pdf    pdfEngine
	logger *zap.Logger
}

// New creates a Renderer. An empty engine name selects EngineText.
func New(opts Options, logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("render")

	r := &Renderer{opts: opts, logger: logger}
	switch opts.PDFEngine {
	case "", EngineText:
		r.pdf = textEngine{}
	case EngineChrome:
		r.pdf = chromeEngine{execPath: opts.ChromePath, markdown: opts.Markdown, logger: logger}
	default:
		return nil, fmt.Errorf("%w %q: must be %s or %s", ErrUnsupportedEngine, opts.PDFEngine, EngineText, EngineChrome)
	}
	return r, nil
}

// Render writes content to outputPath, creating parent directories as needed.
// The format check runs first so an unsupported extension is reported even
// when content is nil.
func (r *Renderer) Render(ctx context.Context, content *string, outputPath string) error {
	format, err := DetectFormat(outputPath)
	if err != nil {
		return err
	}
	if content == nil {
		return ErrContentType
	}

	var buf bytes.Buffer
	if format == FormatPDF {
		if err := r.pdf.writePDF(ctx, *content, &buf); err != nil {
			return fmt.Errorf("rendering %s: %w", outputPath, err)
		}
	}

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	switch format {
	case FormatDocx:
		if err := docx.Save(outputPath, *content); err != nil {
			return fmt.Errorf("rendering %s: %w", outputPath, err)
		}
	case FormatPDF:
		if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outputPath, err)
		}
	}

	r.logger.Debug("output written",
		zap.String("path", outputPath),
		zap.String("format", string(format)),
	)
	return nil
}
