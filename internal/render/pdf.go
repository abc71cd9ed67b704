package render

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/sfnt"
)

const (
	pdfFontFamily = "dejavu"
	pdfFontSize   = 11
	pdfLineHeight = 5.5
	pdfMargin     = 20
	pdfTabWidth   = 4
)

// ErrMissingGlyph is returned by the text engine for characters the embedded
// font cannot draw.
var ErrMissingGlyph = errors.New("text pdf engine has no glyph for character")

//go:embed fonts/DejaVuSansCondensed.ttf
var dejaVuSans []byte

var parsedFont = sync.OnceValues(func() (*sfnt.Font, error) {
	return sfnt.Parse(dejaVuSans)
})

// textEngine lays content out as wrapped text in an embedded Unicode font.
type textEngine struct{}

func (textEngine) writePDF(_ context.Context, content string, buf *bytes.Buffer) error {
	content = normalizeText(content)
	if err := checkGlyphs(content); err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "", dejaVuSans)
	pdf.SetFont(pdfFontFamily, "", pdfFontSize)
	pdf.AddPage()

	if content != "" {
		pdf.MultiCell(0, pdfLineHeight, content, "", "L", false)
	}
	return pdf.Output(buf)
}

// normalizeText expands tabs and strips control characters other than
// newlines, none of which have glyphs.
func normalizeText(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\t", strings.Repeat(" ", pdfTabWidth))
	return strings.Map(func(r rune) rune {
		if r != '\n' && unicode.IsControl(r) {
			return -1
		}
		return r
	}, content)
}

// checkGlyphs fails on the first rune the embedded font lacks. Runes outside
// the Basic Multilingual Plane are rejected too since the PDF writer encodes
// text as UCS-2.
func checkGlyphs(content string) error {
	font, err := parsedFont()
	if err != nil {
		return fmt.Errorf("parsing embedded font: %w", err)
	}

	var b sfnt.Buffer
	checked := make(map[rune]bool)
	for _, r := range content {
		if r == '\n' || checked[r] {
			continue
		}
		checked[r] = true

		idx, err := font.GlyphIndex(&b, r)
		if err != nil {
			return fmt.Errorf("looking up glyph for %q: %w", r, err)
		}
		if idx == 0 || r > 0xFFFF {
			return fmt.Errorf("%w %q (U+%04X); set pdf_engine = %q to render it", ErrMissingGlyph, r, r, EngineChrome)
		}
	}
	return nil
}
