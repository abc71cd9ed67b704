// Package docx reads and writes plain paragraphs of text in Office Open XML
// word-processing packages.
package docx

import (
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
)

const (
	wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	documentPart  = "word/document.xml"
)

// Save writes paragraphs to a new .docx file at path. Newlines inside a
// paragraph become line breaks.
func Save(path string, paragraphs ...string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("creating docx: %w", err)
	}

	for _, text := range paragraphs {
		p := doc.AddParagraph("")
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			run := p.AddText(line)
			if i < len(lines)-1 {
				run.AddBreak(nil)
			}
		}
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("saving docx %s: %w", path, err)
	}
	return nil
}
