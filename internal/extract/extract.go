// ABOUTME: Document text extraction for uploaded files
// ABOUTME: PDF and DOCX are parsed; anything else is decoded as UTF-8
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gonfva/docxlib"
	"github.com/ledongthuc/pdf"
)

// ErrUnreadableDocument wraps every parse failure so callers can report it
// to the user without inspecting library errors.
var ErrUnreadableDocument = errors.New("document could not be read")

// Kind identifies how a document is parsed
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
	KindText Kind = "text"
)

// KindOf picks the parser from the filename extension (case-insensitive)
func KindOf(filename string) Kind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return KindPDF
	case ".docx":
		return KindDOCX
	default:
		return KindText
	}
}

// Extract returns the plain text of an uploaded file. A parse failure
// returns ErrUnreadableDocument and no partial text.
func Extract(filename string, data []byte) (string, error) {
	switch KindOf(filename) {
	case KindPDF:
		return extractPDF(data)
	case KindDOCX:
		return extractDOCX(data)
	default:
		return strings.ToValidUTF8(string(data), ""), nil
	}
}

// Combine joins typed form text with extracted upload text
func Combine(formText, uploaded string) string {
	if uploaded == "" {
		return strings.TrimSpace(formText)
	}
	return strings.TrimSpace(formText + "\n\n" + uploaded)
}

func extractPDF(data []byte) (text string, err error) {
	// The PDF parser panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: pdf: %v", ErrUnreadableDocument, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: pdf: %v", ErrUnreadableDocument, err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: pdf page %d: %v", ErrUnreadableDocument, i, err)
		}
		sb.WriteString(pageText)
	}
	return sb.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docxlib.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: docx: %v", ErrUnreadableDocument, err)
	}

	var lines []string
	for _, para := range doc.Paragraphs() {
		var sb strings.Builder
		for _, child := range para.Children() {
			if child.Run != nil && child.Run.Text != nil {
				sb.WriteString(child.Run.Text.Text)
			}
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n"), nil
}
