// Package extract reads plain text out of resume and job description files.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ErrUnsupportedFormat is returned for file extensions other than .pdf, .docx, .txt and .md.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// File reads path and extracts its text based on the extension.
func File(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %q: %w", path, err)
	}
	return Bytes(filepath.Base(path), data)
}

// Bytes extracts text from data; name is only used for its extension.
func Bytes(name string, data []byte) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".txt", ".md":
		return string(data), nil
	case ".pdf":
		return pdfText(data)
	case ".docx":
		return docxText(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func pdfText(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(pageText)
	}
	return b.String(), nil
}

var (
	paragraphEnd = regexp.MustCompile(`</w:p>|<w:br/>|<w:tab/>`)
	xmlTag       = regexp.MustCompile(`<[^>]*>`)
)

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	// GetContent returns the raw document XML.
	content := doc.Editable().GetContent()
	content = paragraphEnd.ReplaceAllStringFunc(content, func(tag string) string {
		if tag == "<w:tab/>" {
			return "\t"
		}
		return "\n"
	})
	content = xmlTag.ReplaceAllString(content, "")

	return strings.TrimSpace(html.UnescapeString(content)), nil
}
