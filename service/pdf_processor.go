package service

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFProcessor extracts the text layer of a PDF. Scanned PDFs without a text
// layer come back empty; the acquirer decides what that means.
type PDFProcessor interface {
	ExtractText(pdfData []byte) (string, error)
	PageCount(pdfData []byte) (int, error)
}

type pdfProcessor struct {
	conf *model.Configuration
}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{conf: model.NewDefaultConfiguration()}
}

func (p *pdfProcessor) ExtractText(pdfData []byte) (string, error) {
	// Reject corrupt uploads before the reader sees them.
	if err := api.Validate(bytes.NewReader(pdfData), p.conf); err != nil {
		return "", fmt.Errorf("invalid PDF: %w", err)
	}

	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder bytes.Buffer
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, _ := page.GetTextByRow()
		for _, row := range rows {
			for _, word := range row.Content {
				textBuilder.WriteString(word.S)
			}
			textBuilder.WriteString("\n")
		}
	}
	return textBuilder.String(), nil
}

func (p *pdfProcessor) PageCount(pdfData []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(pdfData), p.conf)
	if err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return count, nil
}
