package service

import (
	"fmt"
	"os"
	"strings"

	"github.com/phuslu/log"

	"github.com/finadvisor/findoc-ocr/dto"
)

// OCRClient runs the OCR strategy chain over an image file and reports which
// strategy produced the text.
type OCRClient interface {
	ExtractText(filePath string) (text string, strategy string, err error)
}

// QRDecoder pulls a machine-encoded text payload off an image.
type QRDecoder interface {
	DecodeQR(filePath string) (string, error)
}

// imageMediaTypes is the raster allow-list for the OCR path.
var imageMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/webp": true,
}

// TextAcquirer routes a file to the extraction path matching its declared
// media type: PDFs get a single text-layer pass, images get the OCR retry
// chain with a QR decode as last resort.
type TextAcquirer struct {
	pdfProcessor PDFProcessor
	ocrClient    OCRClient
	qrDecoder    QRDecoder
}

func NewTextAcquirer(pdfProcessor PDFProcessor, ocrClient OCRClient, qrDecoder QRDecoder) *TextAcquirer {
	return &TextAcquirer{
		pdfProcessor: pdfProcessor,
		ocrClient:    ocrClient,
		qrDecoder:    qrDecoder,
	}
}

// AcquireText returns the raw text of the file at filePath together with its
// provenance. Unsupported media types fail immediately without any
// extraction attempt.
func (a *TextAcquirer) AcquireText(filePath, mediaType string) (dto.RawText, error) {
	switch {
	case mediaType == "application/pdf":
		return a.acquireFromPDF(filePath)
	case imageMediaTypes[mediaType]:
		return a.acquireFromImage(filePath)
	default:
		return dto.RawText{}, fmt.Errorf("%w: got %q", dto.ErrUnsupportedMediaType, mediaType)
	}
}

func (a *TextAcquirer) acquireFromPDF(filePath string) (dto.RawText, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return dto.RawText{}, fmt.Errorf("failed to read file: %w", err)
	}

	if pages, err := a.pdfProcessor.PageCount(data); err == nil {
		log.Debug().Int("pages", pages).Msg("extracting PDF text layer")
	}

	text, err := a.pdfProcessor.ExtractText(data)
	if err != nil {
		return dto.RawText{}, fmt.Errorf("PDF text extraction failed: %w", err)
	}
	// An empty text layer is a hard failure, not an empty success: callers
	// must be able to tell a scanned PDF from a processed one.
	if strings.TrimSpace(text) == "" {
		return dto.RawText{}, dto.ErrNoTextExtracted
	}

	return dto.RawText{Text: text, Provenance: "pdf-text"}, nil
}

func (a *TextAcquirer) acquireFromImage(filePath string) (dto.RawText, error) {
	text, strategy, err := a.ocrClient.ExtractText(filePath)
	if err == nil {
		return dto.RawText{Text: text, Provenance: "ocr:" + strategy}, nil
	}

	// OCR chain exhausted. A payment QR code may still carry readable text.
	if a.qrDecoder != nil {
		if payload, qrErr := a.qrDecoder.DecodeQR(filePath); qrErr == nil && strings.TrimSpace(payload) != "" {
			log.Info().Msg("OCR exhausted, recovered text from QR code")
			return dto.RawText{Text: payload, Provenance: "qr-decode"}, nil
		}
	}

	return dto.RawText{}, err
}
