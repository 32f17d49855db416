package service

import (
	"context"
	"os"
	"time"

	"github.com/phuslu/log"

	"github.com/finadvisor/findoc-ocr/dto"
	"github.com/finadvisor/findoc-ocr/utils"
)

// RawTextAcquirer is the document-to-text stage of the pipeline.
type RawTextAcquirer interface {
	AcquireText(filePath, mediaType string) (dto.RawText, error)
}

// DocumentService wires acquisition, extraction and summary formatting into
// the two public pipeline operations. It owns the temp-file lifecycle and
// the uniform response contract: callers always get a well-formed
// ExtractionResponse, whichever stage failed.
type DocumentService struct {
	acquirer  RawTextAcquirer
	extractor *FinancialExtractor

	// removeFile is os.Remove outside of tests.
	removeFile func(path string) error
}

func NewDocumentService(acquirer RawTextAcquirer, extractor *FinancialExtractor) *DocumentService {
	return &DocumentService{
		acquirer:   acquirer,
		extractor:  extractor,
		removeFile: os.Remove,
	}
}

// ProcessUpload runs the full pipeline over an uploaded file. The temp file
// is deleted on every exit path. An acquisition failure is terminal: the
// returned error signals it, but the response is still populated with the
// error-shaped result so the body contract holds.
func (s *DocumentService) ProcessUpload(ctx context.Context, filePath, mediaType string) (*dto.ExtractionResponse, error) {
	defer s.cleanup(filePath)

	started := time.Now()
	raw, err := s.acquirer.AcquireText(filePath, mediaType)
	if err != nil {
		log.Error().Err(err).Str("media_type", mediaType).Msg("raw text acquisition failed")
		return errorResponse("Upload failed", err, "Document processing failed"), err
	}

	log.Info().
		Str("provenance", raw.Provenance).
		Int("text_length", len(raw.Text)).
		Dur("duration", time.Since(started)).
		Msg("raw text acquired")

	return s.respond(ctx, raw.Text), nil
}

// ProcessText runs the pipeline over caller-provided text, skipping
// acquisition.
func (s *DocumentService) ProcessText(ctx context.Context, rawText string) *dto.ExtractionResponse {
	return s.respond(ctx, rawText)
}

func (s *DocumentService) respond(ctx context.Context, rawText string) *dto.ExtractionResponse {
	result := s.extractor.Extract(ctx, rawText)

	log.Info().
		Str("document_type", result.DocumentType).
		Str("confidence", result.Confidence).
		Int("word_count", result.WordCount).
		Msg("financial extraction completed")

	return &dto.ExtractionResponse{
		JSON:    result,
		Summary: utils.FormatSummaryBullets(result.Analysis.Summary, result.WordCount, result.Analysis),
	}
}

func (s *DocumentService) cleanup(filePath string) {
	if err := s.removeFile(filePath); err != nil {
		// Never surfaced: a leaked temp file must not mask the response.
		log.Warn().Err(err).Str("path", filePath).Msg("temp file cleanup failed")
	}
}

func errorResponse(message string, cause error, summary string) *dto.ExtractionResponse {
	return &dto.ExtractionResponse{
		JSON:    dto.NewErrorResult(summary),
		Summary: utils.FormatSummaryBullets(summary, 0, nil),
		Error:   message,
		Details: cause.Error(),
	}
}
