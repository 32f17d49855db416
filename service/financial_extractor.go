package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/finadvisor/findoc-ocr/dto"
	"github.com/finadvisor/findoc-ocr/utils"
)

// Generator is the generative-language client consumed by the extractor. It
// may fail or return junk; the extractor owns all JSON recovery.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// FinancialExtractor turns raw document text into an ExtractionResult. The
// AI path is best-effort: every failure mode degrades to the regex-based
// extractors, and Extract never returns an error.
type FinancialExtractor struct {
	generator Generator
}

// NewFinancialExtractor creates an extractor. A nil generator is valid and
// means every request takes the basic-analysis path.
func NewFinancialExtractor(generator Generator) *FinancialExtractor {
	return &FinancialExtractor{generator: generator}
}

// Extract runs one AI structured-extraction attempt over the text. Partial
// AI output is completed with computed defaults rather than rejected; a
// failed attempt falls back to heuristic extraction, visible only through
// the confidence label and the analysis summary.
func (e *FinancialExtractor) Extract(ctx context.Context, ocrText string) *dto.ExtractionResult {
	if e.generator == nil {
		return e.basicResult(ocrText, dto.ConfidenceBasic,
			"AI analysis not available. Using basic extraction.")
	}

	response, err := e.generator.Generate(ctx, buildExtractionPrompt(ocrText))
	if err != nil {
		return e.aiFailedResult(ocrText, err)
	}
	if strings.TrimSpace(response) == "" {
		return e.aiFailedResult(ocrText, fmt.Errorf("empty response from AI service"))
	}

	result, err := parseExtractionResult(extractJSONCandidate(response))
	if err != nil {
		return e.aiFailedResult(ocrText, err)
	}

	backfillResult(result, ocrText)
	return result
}

func (e *FinancialExtractor) aiFailedResult(ocrText string, cause error) *dto.ExtractionResult {
	return e.basicResult(ocrText, dto.ConfidenceBasicAIErr,
		fmt.Sprintf("AI analysis failed: %v. Using basic extraction.", cause))
}

func (e *FinancialExtractor) basicResult(ocrText, confidence, summary string) *dto.ExtractionResult {
	return &dto.ExtractionResult{
		DocumentType:   "Financial Document",
		WordCount:      utils.CountWords(ocrText),
		CharacterCount: len(ocrText),
		Confidence:     confidence,
		ExtractedText:  ocrText,
		Analysis:       utils.BasicAnalysis(ocrText, summary),
	}
}

// extractJSONCandidate returns the substring from the first '{' to the last
// '}' when both exist, since the model sometimes wraps its JSON in prose.
// Otherwise the full response is returned as-is.
func extractJSONCandidate(response string) string {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start >= 0 && end > start {
		return response[start : end+1]
	}
	return response
}

// parseExtractionResult decodes the candidate payload. Anything that is not
// a JSON object is a failure; missing fields are not. The object check is
// explicit because literals like null decode into the struct as a no-op.
func parseExtractionResult(payload string) (*dto.ExtractionResult, error) {
	if !strings.HasPrefix(strings.TrimSpace(payload), "{") {
		return nil, fmt.Errorf("invalid response structure from AI service: not a JSON object")
	}
	var result dto.ExtractionResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("invalid JSON response from AI service: %w", err)
	}
	return &result, nil
}

// backfillResult completes a partially populated result with computed
// defaults. Deliberate leniency: the model frequently drops the echo fields
// and the counters, and that is not worth discarding its analysis over.
func backfillResult(result *dto.ExtractionResult, ocrText string) {
	if result.Analysis == nil {
		result.Analysis = &dto.DocumentAnalysis{}
	}
	if result.Analysis.FinancialKeywords == nil {
		result.Analysis.FinancialKeywords = []string{}
	}
	if result.Analysis.PotentialAmounts == nil {
		result.Analysis.PotentialAmounts = []string{}
	}
	if result.Analysis.Dates == nil {
		result.Analysis.Dates = []string{}
	}
	if result.ExtractedText == "" {
		result.ExtractedText = ocrText
	}
	if result.DocumentType == "" {
		result.DocumentType = "Financial Document"
	}
	if result.WordCount == 0 {
		result.WordCount = utils.CountWords(ocrText)
	}
	if result.CharacterCount == 0 {
		result.CharacterCount = len(ocrText)
	}
	if result.Confidence == "" {
		result.Confidence = dto.ConfidenceMedium
	}
}

// buildExtractionPrompt embeds the raw text in a schema-constrained prompt.
// The model is told to emit only the JSON object; everything else is handled
// by the parse/backfill stages.
func buildExtractionPrompt(ocrText string) string {
	var b strings.Builder
	b.WriteString(`You are an expert financial document analyzer. Analyze the provided financial document text and extract comprehensive structured data.

CRITICAL INSTRUCTIONS:
1. Identify ALL financial information: every number, date and financial term.
2. Return ONLY a valid JSON object, no additional text or explanations.
3. If the text is unclear or incomplete, extract what you can and note the limitations in the summary.

REQUIRED JSON STRUCTURE:
{
  "documentType": "string (e.g. 'Bank Statement', 'Invoice', 'Receipt', 'Tax Document', 'Credit Card Statement', 'Investment Statement', 'Loan Document')",
  "wordCount": number,
  "characterCount": number,
  "confidence": "string (High/Medium/Low based on text clarity)",
  "extractedText": "string (the original OCR text)",
  "analysis": {
    "financialKeywords": ["all financial terms found"],
    "potentialAmounts": ["all monetary amounts found, including currency symbols"],
    "dates": ["all dates found in any format"],
    "lineCount": number,
    "summary": "detailed analysis summary with key findings",
    "accountInfo": {
      "accountNumber": "string (if found)",
      "accountHolder": "string (if found)",
      "institution": "string (if found)"
    },
    "transactions": [
      {"date": "string", "description": "string", "amount": "string", "type": "string (debit/credit/deposit/withdrawal)"}
    ],
    "totals": {
      "deposits": "string (if found)",
      "withdrawals": "string (if found)",
      "fees": "string (if found)",
      "interest": "string (if found)"
    }
  }
}

DOCUMENT TEXT TO ANALYZE:
`)
	b.WriteString(ocrText)
	b.WriteString(`

IMPORTANT: Return ONLY the JSON object and make sure it is valid and complete.`)
	return b.String()
}
