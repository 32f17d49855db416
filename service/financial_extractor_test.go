package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finadvisor/findoc-ocr/dto"
)

type fakeGenerator struct {
	response string
	err      error
	prompt   string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

const invoiceText = "Invoice dated 03/14/2024 for $1,250.00 balance due"

func TestExtractWithoutClientFallsBackToBasicAnalysis(t *testing.T) {
	extractor := NewFinancialExtractor(nil)

	result := extractor.Extract(context.Background(), invoiceText)

	assert.Equal(t, dto.ConfidenceBasic, result.Confidence)
	assert.Equal(t, "Financial Document", result.DocumentType)
	assert.Equal(t, invoiceText, result.ExtractedText)
	assert.NotNil(t, result.Analysis)
	assert.Equal(t, "AI analysis not available. Using basic extraction.", result.Analysis.Summary)
	assert.Contains(t, result.Analysis.FinancialKeywords, "invoice")
}

func TestExtractFallsBackWhenGeneratorFails(t *testing.T) {
	extractor := NewFinancialExtractor(&fakeGenerator{err: errors.New("service unreachable")})

	result := extractor.Extract(context.Background(), invoiceText)

	assert.Equal(t, dto.ConfidenceBasicAIErr, result.Confidence)
	assert.Contains(t, result.Analysis.Summary, "service unreachable")
	assert.NotEmpty(t, result.Analysis.FinancialKeywords)
	assert.NotEmpty(t, result.Analysis.PotentialAmounts)
	assert.Contains(t, result.Analysis.PotentialAmounts, "$1,250.00")
	assert.Contains(t, result.Analysis.Dates, "03/14/2024")
}

func TestExtractFallsBackOnEmptyResponse(t *testing.T) {
	extractor := NewFinancialExtractor(&fakeGenerator{response: "   "})

	result := extractor.Extract(context.Background(), invoiceText)

	assert.Equal(t, dto.ConfidenceBasicAIErr, result.Confidence)
	assert.Contains(t, result.Analysis.Summary, "empty response")
}

func TestExtractFallsBackOnUnparseableResponse(t *testing.T) {
	extractor := NewFinancialExtractor(&fakeGenerator{response: "I could not find any JSON here"})

	result := extractor.Extract(context.Background(), invoiceText)

	assert.Equal(t, dto.ConfidenceBasicAIErr, result.Confidence)
	assert.Contains(t, result.Analysis.Summary, "AI analysis failed")
}

func TestExtractParsesJSONEmbeddedInProse(t *testing.T) {
	extractor := NewFinancialExtractor(&fakeGenerator{
		response: `Here is the analysis you asked for:
{"documentType":"Invoice","confidence":"High","analysis":{"financialKeywords":["invoice"],"potentialAmounts":["$1,250.00"],"dates":["03/14/2024"],"lineCount":1,"summary":"An invoice for $1,250.00 due."}}
Hope this helps!`,
	})

	result := extractor.Extract(context.Background(), invoiceText)

	assert.Equal(t, "Invoice", result.DocumentType)
	assert.Equal(t, dto.ConfidenceHigh, result.Confidence)
	assert.Equal(t, []string{"invoice"}, result.Analysis.FinancialKeywords)
}

func TestExtractBackfillsMissingFields(t *testing.T) {
	extractor := NewFinancialExtractor(&fakeGenerator{response: `{"documentType":"Receipt"}`})

	result := extractor.Extract(context.Background(), invoiceText)

	assert.Equal(t, "Receipt", result.DocumentType)
	assert.Equal(t, dto.ConfidenceMedium, result.Confidence)
	assert.Equal(t, invoiceText, result.ExtractedText)
	assert.Equal(t, 7, result.WordCount)
	assert.Equal(t, len(invoiceText), result.CharacterCount)
	assert.NotNil(t, result.Analysis)
	assert.NotNil(t, result.Analysis.FinancialKeywords)
	assert.NotNil(t, result.Analysis.PotentialAmounts)
	assert.NotNil(t, result.Analysis.Dates)
}

func TestExtractAcceptsOptionalEnrichment(t *testing.T) {
	extractor := NewFinancialExtractor(&fakeGenerator{
		response: `{"documentType":"Bank Statement","analysis":{"summary":"ok summary text","accountInfo":{"accountNumber":"1234567890","institution":"HDFC Bank"},"transactions":[{"date":"03/14/2024","description":"SALARY","amount":"50,000.00","type":"credit"}],"totals":{"deposits":"50,000.00"}}}`,
	})

	result := extractor.Extract(context.Background(), invoiceText)

	assert.Equal(t, "1234567890", result.Analysis.AccountInfo.AccountNumber)
	assert.Len(t, result.Analysis.Transactions, 1)
	assert.Equal(t, "credit", result.Analysis.Transactions[0].Type)
	assert.Equal(t, "50,000.00", result.Analysis.Totals.Deposits)
}

func TestExtractPromptEmbedsTextAndSchema(t *testing.T) {
	gen := &fakeGenerator{response: `{"documentType":"Invoice"}`}
	extractor := NewFinancialExtractor(gen)

	extractor.Extract(context.Background(), invoiceText)

	assert.Contains(t, gen.prompt, invoiceText)
	assert.Contains(t, gen.prompt, `"financialKeywords"`)
	assert.Contains(t, gen.prompt, "ONLY a valid JSON object")
}

func TestExtractJSONCandidate(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSONCandidate(`prose {"a":1} trailing`))
	assert.Equal(t, `{"a":{"b":2}}`, extractJSONCandidate(`{"a":{"b":2}}`))
	assert.Equal(t, "no braces at all", extractJSONCandidate("no braces at all"))
}

func TestParseExtractionResultRejectsNonObjects(t *testing.T) {
	_, err := parseExtractionResult(`[1,2,3]`)
	assert.Error(t, err)

	_, err = parseExtractionResult(`"just a string"`)
	assert.Error(t, err)

	_, err = parseExtractionResult(`null`)
	assert.Error(t, err)

	_, err = parseExtractionResult(`  {"documentType":"Invoice"}`)
	assert.NoError(t, err)
}

func TestExtractFallsBackOnNullResponse(t *testing.T) {
	extractor := NewFinancialExtractor(&fakeGenerator{response: `null`})

	result := extractor.Extract(context.Background(), invoiceText)

	assert.Equal(t, dto.ConfidenceBasicAIErr, result.Confidence)
	assert.NotEmpty(t, result.Analysis.FinancialKeywords)
	assert.Contains(t, result.Analysis.PotentialAmounts, "$1,250.00")
}
