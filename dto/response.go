package dto

// ExtractionResponse is the final response structure for both the upload and
// the extract-from-text endpoints. The shape is identical on success and
// failure; Error and Details are set only on failure.
type ExtractionResponse struct {
	JSON    *ExtractionResult `json:"json"`
	Summary string            `json:"summary"`
	Error   string            `json:"error,omitempty"`
	Details string            `json:"details,omitempty"`
}

// ErrorResponse represents a simple error response for request-level
// validation failures, before the pipeline runs.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResult builds the ExtractionResult-shaped payload returned when the
// pipeline fails before any text was acquired: documentType "Error", zeroed
// counts, empty candidate lists.
func NewErrorResult(summary string) *ExtractionResult {
	return &ExtractionResult{
		DocumentType:   "Error",
		WordCount:      0,
		CharacterCount: 0,
		Confidence:     ConfidenceError,
		ExtractedText:  "",
		Analysis: &DocumentAnalysis{
			FinancialKeywords: []string{},
			PotentialAmounts:  []string{},
			Dates:             []string{},
			LineCount:         0,
			Summary:           summary,
		},
	}
}
