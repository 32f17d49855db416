package dto

import "strings"

// ExtractTextRequest is the body of POST /documents/extract: pre-acquired
// OCR text to run through the extraction pipeline directly.
type ExtractTextRequest struct {
	OCRText string `json:"ocrText" binding:"required"`
}

// Validate performs basic validation on the request
func (r *ExtractTextRequest) Validate() error {
	if strings.TrimSpace(r.OCRText) == "" {
		return ErrNoTextProvided
	}
	return nil
}
