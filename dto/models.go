package dto

// Confidence labels attached to an ExtractionResult. The first three come
// from the AI model's own assessment; the rest mark which fallback path
// produced the result.
const (
	ConfidenceHigh       = "High"
	ConfidenceMedium     = "Medium"
	ConfidenceLow        = "Low"
	ConfidenceBasic      = "Basic Analysis"
	ConfidenceBasicAIErr = "Basic Analysis (AI Failed)"
	ConfidenceError      = "Error"
)

// RawText is extracted document text together with the strategy that
// produced it.
type RawText struct {
	Text       string
	Provenance string // "pdf-text", "ocr:<config-name>" or "qr-decode"
}

// AccountInfo holds account details the AI model located in the document.
type AccountInfo struct {
	AccountNumber string `json:"accountNumber,omitempty"`
	AccountHolder string `json:"accountHolder,omitempty"`
	Institution   string `json:"institution,omitempty"`
}

// Transaction is a single transaction row the AI model located.
type Transaction struct {
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	Amount      string `json:"amount,omitempty"`
	Type        string `json:"type,omitempty"` // debit/credit/deposit/withdrawal
}

// Totals holds aggregate figures the AI model located.
type Totals struct {
	Deposits    string `json:"deposits,omitempty"`
	Withdrawals string `json:"withdrawals,omitempty"`
	Fees        string `json:"fees,omitempty"`
	Interest    string `json:"interest,omitempty"`
}

// DocumentAnalysis is the analysis sub-record of an ExtractionResult. The
// keyword/amount/date lists and the summary are always populated; account
// info, transactions and totals appear only when the AI path succeeds.
type DocumentAnalysis struct {
	FinancialKeywords []string      `json:"financialKeywords"`
	PotentialAmounts  []string      `json:"potentialAmounts"`
	Dates             []string      `json:"dates"`
	LineCount         int           `json:"lineCount"`
	Summary           string        `json:"summary"`
	AccountInfo       *AccountInfo  `json:"accountInfo,omitempty"`
	Transactions      []Transaction `json:"transactions,omitempty"`
	Totals            *Totals       `json:"totals,omitempty"`
}

// ExtractionResult is the structured summary of a document's financial
// content. Analysis is always non-nil and ExtractedText always echoes the
// raw text the result was built from.
type ExtractionResult struct {
	DocumentType   string            `json:"documentType"`
	WordCount      int               `json:"wordCount"`
	CharacterCount int               `json:"characterCount"`
	Confidence     string            `json:"confidence"`
	ExtractedText  string            `json:"extractedText"`
	Analysis       *DocumentAnalysis `json:"analysis"`
}
