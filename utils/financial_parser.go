package utils

import (
	"regexp"
	"strings"

	"github.com/finadvisor/findoc-ocr/dto"
)

// financialVocabulary is the static keyword vocabulary scanned by
// ExtractFinancialKeywords. Declaration order is significant: matches are
// reported in this order, so the generic terms near the top win the cap.
var financialVocabulary = []string{
	// Basic financial terms
	"account", "balance", "amount", "total", "payment", "invoice", "receipt",
	"bank", "credit", "debit", "deposit", "withdrawal", "transaction",
	"date", "time", "reference", "number", "id", "customer", "client",

	// Document types
	"statement", "bill", "check", "draft", "note", "certificate",

	// Financial operations
	"fee", "charge", "interest", "loan", "mortgage", "tax",
	"income", "expense", "revenue", "profit", "loss", "budget", "investment",
	"savings", "checking", "credit card", "debit card", "cash",

	// Transaction types
	"transfer", "purchase", "sale", "refund", "disbursement",

	// Account information
	"account holder", "account number", "routing number", "swift code",
	"iban", "account type", "account status", "account balance",

	// Financial institutions
	"credit union", "financial institution", "lender", "broker",
	"investment firm", "insurance company", "credit card company",

	// Time and dates
	"due date", "maturity date", "issue date", "effective date",
	"transaction date", "posting date", "clearing date",

	// Amounts and calculations
	"principal", "rate", "term", "maturity", "amortization",
	"interest rate", "annual percentage rate", "apr", "finance charge",

	// Tax and legal
	"deduction", "exemption", "liability", "asset",
	"taxable", "non-taxable", "tax exempt", "tax deductible",

	// Investment terms
	"portfolio", "dividend", "capital gain", "capital loss",
	"market value", "book value", "face value", "par value",

	// Loan terms
	"installment", "balloon",
	"prepayment", "late fee", "penalty", "default", "foreclosure",
}

// amountPatterns are applied in order; all matches are concatenated in
// family order before deduplication.
var amountPatterns = []*regexp.Regexp{
	// Currency with symbols
	regexp.MustCompile(`[$€£¥₹]\s*\d{1,3}(?:,\d{3})*(?:\.\d{2})?`),
	// Negative amounts
	regexp.MustCompile(`-[$€£¥₹]?\s*\d{1,3}(?:,\d{3})*(?:\.\d{2})?`),
	// Amounts in parentheses (accounting negative)
	regexp.MustCompile(`\([$€£¥₹]?\s*\d{1,3}(?:,\d{3})*(?:\.\d{2})?\)`),
	// Percentages
	regexp.MustCompile(`\d+(?:\.\d+)?%`),
	// Thousands-grouped numbers without currency
	regexp.MustCompile(`\b\d{1,3}(?:,\d{3})+(?:\.\d{2})?\b`),
	// Plain decimal numbers
	regexp.MustCompile(`\b\d+\.\d{2}\b`),
}

var datePatterns = []*regexp.Regexp{
	// MM/DD/YYYY or MM-DD-YYYY
	regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
	// YYYY-MM-DD
	regexp.MustCompile(`\b\d{4}[/-]\d{1,2}[/-]\d{1,2}\b`),
	// DD/MM/YYYY
	regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{4}\b`),
	// Month names
	regexp.MustCompile(`(?i)\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}\b`),
	// Abbreviated months
	regexp.MustCompile(`(?i)\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{1,2},?\s+\d{4}\b`),
	// MM/DD/YY
	regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2}\b`),
}

const (
	maxKeywords = 20
	maxAmounts  = 15
	maxDates    = 10
)

// ExtractFinancialKeywords scans the vocabulary against the text
// case-insensitively and returns up to 20 matched terms in
// vocabulary-declaration order.
func ExtractFinancialKeywords(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0, maxKeywords)
	seen := make(map[string]bool)

	for _, keyword := range financialVocabulary {
		if len(found) == maxKeywords {
			break
		}
		if seen[keyword] {
			continue
		}
		if strings.Contains(lower, keyword) {
			seen[keyword] = true
			found = append(found, keyword)
		}
	}
	return found
}

// ExtractAmounts returns up to 15 monetary-amount strings found in the text,
// deduplicated preserving first-seen order across the pattern families.
func ExtractAmounts(text string) []string {
	return matchAll(text, amountPatterns, maxAmounts)
}

// ExtractDates returns up to 10 date strings found in the text, deduplicated
// preserving first-seen order across the pattern families.
func ExtractDates(text string) []string {
	return matchAll(text, datePatterns, maxDates)
}

// matchAll concatenates matches across patterns in declaration order, then
// deduplicates by string value and caps the result. Structurally different
// patterns may re-match the same substring; only the first occurrence is
// kept.
func matchAll(text string, patterns []*regexp.Regexp, limit int) []string {
	seen := make(map[string]bool)
	unique := make([]string, 0, limit)

	for _, pattern := range patterns {
		for _, m := range pattern.FindAllString(text, -1) {
			if seen[m] {
				continue
			}
			seen[m] = true
			unique = append(unique, m)
		}
	}

	if len(unique) > limit {
		unique = unique[:limit]
	}
	return unique
}

// BasicAnalysis builds a DocumentAnalysis from the heuristic extractors
// alone. Used both as the AI fallback and as the no-client path.
func BasicAnalysis(text, summary string) *dto.DocumentAnalysis {
	return &dto.DocumentAnalysis{
		FinancialKeywords: ExtractFinancialKeywords(text),
		PotentialAmounts:  ExtractAmounts(text),
		Dates:             ExtractDates(text),
		LineCount:         len(strings.Split(text, "\n")),
		Summary:           summary,
	}
}

// CountWords reports the whitespace-separated token count used for the
// wordCount field.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
