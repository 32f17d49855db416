package utils

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFromInvoiceText(t *testing.T) {
	text := "Invoice dated 03/14/2024 for $1,250.00 balance due"

	keywords := ExtractFinancialKeywords(text)
	assert.Contains(t, keywords, "invoice")
	assert.Contains(t, keywords, "balance")

	amounts := ExtractAmounts(text)
	assert.Contains(t, amounts, "$1,250.00")

	dates := ExtractDates(text)
	assert.Contains(t, dates, "03/14/2024")
}

func TestExtractFinancialKeywordsDeclarationOrder(t *testing.T) {
	text := "Payment complete. Total balance on your account has grown."

	keywords := ExtractFinancialKeywords(text)

	// Order reflects the vocabulary declaration, not input position.
	assert.Equal(t, []string{"account", "balance", "total", "payment"}, keywords)
}

func TestExtractFinancialKeywordsCaseInsensitive(t *testing.T) {
	keywords := ExtractFinancialKeywords("INVOICE AND RECEIPT")
	assert.Contains(t, keywords, "invoice")
	assert.Contains(t, keywords, "receipt")
}

func TestExtractAmountsFamilies(t *testing.T) {
	text := "Charged $45.00, refunded -€30.00, adjusted ($12.50), fee 2.5%, total 1,000,000 paid 99.99"

	amounts := ExtractAmounts(text)

	assert.Contains(t, amounts, "$45.00")
	assert.Contains(t, amounts, "-€30.00")
	assert.Contains(t, amounts, "($12.50)")
	assert.Contains(t, amounts, "2.5%")
	assert.Contains(t, amounts, "1,000,000")
	assert.Contains(t, amounts, "99.99")
}

func TestExtractDatesFamilies(t *testing.T) {
	text := "Issued 01/15/2024, posted 2024-01-15, due January 20, 2024, cleared Jan 22, 2024, archived 3-4-99"

	dates := ExtractDates(text)

	assert.Contains(t, dates, "01/15/2024")
	assert.Contains(t, dates, "2024-01-15")
	assert.Contains(t, dates, "January 20, 2024")
	assert.Contains(t, dates, "Jan 22, 2024")
	assert.Contains(t, dates, "3-4-99")
}

func TestExtractionIsDeterministic(t *testing.T) {
	text := "Invoice 03/14/2024 $1,250.00 balance due, account 'interest' 5.25% Jan 3, 2021"

	for i := 0; i < 5; i++ {
		assert.Equal(t, ExtractFinancialKeywords(text), ExtractFinancialKeywords(text))
		assert.Equal(t, ExtractAmounts(text), ExtractAmounts(text))
		assert.Equal(t, ExtractDates(text), ExtractDates(text))
	}
}

func TestCandidateListCaps(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&b, "$%d.%02d on 0%d/1%d/202%d account balance total payment invoice receipt bank credit debit deposit withdrawal transaction statement fee charge interest loan mortgage tax income expense\n",
			100+i, i%100, i%9+1, i%9, i%10)
	}
	text := b.String()

	keywords := ExtractFinancialKeywords(text)
	amounts := ExtractAmounts(text)
	dates := ExtractDates(text)

	assert.LessOrEqual(t, len(keywords), 20)
	assert.LessOrEqual(t, len(amounts), 15)
	assert.LessOrEqual(t, len(dates), 10)

	assertNoDuplicates(t, keywords)
	assertNoDuplicates(t, amounts)
	assertNoDuplicates(t, dates)
}

func TestAmountDedupPreservesFirstSeenOrder(t *testing.T) {
	// $50.00 matches both the currency family and, via its digits, the
	// decimal family; dedup is by string value only.
	amounts := ExtractAmounts("paid $50.00 then again $50.00 and 50.00")

	count := 0
	for _, a := range amounts {
		if a == "$50.00" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Contains(t, amounts, "50.00")
}

func TestBasicAnalysis(t *testing.T) {
	analysis := BasicAnalysis("Invoice for $20.00\npaid 01/02/2023", "no AI")

	assert.Equal(t, 2, analysis.LineCount)
	assert.Equal(t, "no AI", analysis.Summary)
	assert.Contains(t, analysis.FinancialKeywords, "invoice")
	assert.Contains(t, analysis.PotentialAmounts, "$20.00")
	assert.Contains(t, analysis.Dates, "01/02/2023")
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 3, CountWords("  one  two   three "))
}

func assertNoDuplicates(t *testing.T, items []string) {
	t.Helper()
	seen := make(map[string]bool)
	for _, item := range items {
		assert.False(t, seen[item], "duplicate entry %q", item)
		seen[item] = true
	}
}
