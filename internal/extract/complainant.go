package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dharma-project/fir-extractor/internal/domain"
)

// Complainant cue patterns. Each sub-pattern is independently optional and
// the first match wins; FIR boilerplate introduces the complainant exactly
// once, so no repetition handling is needed.
var (
	complainantNamePattern = regexp.MustCompile(`(?i)complainant\s+([A-Za-z][A-Za-z\s]+)`)
	fatherPattern          = regexp.MustCompile(`(?i)S/o\s+([A-Za-z][A-Za-z\s]+)`)
	agePattern             = regexp.MustCompile(`(?i)aged\s+(\d+)`)
	communityPattern       = regexp.MustCompile(`(?i)(Scheduled\s+Caste|Scheduled\s+Tribe|Backward\s+Class)`)
	occupationPattern      = regexp.MustCompile(`(?i)occupation[:\s]*([A-Za-z\s]+)`)
	addressPattern         = regexp.MustCompile(`(?i)resident\s+of\s+([A-Za-z\s,]+)`)
)

// extractComplainant scans the text for the complainant cue phrases and
// returns whatever subset matched. An all-empty result is valid.
func extractComplainant(text string) domain.ComplainantInfo {
	var info domain.ComplainantInfo

	if m := complainantNamePattern.FindStringSubmatch(text); m != nil {
		info.Name = strings.TrimSpace(m[1])
	}
	if m := fatherPattern.FindStringSubmatch(text); m != nil {
		info.Father = strings.TrimSpace(m[1])
	}
	if m := agePattern.FindStringSubmatch(text); m != nil {
		if age, err := strconv.Atoi(m[1]); err == nil {
			info.Age = age
		}
	}
	if m := communityPattern.FindStringSubmatch(text); m != nil {
		info.Community = strings.TrimSpace(m[1])
	}
	if m := occupationPattern.FindStringSubmatch(text); m != nil {
		info.Occupation = strings.TrimSpace(m[1])
	}
	if m := addressPattern.FindStringSubmatch(text); m != nil {
		info.Address = strings.TrimSpace(m[1])
	}

	return info
}
