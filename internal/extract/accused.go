package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dharma-project/fir-extractor/internal/domain"
)

// accusedBlockPattern matches one named accused: "<Name>, aged about <n>",
// with lazily-separated optional relation and address spans. The lazy
// separators mean the optional spans bind only when they follow
// immediately; entries in irregular order are best effort, not guaranteed.
var accusedBlockPattern = regexp.MustCompile(
	`(?i)([A-Za-z][A-Za-z\s]+),\s*aged\s*about\s*(\d+)` +
		`(?:.*?S/o\s*([A-Za-z\s]+))?` +
		`(?:.*?resident\s*of\s*([A-Za-z\s]+))?`)

// unknownDescriptionPattern finds a physical-description cue following an
// unknown-assailant reference. The cue set is closed.
var unknownDescriptionPattern = regexp.MustCompile(
	`(?i)unknown person.*?(medium build|black shirt|fair|dark)`)

// extractAccused returns the named accused in text order, then the
// unknown-assailant sentinel if the text refers to one. hasUnknown is the
// keyword-layer flag for the literal token "unknown".
func extractAccused(text string, hasUnknown bool) []domain.AccusedEntry {
	accused := []domain.AccusedEntry{}

	for _, m := range accusedBlockPattern.FindAllStringSubmatch(text, -1) {
		age, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		entry := domain.AccusedEntry{
			Name: strings.TrimSpace(m[1]),
			Age:  age,
		}
		if m[3] != "" {
			entry.Relation = "S/o " + strings.TrimSpace(m[3])
		}
		if m[4] != "" {
			entry.Address = strings.TrimSpace(m[4])
		}
		accused = append(accused, entry)
	}

	if hasUnknown {
		desc := domain.UnknownAccusedFallback
		if m := unknownDescriptionPattern.FindStringSubmatch(text); m != nil {
			desc = m[1]
		}
		accused = append(accused, domain.AccusedEntry{
			Name:        domain.UnknownAccusedName,
			Description: desc,
		})
	}

	return accused
}
