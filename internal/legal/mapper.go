// Package legal maps detected offence tags to statutory section citations
// under BNS 2023, the SC/ST Act 1989 and the Arms Act 1959.
package legal

import (
	"strings"

	"github.com/dharma-project/fir-extractor/internal/domain"
)

// Section citations emitted by the statute rules.
const (
	SectionRobbery      = "Sec. 309 – Robbery"
	SectionHurt         = "Sec. 115 – Hurt"
	SectionIntimidation = "Sec. 351 – Criminal intimidation"
	SectionCasteInsult  = "Sec. 3(1)(r) – Intentional insult/abuse by caste name"
	SectionCasteGround  = "Sec. 3(2)(v) – Offence committed on ground of caste"
	SectionIllegalArms  = "Sec. 25 – Possession/use of illegal arms"
	SectionFirearmUse   = "Sec. 27 – Use of firearm in commission of offence"
)

// statuteRule pairs a predicate over the offence list with the code and
// citations it emits. Rules are independent: neither mutually exclusive nor
// short-circuiting.
type statuteRule struct {
	code     string
	sections []string
	when     func(offences []domain.OffenceTag) bool
}

// statuteRules is the full mapping table, in emission order per code.
var statuteRules = []statuteRule{
	{
		code:     domain.CodeBNS,
		sections: []string{SectionRobbery},
		when:     hasTag(domain.OffenceRobbery),
	},
	{
		code:     domain.CodeBNS,
		sections: []string{SectionHurt},
		when:     hasTag(domain.OffenceAssaultInjury),
	},
	{
		code:     domain.CodeBNS,
		sections: []string{SectionIntimidation},
		when:     anyTagContains("Threat"),
	},
	{
		code:     domain.CodeSCST,
		sections: []string{SectionCasteInsult, SectionCasteGround},
		when:     hasTag(domain.OffenceCasteAbuse),
	},
	{
		code:     domain.CodeArms,
		sections: []string{SectionIllegalArms, SectionFirearmUse},
		when:     tagTextContainsAny("firearm", "pistol"),
	},
}

// Map evaluates every statute rule against the offence list and returns the
// mapping with codes in the fixed output order. A code with no applicable
// section is omitted from the serialized form entirely.
func Map(offences []domain.OffenceTag) domain.LegalMapping {
	var m domain.LegalMapping
	for _, rule := range statuteRules {
		if !rule.when(offences) {
			continue
		}
		switch rule.code {
		case domain.CodeBNS:
			m.BNS = append(m.BNS, rule.sections...)
		case domain.CodeSCST:
			m.SCST = append(m.SCST, rule.sections...)
		case domain.CodeArms:
			m.Arms = append(m.Arms, rule.sections...)
		}
	}
	return m
}

// Rules exposes a read-only view of the statute table for the rules
// inspection endpoint: code -> condition description -> citations.
func Rules() []RuleView {
	views := make([]RuleView, 0, len(statuteRules))
	for _, rule := range statuteRules {
		views = append(views, RuleView{
			Code:     rule.code,
			Sections: append([]string(nil), rule.sections...),
		})
	}
	return views
}

// RuleView is the serializable shape of one statute rule.
type RuleView struct {
	Code     string   `json:"code"`
	Sections []string `json:"sections"`
}

func hasTag(tag domain.OffenceTag) func([]domain.OffenceTag) bool {
	return func(offences []domain.OffenceTag) bool {
		for _, t := range offences {
			if t == tag {
				return true
			}
		}
		return false
	}
}

// anyTagContains matches when any single tag contains the word.
func anyTagContains(word string) func([]domain.OffenceTag) bool {
	return func(offences []domain.OffenceTag) bool {
		for _, t := range offences {
			if strings.Contains(string(t), word) {
				return true
			}
		}
		return false
	}
}

// tagTextContainsAny matches against the concatenated offence-tag text.
func tagTextContainsAny(words ...string) func([]domain.OffenceTag) bool {
	return func(offences []domain.OffenceTag) bool {
		parts := make([]string, 0, len(offences))
		for _, t := range offences {
			parts = append(parts, string(t))
		}
		joined := strings.Join(parts, " ")
		for _, w := range words {
			if strings.Contains(joined, w) {
				return true
			}
		}
		return false
	}
}
