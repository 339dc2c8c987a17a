// keywords.go implements the keyword trigger layer: a single Aho-Corasick
// pass over the text yields the set of cue words present, and declarative
// rule tables translate that set into emitted field values.
package extract

import (
	"sync"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/dharma-project/fir-extractor/internal/domain"
)

// keywordRule pairs a trigger (any listed keyword present, case-insensitive
// substring) with the value it emits. Rules are evaluated in table order and
// each value is emitted at most once.
type keywordRule struct {
	anyOf []string
	emit  string
}

// Weapon emissions, pistol before stick regardless of appearance order.
var weaponRules = []keywordRule{
	{anyOf: []string{"pistol"}, emit: "Country-made pistol"},
	{anyOf: []string{"stick"}, emit: "Stick"},
}

// Offence triggers, in the fixed evaluation order.
var offenceRules = []keywordRule{
	{anyOf: []string{"caste", "mala"}, emit: string(domain.OffenceCasteAbuse)},
	{anyOf: []string{"pistol", "fire"}, emit: string(domain.OffenceFirearmThreat)},
	{anyOf: []string{"snatched", "cash"}, emit: string(domain.OffenceRobbery)},
	{anyOf: []string{"injury", "bleeding"}, emit: string(domain.OffenceAssaultInjury)},
}

// Threat emissions, kill before fire.
var threatRules = []keywordRule{
	{anyOf: []string{"kill"}, emit: "Kill him"},
	{anyOf: []string{"fire", "burn"}, emit: "Set fire to his hut"},
}

// Impact is a single keyword flag, not a real extractor.
var impactRules = []keywordRule{
	{anyOf: []string{"hospital"}, emit: "Fear, public fled, complainant hospitalized"},
}

// unknownAssailantKeyword triggers the sentinel accused entry.
const unknownAssailantKeyword = "unknown"

// keywordMatcher finds all trigger keywords in one pass using an
// Aho-Corasick automaton. Match on the underlying matcher mutates shared
// generation state, so a mutex guards it; the matcher itself is immutable
// after construction.
type keywordMatcher struct {
	mu       sync.Mutex
	matcher  *ahocorasick.Matcher
	keywords []string
}

// newKeywordMatcher builds the automaton over the union of all rule-table
// trigger keywords plus the standalone flags.
func newKeywordMatcher() *keywordMatcher {
	seen := make(map[string]bool)
	keywords := make([]string, 0, 16)
	add := func(kw string) {
		if !seen[kw] {
			seen[kw] = true
			keywords = append(keywords, kw)
		}
	}
	for _, table := range [][]keywordRule{weaponRules, offenceRules, threatRules, impactRules} {
		for _, rule := range table {
			for _, kw := range rule.anyOf {
				add(kw)
			}
		}
	}
	add(unknownAssailantKeyword)

	return &keywordMatcher{
		matcher:  ahocorasick.NewStringMatcher(keywords),
		keywords: keywords,
	}
}

// Hits returns the set of trigger keywords present in text as
// case-insensitive substrings.
func (m *keywordMatcher) Hits(text string) map[string]bool {
	m.mu.Lock()
	indexes := m.matcher.Match([]byte(lower(text)))
	m.mu.Unlock()

	hits := make(map[string]bool, len(indexes))
	for _, idx := range indexes {
		if idx < len(m.keywords) {
			hits[m.keywords[idx]] = true
		}
	}
	return hits
}

// evalKeywordRules walks a rule table against a hit set and collects the
// emitted values in table order, each at most once.
func evalKeywordRules(hits map[string]bool, rules []keywordRule) []string {
	out := []string{}
	for _, rule := range rules {
		for _, kw := range rule.anyOf {
			if hits[kw] {
				out = append(out, rule.emit)
				break
			}
		}
	}
	return out
}

// offenceTags evaluates the offence trigger table into typed tags.
func offenceTags(hits map[string]bool) []domain.OffenceTag {
	emitted := evalKeywordRules(hits, offenceRules)
	tags := make([]domain.OffenceTag, 0, len(emitted))
	for _, e := range emitted {
		tags = append(tags, domain.OffenceTag(e))
	}
	return tags
}

// impactStatement returns the fixed impact line when its flag keyword is
// present, else the empty string.
func impactStatement(hits map[string]bool) string {
	if out := evalKeywordRules(hits, impactRules); len(out) > 0 {
		return out[0]
	}
	return ""
}

// OffenceTriggers exposes a read-only copy of the offence trigger table for
// the rules inspection endpoint.
func OffenceTriggers() map[string][]string {
	table := make(map[string][]string, len(offenceRules))
	for _, rule := range offenceRules {
		table[rule.emit] = append([]string(nil), rule.anyOf...)
	}
	return table
}
