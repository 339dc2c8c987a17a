package domain

// Legal code names, in the fixed output order.
const (
	CodeBNS  = "BNS 2023"
	CodeSCST = "SC/ST Act 1989"
	CodeArms = "Arms Act 1959"
)

// LegalMapping maps each legal code to its applicable section citations.
// The three codes always serialize in the order BNS 2023, SC/ST Act 1989,
// Arms Act 1959, and a code is omitted entirely when no section applies.
type LegalMapping struct {
	BNS  []string `json:"BNS 2023,omitempty"`
	SCST []string `json:"SC/ST Act 1989,omitempty"`
	Arms []string `json:"Arms Act 1959,omitempty"`
}

// IsEmpty reports whether no code has any applicable section.
func (m LegalMapping) IsEmpty() bool {
	return len(m.BNS) == 0 && len(m.SCST) == 0 && len(m.Arms) == 0
}

// Codes returns the names of the codes with at least one section,
// in the fixed output order.
func (m LegalMapping) Codes() []string {
	codes := make([]string, 0, 3)
	if len(m.BNS) > 0 {
		codes = append(codes, CodeBNS)
	}
	if len(m.SCST) > 0 {
		codes = append(codes, CodeSCST)
	}
	if len(m.Arms) > 0 {
		codes = append(codes, CodeArms)
	}
	return codes
}

// Sections returns the citations for the named code, or nil if the code is
// unknown or has no sections.
func (m LegalMapping) Sections(code string) []string {
	switch code {
	case CodeBNS:
		return m.BNS
	case CodeSCST:
		return m.SCST
	case CodeArms:
		return m.Arms
	default:
		return nil
	}
}
