// Package domain defines the data model shared by the extraction pipeline,
// the legal mapper, storage and the API layer.
package domain

// OffenceTag is a closed-vocabulary label assigned by keyword detection.
// Tags are not mutually exclusive; each appears at most once per record.
type OffenceTag string

// Offence tag values.
const (
	OffenceCasteAbuse    OffenceTag = "Caste abuse"
	OffenceFirearmThreat OffenceTag = "Threat with firearm"
	OffenceRobbery       OffenceTag = "Robbery"
	OffenceAssaultInjury OffenceTag = "Assault causing injury"
)

// PlaceNotMentioned is the Place value when no landmark pattern matched.
const PlaceNotMentioned = "Not mentioned"

// UnknownAccusedName is the Name of the sentinel entry appended when the
// text refers to an unidentified assailant.
const UnknownAccusedName = "Unknown"

// UnknownAccusedFallback is the sentinel Description when no physical
// description cue followed the unknown-assailant reference.
const UnknownAccusedFallback = "Unknown description"

// ComplainantInfo holds the fields recovered for the complainant.
// Every field is optional; a zero value means the pattern did not match.
type ComplainantInfo struct {
	Name       string `json:"Name,omitempty"`
	Father     string `json:"Father,omitempty"`
	Age        int    `json:"Age,omitempty"`
	Community  string `json:"Community,omitempty"`
	Occupation string `json:"Occupation,omitempty"`
	Address    string `json:"Address,omitempty"`
}

// IsEmpty reports whether no complainant pattern matched at all.
func (c ComplainantInfo) IsEmpty() bool {
	return c == ComplainantInfo{}
}

// AccusedEntry is one accused person recovered from the text.
// Named entries carry Name and Age; the unknown-assailant sentinel carries
// Name "Unknown" and a Description instead.
type AccusedEntry struct {
	Name        string `json:"Name"`
	Age         int    `json:"Age,omitempty"`
	Relation    string `json:"Relation,omitempty"`
	Address     string `json:"Address,omitempty"`
	Description string `json:"Description,omitempty"`
}

// FIRRecord is the full structured output of one extraction run.
// Field names and order follow the persisted JSON layout; sequence fields
// are always non-nil so absent matches serialize as [] rather than null.
type FIRRecord struct {
	Complainant  ComplainantInfo `json:"Complainant"`
	DateTime     string          `json:"DateTime"`
	Place        string          `json:"Place"`
	Accused      []AccusedEntry  `json:"Accused"`
	Vehicles     []string        `json:"Vehicles"`
	WeaponsUsed  []string        `json:"WeaponsUsed"`
	Offences     []OffenceTag    `json:"Offences"`
	PropertyLoss []string        `json:"PropertyLoss"`
	Threats      []string        `json:"Threats"`
	Witnesses    []string        `json:"Witnesses"`
	Impact       string          `json:"Impact"`
	LegalMapping LegalMapping    `json:"LegalMapping"`
}

// NewFIRRecord returns a record with all sequence fields initialized empty
// and Place set to its "not mentioned" default.
func NewFIRRecord() *FIRRecord {
	return &FIRRecord{
		Place:        PlaceNotMentioned,
		Accused:      []AccusedEntry{},
		Vehicles:     []string{},
		WeaponsUsed:  []string{},
		Offences:     []OffenceTag{},
		PropertyLoss: []string{},
		Threats:      []string{},
		Witnesses:    []string{},
	}
}

// HasOffence reports whether the record's offence list contains tag.
func (r *FIRRecord) HasOffence(tag OffenceTag) bool {
	for _, t := range r.Offences {
		if t == tag {
			return true
		}
	}
	return false
}
