package extract

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dharma-project/fir-extractor/internal/domain"
	"github.com/dharma-project/fir-extractor/internal/logger"
)

func newTestExtractor(witnesses bool) *Extractor {
	return New(logger.NewNop(), nil, Config{WitnessHeuristic: witnesses})
}

func TestExtractComplainantScenario(t *testing.T) {
	text := "On 12th March 2024 at about 10:30 PM near Ramapuram culvert, " +
		"the complainant Ramesh, aged 40, Scheduled Caste, occupation: Farmer, " +
		"S/o Venkatesh, resident of Anantapur."

	rec := newTestExtractor(false).Extract(context.Background(), InputAPI, text)

	wantComplainant := domain.ComplainantInfo{
		Name:       "Ramesh",
		Father:     "Venkatesh",
		Age:        40,
		Community:  "Scheduled Caste",
		Occupation: "Farmer",
		Address:    "Anantapur",
	}
	if diff := cmp.Diff(wantComplainant, rec.Complainant); diff != "" {
		t.Errorf("complainant mismatch (-want +got):\n%s", diff)
	}
	if got, want := rec.DateTime, "12th March 2024, 10:30 PM"; got != want {
		t.Errorf("DateTime = %q, want %q", got, want)
	}
	if got, want := rec.Place, "Ramapuram culvert"; got != want {
		t.Errorf("Place = %q, want %q", got, want)
	}
	// "Scheduled Caste" carries the caste trigger keyword.
	if !rec.HasOffence(domain.OffenceCasteAbuse) {
		t.Errorf("Offences = %v, want caste abuse detected", rec.Offences)
	}
	if diff := cmp.Diff([]string{
		"Sec. 3(1)(r) – Intentional insult/abuse by caste name",
		"Sec. 3(2)(v) – Offence committed on ground of caste",
	}, rec.LegalMapping.SCST); diff != "" {
		t.Errorf("SC/ST sections mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractFirearmThreatScenario(t *testing.T) {
	text := "The accused pointed a country-made pistol and threatened to kill him " +
		"and set fire to his hut, he was taken to hospital with a bleeding injury."

	rec := newTestExtractor(false).Extract(context.Background(), InputAPI, text)

	if diff := cmp.Diff([]string{"Country-made pistol"}, rec.WeaponsUsed); diff != "" {
		t.Errorf("weapons mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]domain.OffenceTag{
		domain.OffenceFirearmThreat,
		domain.OffenceAssaultInjury,
	}, rec.Offences); diff != "" {
		t.Errorf("offences mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Kill him", "Set fire to his hut"}, rec.Threats); diff != "" {
		t.Errorf("threats mismatch (-want +got):\n%s", diff)
	}
	if got, want := rec.Impact, "Fear, public fled, complainant hospitalized"; got != want {
		t.Errorf("Impact = %q, want %q", got, want)
	}
	if diff := cmp.Diff([]string{
		"Sec. 115 – Hurt",
		"Sec. 351 – Criminal intimidation",
	}, rec.LegalMapping.BNS); diff != "" {
		t.Errorf("BNS sections mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{
		"Sec. 25 – Possession/use of illegal arms",
		"Sec. 27 – Use of firearm in commission of offence",
	}, rec.LegalMapping.Arms); diff != "" {
		t.Errorf("Arms sections mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractRobberyScenario(t *testing.T) {
	text := "They escaped on motorcycle AP-09-BD-1234 after they snatched " +
		"cash ₹5000 and a Samsung phone worth ₹20000."

	rec := newTestExtractor(false).Extract(context.Background(), InputAPI, text)

	if diff := cmp.Diff([]string{"AP-09-BD-1234"}, rec.Vehicles); diff != "" {
		t.Errorf("vehicles mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{
		"cash ₹5000",
		"Samsung phone worth ₹20000",
	}, rec.PropertyLoss); diff != "" {
		t.Errorf("property loss mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]domain.OffenceTag{domain.OffenceRobbery}, rec.Offences); diff != "" {
		t.Errorf("offences mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Sec. 309 – Robbery"}, rec.LegalMapping.BNS); diff != "" {
		t.Errorf("BNS sections mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractUnknownAccusedSentinelLast(t *testing.T) {
	text := "Ravi Kumar, aged about 30, S/o Subbaiah, resident of Kadapa. " +
		"One unknown person in a black shirt also attacked."

	rec := newTestExtractor(false).Extract(context.Background(), InputAPI, text)

	want := []domain.AccusedEntry{
		{Name: "Ravi Kumar", Age: 30, Relation: "S/o Subbaiah", Address: "Kadapa"},
		{Name: domain.UnknownAccusedName, Description: "black shirt"},
	}
	if diff := cmp.Diff(want, rec.Accused); diff != "" {
		t.Errorf("accused mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractDateWithoutTimeYieldsNothing(t *testing.T) {
	rec := newTestExtractor(false).Extract(context.Background(), InputAPI,
		"On 5th June 2023 the matter occurred.")
	if rec.DateTime != "" {
		t.Errorf("DateTime = %q, want empty for a date with no time", rec.DateTime)
	}
}

func TestExtractPatternFreeTextYieldsDefaults(t *testing.T) {
	rec := newTestExtractor(true).Extract(context.Background(), InputAPI,
		"Nothing happened today.")

	if !isEmptyRecord(rec) {
		t.Errorf("record not all-default: %+v", rec)
	}
	if rec.Place != domain.PlaceNotMentioned {
		t.Errorf("Place = %q, want %q", rec.Place, domain.PlaceNotMentioned)
	}
	if rec.Accused == nil || rec.Vehicles == nil || rec.WeaponsUsed == nil ||
		rec.Offences == nil || rec.PropertyLoss == nil || rec.Threats == nil ||
		rec.Witnesses == nil {
		t.Error("sequence fields must stay non-nil on an all-default record")
	}
	if !rec.LegalMapping.IsEmpty() {
		t.Errorf("LegalMapping = %+v, want empty", rec.LegalMapping)
	}
}

func TestExtractEmptyInputTolerated(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		rec := newTestExtractor(true).Extract(context.Background(), InputAPI, text)
		if !isEmptyRecord(rec) {
			t.Errorf("Extract(%q) produced non-default record: %+v", text, rec)
		}
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	text := "The accused pointed a country-made pistol near Ramapuram culvert " +
		"and snatched cash ₹5000. Witnesses Suresh, Mahesh and Prakash saw it."

	e := newTestExtractor(true)
	first := e.Extract(context.Background(), InputAPI, text)
	second := e.Extract(context.Background(), InputAPI, text)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated extraction diverged (-first +second):\n%s", diff)
	}
}

func TestWitnessHeuristicToggle(t *testing.T) {
	text := "Witnesses Suresh, Mahesh and Prakash saw the incident."

	on := newTestExtractor(true).Extract(context.Background(), InputAPI, text)
	if len(on.Witnesses) == 0 {
		t.Error("witness heuristic enabled but no witnesses extracted")
	}

	off := newTestExtractor(false).Extract(context.Background(), InputAPI, text)
	if diff := cmp.Diff([]string{}, off.Witnesses); diff != "" {
		t.Errorf("witness heuristic disabled but Witnesses = %v", off.Witnesses)
	}
}

func TestIsBlank(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"\n\t ", true},
		{"text", false},
		{" x ", false},
	}
	for _, tt := range tests {
		if got := IsBlank(tt.text); got != tt.want {
			t.Errorf("IsBlank(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
