package intake

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mountainops/lifthire/internal/hiring"
)

// certKeyword maps a lower-cased substring to its canonical label.
// Pairs are scanned in order, labels deduplicated on append. The bare
// "osha" entry deliberately overlaps the numbered ones, so OSHA 30
// text also yields the OSHA 10 label; the scorer's elif chain makes
// the extra label harmless and existing fixtures expect it.
type certKeyword struct {
	keyword string
	label   string
}

var certCatalog = []certKeyword{
	{"osha 30", "OSHA 30"},
	{"osha 10", "OSHA 10"},
	{"osha", "OSHA 10"},
	{"ansi", "ANSI/ASME B77.1"},
	{"b77", "ANSI/ASME B77.1"},
	{"first aid", "First Aid"},
	{"cpr", "CPR"},
	{"emt", "EMT-B"},
	{"first responder", "First Responder"},
	{"wfr", "WFR"},
	{"avalanche", "Avalanche Safety"},
}

var skiKeywords = []string{
	"ski", "snowboard", "lift", "chairlift", "resort", "slope", "gondola",
}

var physicalKeywords = []string{
	"outdoor", "physical", "labor", "construction", "guide", "patrol", "crew",
}

type skillKeyword struct {
	keyword string
	label   string
}

var skillCatalog = []skillKeyword{
	{"chairlift", "chairlift operation"},
	{"lift", "lift operations"},
	{"safety", "safety protocols"},
	{"guest", "guest service"},
	{"customer", "customer service"},
	{"maintenance", "mechanical maintenance"},
	{"inspection", "safety inspection"},
	{"emergency", "emergency response"},
	{"snow", "snow operations"},
	{"train", "staff training"},
	{"outdoor", "outdoor work"},
	{"labor", "physical labor"},
	{"team", "teamwork"},
}

const (
	maxSkills     = 8
	maxSummaryLen = 300
)

var yearsPattern = regexp.MustCompile(`(\d+)\s*(year|season|yr)`)

// Extract parses raw resume text into a structured Resume. It never
// fails: text with no recognizable signal degrades to an empty
// experience and certification list.
//
// Ski years come from the first "<n> year/season/yr" match anywhere in
// the text whenever any ski keyword appears anywhere; the number does
// not need to sit next to the keyword. Sloppy, but scored fixtures
// depend on it.
func Extract(text string) hiring.Resume {
	lower := strings.ToLower(text)

	resume := hiring.Resume{
		Summary:        summarize(text),
		Certifications: extractCerts(lower),
		Availability: hiring.Availability{
			Weekends: strings.Contains(lower, "weekend"),
			Holidays: strings.Contains(lower, "holiday"),
			EarlyAM:  anyKeyword(lower, "early am", "early morning", "morning", "6am", "5am"),
		},
		Skills: extractSkills(lower),
	}

	years := 0
	if m := yearsPattern.FindStringSubmatch(lower); m != nil {
		years, _ = strconv.Atoi(m[1])
	}

	switch {
	case anyKeyword(lower, skiKeywords...):
		if years == 0 {
			years = 1
		}
		resume.Experience = []hiring.ExperienceEntry{
			{Title: "Ski Resort Worker", Years: years, SkiRelated: true},
		}
	case anyKeyword(lower, physicalKeywords...):
		resume.Experience = []hiring.ExperienceEntry{
			{Title: "Outdoor/Physical Labor", Years: 2, SkiRelated: false},
		}
	}

	return resume
}

func extractCerts(lower string) []string {
	certs := make([]string, 0, 4)
	seen := make(map[string]bool)
	for _, entry := range certCatalog {
		if !strings.Contains(lower, entry.keyword) || seen[entry.label] {
			continue
		}
		seen[entry.label] = true
		certs = append(certs, entry.label)
	}
	return certs
}

func extractSkills(lower string) []string {
	skills := make([]string, 0, maxSkills)
	for _, entry := range skillCatalog {
		if len(skills) >= maxSkills {
			break
		}
		if strings.Contains(lower, entry.keyword) {
			skills = append(skills, entry.label)
		}
	}
	return skills
}

func summarize(text string) string {
	runes := []rune(text)
	if len(runes) <= maxSummaryLen {
		return text
	}
	return string(runes[:maxSummaryLen]) + "..."
}

func anyKeyword(lower string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
