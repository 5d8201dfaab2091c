package outreach

import (
	"strings"

	"github.com/mountainops/lifthire/internal/hiring"
)

const maxQuestions = 3

// SelectQuestions picks up to three interview questions from the
// catalog, targeting the gaps in the applicant's background. Selection
// is a pure function of the resume facts and the catalog: rules run in
// fixed priority order and there is no randomness.
func SelectQuestions(a *hiring.Applicant, catalog []string) []string {
	picked := make([]string, 0, maxQuestions)
	taken := make(map[int]bool, maxQuestions)

	pick := func(idx int) {
		if idx >= 0 && !taken[idx] {
			taken[idx] = true
			picked = append(picked, catalog[idx])
		}
	}

	if a.Resume.HasSkiExperience() {
		pick(firstMentioning(catalog, taken, "lift", "equipment"))
	}

	if !a.Resume.Availability.Weekends || !a.Resume.Availability.EarlyAM {
		pick(firstMentioning(catalog, taken, "available", "shift"))
	}

	if len(a.Resume.Certifications) == 0 {
		pick(firstMentioning(catalog, taken, "certif", "osha"))
	}

	pick(firstMentioning(catalog, taken, "safety"))

	// Thin resumes trigger few gap rules; pad out of the catalog so
	// every invite still carries at least a couple of questions.
	if len(picked) < 2 {
		for idx := range catalog {
			if len(picked) >= maxQuestions {
				break
			}
			pick(idx)
		}
	}

	if len(picked) > maxQuestions {
		picked = picked[:maxQuestions]
	}
	return picked
}

// firstMentioning returns the index of the first unpicked question
// containing any of the fragments, or -1.
func firstMentioning(catalog []string, taken map[int]bool, fragments ...string) int {
	for idx, q := range catalog {
		if taken[idx] {
			continue
		}
		lower := strings.ToLower(q)
		for _, fragment := range fragments {
			if strings.Contains(lower, fragment) {
				return idx
			}
		}
	}
	return -1
}
