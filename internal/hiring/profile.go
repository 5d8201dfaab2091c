package hiring

// JobProfile is the fixed posting all applicants are evaluated against.
// One instance per deployment; the weights sum to 100.
type JobProfile struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Department      string         `json:"department"`
	Location        string         `json:"location"`
	Type            string         `json:"type"`
	Season          string         `json:"season"`
	Description     string         `json:"description"`
	Requirements    []string       `json:"requirements"`
	ScoringCriteria map[string]int `json:"scoring_criteria"`
}

// LiftOperatorProfile is the deployment's job posting.
var LiftOperatorProfile = JobProfile{
	ID:         "JOB-2026-0041",
	Title:      "Ski Lift Operator",
	Department: "Mountain Operations",
	Location:   "Vail, CO",
	Type:       "Seasonal Full-Time",
	Season:     "Winter 2025-2026",
	Description: "Operate and monitor ski lifts to safely transport guests up the mountain. " +
		"Ensure all safety protocols are followed, assist guests loading/unloading, " +
		"perform daily equipment checks, and respond to emergencies.",
	Requirements: []string{
		"Outdoor/physical labor experience",
		"Prior ski resort or lift operator experience preferred",
		"Weekend, holiday, and early morning availability required",
		"Safety certifications (OSHA, First Aid) preferred",
		"Must live within 35 miles of resort",
	},
	ScoringCriteria: map[string]int{
		"ski_resort_experience":       35,
		"safety_certifications":       25,
		"availability":                20,
		"proximity":                   15,
		"physical_outdoor_experience": 5,
	},
}
