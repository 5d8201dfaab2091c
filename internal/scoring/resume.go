package scoring

import (
	"fmt"
	"strings"

	"github.com/mountainops/lifthire/internal/hiring"
)

// Rubric category names, also the breakdown keys on the wire.
const (
	CategorySkiExperience  = "Ski Resort Experience"
	CategoryCertifications = "Safety Certifications"
	CategoryAvailability   = "Availability"
	CategoryProximity      = "Proximity"
	CategoryPhysical       = "Physical/Outdoor Experience"
)

// Resume recommendations.
const (
	RecommendStrongHire    = "Strong Hire"
	RecommendConsider      = "Consider"
	RecommendWeakCandidate = "Weak Candidate"
	RecommendReject        = "Reject"
)

const (
	maxSkiPoints   = 35
	maxCertPoints  = 25
	maxAvailPoints = 20
	maxProxPoints  = 15
	maxPhysPoints  = 5

	weakCandidateThreshold = 35
)

// physicalKeywords mark a physical or outdoor work background in the
// resume summary.
var physicalKeywords = []string{
	"outdoor", "physical", "labor", "construction", "guide", "patrol", "crew",
}

// ResumeScorer applies the weighted five-category rubric. Scoring is a
// pure function of the applicant: the same resume always produces the
// same record.
type ResumeScorer struct {
	// StrongHire and Consider are the recommendation cut-offs; the
	// Weak Candidate floor is fixed.
	StrongHire int
	Consider   int
}

// NewResumeScorer returns a scorer with the default recommendation
// thresholds (75 and 55).
func NewResumeScorer() *ResumeScorer {
	return &ResumeScorer{StrongHire: 75, Consider: 55}
}

// Score evaluates one applicant's resume and proximity against the
// rubric, producing a full breakdown with human-readable reasons.
func (s *ResumeScorer) Score(a *hiring.Applicant) *hiring.ScoreRecord {
	breakdown := hiring.Breakdown{}
	reasons := make([]string, 0, 8)

	pts, catReasons := scoreSkiExperience(&a.Resume)
	breakdown = append(breakdown, hiring.CategoryScore{Category: CategorySkiExperience, Points: pts, Max: maxSkiPoints})
	reasons = append(reasons, catReasons...)

	pts, catReasons = scoreCertifications(&a.Resume)
	breakdown = append(breakdown, hiring.CategoryScore{Category: CategoryCertifications, Points: pts, Max: maxCertPoints})
	reasons = append(reasons, catReasons...)

	pts, catReasons = scoreAvailability(&a.Resume)
	breakdown = append(breakdown, hiring.CategoryScore{Category: CategoryAvailability, Points: pts, Max: maxAvailPoints})
	reasons = append(reasons, catReasons...)

	pts, catReasons = scoreProximity(a.DistanceMiles)
	breakdown = append(breakdown, hiring.CategoryScore{Category: CategoryProximity, Points: pts, Max: maxProxPoints})
	reasons = append(reasons, catReasons...)

	pts, catReasons = scorePhysicalBackground(&a.Resume)
	breakdown = append(breakdown, hiring.CategoryScore{Category: CategoryPhysical, Points: pts, Max: maxPhysPoints})
	reasons = append(reasons, catReasons...)

	total := breakdown.Total()

	return &hiring.ScoreRecord{
		Score:          total,
		MaxScore:       100,
		Recommendation: s.recommend(total),
		Breakdown:      breakdown,
		Reasons:        reasons,
	}
}

func (s *ResumeScorer) recommend(total int) string {
	switch {
	case total >= s.StrongHire:
		return RecommendStrongHire
	case total >= s.Consider:
		return RecommendConsider
	case total >= weakCandidateThreshold:
		return RecommendWeakCandidate
	default:
		return RecommendReject
	}
}

// scoreSkiExperience awards up to 35 points. Lift or operator roles
// start from a 20-point base, other ski resort roles from 10, each
// adding 3 points per ski-related year.
func scoreSkiExperience(r *hiring.Resume) (int, []string) {
	skiYears := 0
	hasSki := false
	hasLift := false

	for _, e := range r.Experience {
		if !e.SkiRelated {
			continue
		}
		hasSki = true
		skiYears += e.Years

		title := strings.ToLower(e.Title)
		if strings.Contains(title, "lift") || strings.Contains(title, "operator") {
			hasLift = true
		}
	}

	switch {
	case hasLift:
		pts := min(maxSkiPoints, 20+skiYears*3)
		return pts, []string{fmt.Sprintf("Direct lift operator experience (%d years)", skiYears)}
	case hasSki:
		pts := min(25, 10+skiYears*3)
		return pts, []string{fmt.Sprintf("Ski resort experience (%d years, non-lift roles)", skiYears)}
	default:
		return 0, []string{"No ski resort experience"}
	}
}

// scoreCertifications awards up to 25 points. OSHA 30 outranks OSHA 10
// and the two never stack.
func scoreCertifications(r *hiring.Resume) (int, []string) {
	certs := make([]string, 0, len(r.Certifications))
	for _, c := range r.Certifications {
		certs = append(certs, strings.ToUpper(c))
	}

	pts := 0
	reasons := make([]string, 0, 2)

	if anyContains(certs, "OSHA 30") {
		pts += 12
	} else if anyContains(certs, "OSHA 10") {
		pts += 7
	}

	if anyContains(certs, "ANSI") || anyContains(certs, "B77") {
		pts += 8
		reasons = append(reasons, "ANSI/ASME B77.1 lift standards certification")
	}

	if anyContains(certs, "FIRST AID") || anyContains(certs, "CPR") ||
		anyContains(certs, "EMT") || anyContains(certs, "RESPONDER") {
		pts += 5
	}

	pts = min(maxCertPoints, pts)

	switch {
	case pts >= 15:
		reasons = append(reasons, fmt.Sprintf("Strong safety certification suite (%s)", joinFirst(r.Certifications, 2)))
	case pts > 0:
		reasons = append(reasons, fmt.Sprintf("Basic certifications (%s)", joinFirst(r.Certifications, 2)))
	default:
		reasons = append(reasons, "No safety certifications")
	}

	return pts, reasons
}

func scoreAvailability(r *hiring.Resume) (int, []string) {
	pts := 0
	if r.Availability.Weekends {
		pts += 8
	}
	if r.Availability.Holidays {
		pts += 7
	}
	if r.Availability.EarlyAM {
		pts += 5
	}

	switch {
	case pts >= 18:
		return pts, []string{"Full availability (weekends, holidays, early AM)"}
	case pts >= 10:
		return pts, []string{"Partial availability"}
	default:
		return pts, []string{"Limited availability, misses weekends or holidays"}
	}
}

// scoreProximity bands distance with inclusive upper bounds.
func scoreProximity(miles float64) (int, []string) {
	switch {
	case miles <= 10:
		return 15, []string{fmt.Sprintf("Very close to resort (%.1f miles)", miles)}
	case miles <= 25:
		return 10, []string{fmt.Sprintf("Reasonable commute (%.1f miles)", miles)}
	case miles <= 50:
		return 5, []string{fmt.Sprintf("Long commute (%.1f miles)", miles)}
	default:
		return 0, []string{fmt.Sprintf("Too far from resort (%.1f miles)", miles)}
	}
}

// scorePhysicalBackground never awards zero: missing keywords still get
// a 2-point participation floor.
func scorePhysicalBackground(r *hiring.Resume) (int, []string) {
	summary := strings.ToLower(r.Summary)
	for _, kw := range physicalKeywords {
		if strings.Contains(summary, kw) {
			return maxPhysPoints, []string{"Physical/outdoor labor background"}
		}
	}
	return 2, nil
}

func anyContains(values []string, substr string) bool {
	for _, v := range values {
		if strings.Contains(v, substr) {
			return true
		}
	}
	return false
}

func joinFirst(values []string, n int) string {
	if len(values) == 0 {
		return "none"
	}
	if len(values) > n {
		values = values[:n]
	}
	return strings.Join(values, ", ")
}
