package hiring

import (
	"sort"
	"strings"
	"time"
)

// ExperienceEntry is a single job held by an applicant. Order of entries
// follows the resume; only the first entry has positional meaning.
type ExperienceEntry struct {
	Title      string `json:"title" yaml:"title"`
	Company    string `json:"company" yaml:"company"`
	Years      int    `json:"years" yaml:"years"`
	SkiRelated bool   `json:"ski_related" yaml:"ski_related"`
}

// Availability holds the three shift flags the rubric cares about.
type Availability struct {
	Weekends bool `json:"weekends" yaml:"weekends"`
	Holidays bool `json:"holidays" yaml:"holidays"`
	EarlyAM  bool `json:"early_am" yaml:"early_am"`
}

// Resume is the structured resume owned by exactly one applicant.
type Resume struct {
	Summary        string            `json:"summary" yaml:"summary"`
	Experience     []ExperienceEntry `json:"experience" yaml:"experience"`
	Certifications []string          `json:"certifications" yaml:"certifications"`
	Availability   Availability      `json:"availability" yaml:"availability"`
	Skills         []string          `json:"skills" yaml:"skills"`
}

// SkiYears sums years across ski-related experience entries.
func (r *Resume) SkiYears() int {
	total := 0
	for _, e := range r.Experience {
		if e.SkiRelated {
			total += e.Years
		}
	}
	return total
}

// HasSkiExperience reports whether any experience entry is ski-related.
func (r *Resume) HasSkiExperience() bool {
	for _, e := range r.Experience {
		if e.SkiRelated {
			return true
		}
	}
	return false
}

// FirstSkiCompany returns the company of the first ski-related entry.
func (r *Resume) FirstSkiCompany() string {
	for _, e := range r.Experience {
		if e.SkiRelated {
			return e.Company
		}
	}
	return ""
}

// CalendarEvent is the synthetic interview booking attached by the
// book_interview bulk action.
type CalendarEvent struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Duration string `json:"duration"`
}

// ScoreRecord is the result of scoring a resume. It is replaced
// wholesale on rescoring, never merged.
type ScoreRecord struct {
	Score          int       `json:"score"`
	MaxScore       int       `json:"max_score"`
	Recommendation string    `json:"recommendation"`
	Breakdown      Breakdown `json:"breakdown"`
	Reasons        []string  `json:"reasons"`
}

// ResponseRecord is the result of scoring a candidate reply.
type ResponseRecord struct {
	Score          int       `json:"score"`
	MaxScore       int       `json:"max_score"`
	Recommendation string    `json:"recommendation"`
	Breakdown      Breakdown `json:"breakdown"`
	Reasons        []string  `json:"reasons"`
	Text           string    `json:"text"`
	ReceivedAt     time.Time `json:"received_at"`
}

// Applicant is one candidate record in the pipeline.
type Applicant struct {
	ID            string          `json:"id" yaml:"id"`
	FirstName     string          `json:"first_name" yaml:"first_name"`
	LastName      string          `json:"last_name" yaml:"last_name"`
	Email         string          `json:"email" yaml:"email"`
	Phone         string          `json:"phone" yaml:"phone"`
	Location      string          `json:"location" yaml:"location"`
	DistanceMiles float64         `json:"distance_miles" yaml:"distance_miles"`
	AppliedDate   string          `json:"applied_date" yaml:"applied_date"`
	Status        Status          `json:"status" yaml:"status"`
	Resume        Resume          `json:"resume" yaml:"resume"`
	ScoreData     *ScoreRecord    `json:"score_data,omitempty" yaml:"-"`
	ResponseData  *ResponseRecord `json:"response_data,omitempty" yaml:"-"`
	CalendarEvent *CalendarEvent  `json:"calendar_event,omitempty" yaml:"-"`
	EmailSentAt   string          `json:"email_sent_at,omitempty" yaml:"-"`
}

func (a *Applicant) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// ResumeScore returns the cached resume score or -1 when unscored.
func (a *Applicant) ResumeScore() int {
	if a.ScoreData == nil {
		return -1
	}
	return a.ScoreData.Score
}

// Applicants is an ordered collection of applicant records.
type Applicants struct {
	Items []*Applicant
}

func (a *Applicants) Len() int {
	return len(a.Items)
}

func (a *Applicants) FindByID(id string) *Applicant {
	for _, item := range a.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// FindByName returns all applicants whose full name contains the query,
// case-insensitively.
func (a *Applicants) FindByName(query string) []*Applicant {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	matches := make([]*Applicant, 0)
	for _, item := range a.Items {
		if strings.Contains(strings.ToLower(item.FullName()), query) {
			matches = append(matches, item)
		}
	}
	return matches
}

// FilterByStatus keeps applicants in the given status.
func (a *Applicants) FilterByStatus(status Status) *Applicants {
	filtered := &Applicants{}
	for _, item := range a.Items {
		if item.Status == status {
			filtered.Items = append(filtered.Items, item)
		}
	}
	return filtered
}

// CountByStatus groups the collection by pipeline status.
func (a *Applicants) CountByStatus() map[Status]int {
	counts := make(map[Status]int)
	for _, item := range a.Items {
		counts[item.Status]++
	}
	return counts
}

// SortByScore orders applicants by resume score descending. Unscored
// applicants sort last; ties keep their relative order.
func (a *Applicants) SortByScore() {
	sort.SliceStable(a.Items, func(i, j int) bool {
		return a.Items[i].ResumeScore() > a.Items[j].ResumeScore()
	})
}
