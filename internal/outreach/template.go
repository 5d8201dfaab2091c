package outreach

import (
	"fmt"
	"strings"

	"github.com/mountainops/lifthire/internal/hiring"
)

// RenderContext carries everything a subject or body template may
// reference. Score and Questions are optional; their placeholders stay
// literal when the data is absent.
type RenderContext struct {
	Applicant        *hiring.Applicant
	Job              hiring.JobProfile
	Questions        []string
	InterviewDetails string
}

// Render substitutes the known {placeholder} tokens in tmpl. Unknown
// tokens pass through untouched so a typo in a template is visible in
// the output instead of silently vanishing.
func Render(tmpl string, rc RenderContext) string {
	out := tmpl
	if a := rc.Applicant; a != nil {
		out = strings.ReplaceAll(out, "{first_name}", a.FirstName)
		out = strings.ReplaceAll(out, "{last_name}", a.LastName)
		out = strings.ReplaceAll(out, "{tailored_note}", TailoredNote(a))
		if a.ScoreData != nil {
			out = strings.ReplaceAll(out, "{score}", fmt.Sprintf("%d", a.ScoreData.Score))
		}
	}
	out = strings.ReplaceAll(out, "{job_title}", rc.Job.Title)
	out = strings.ReplaceAll(out, "{location}", rc.Job.Location)
	out = strings.ReplaceAll(out, "{interview_details}", rc.InterviewDetails)
	if rc.Questions != nil {
		out = strings.ReplaceAll(out, "{questions}", FormatQuestions(rc.Questions))
	}
	return out
}

// TailoredNote builds the personalization sentence for an invite. Ski
// experience wins over certifications; an empty string means the
// template's surrounding text stands on its own.
func TailoredNote(a *hiring.Applicant) string {
	if years := a.Resume.SkiYears(); years > 0 {
		noun := "seasons"
		if years == 1 {
			noun = "season"
		}
		return fmt.Sprintf("Your %d %s of ski resort experience really stood out to us.", years, noun)
	}
	if certs := a.Resume.Certifications; len(certs) > 0 {
		named := certs
		if len(named) > 2 {
			named = named[:2]
		}
		return fmt.Sprintf("Your %s certification background caught our attention.", strings.Join(named, " and "))
	}
	return ""
}

// FormatQuestions renders the selected questions as a numbered list,
// one per line.
func FormatQuestions(questions []string) string {
	var b strings.Builder
	for i, q := range questions {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, q)
	}
	return b.String()
}
