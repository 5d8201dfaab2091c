package outreach

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/mountainops/lifthire/internal/hiring"
)

// Simulator fabricates applicant replies for demoing the pipeline
// without real inboxes. Reply quality tracks the resume score: strong
// candidates write strong replies.
type Simulator struct {
	rand *rand.Rand
}

// NewSimulator returns a simulator drawing from src. Tests pass a
// fixed-seed source to pin template choice.
func NewSimulator(src rand.Source) *Simulator {
	return &Simulator{rand: rand.New(src)}
}

const defaultSimScore = 50

// Reply generates a reply body for the applicant. The tier comes from
// the stored resume score (unscored applicants count as average), the
// template within the tier is random, and the blanks are filled from
// the resume.
func (s *Simulator) Reply(a *hiring.Applicant) string {
	score := defaultSimScore
	if a.ScoreData != nil {
		score = a.ScoreData.Score
	}

	var pool []string
	switch {
	case score >= 75:
		pool = highReplies
	case score >= 50:
		pool = midReplies
	default:
		pool = lowReplies
	}

	tmpl := pool[s.rand.Intn(len(pool))]
	return fillReply(tmpl, a)
}

func fillReply(tmpl string, a *hiring.Applicant) string {
	out := strings.ReplaceAll(tmpl, "{first_name}", a.FirstName)
	out = strings.ReplaceAll(out, "{ski_background}", skiBackground(a))
	out = strings.ReplaceAll(out, "{company}", companyName(a))
	return out
}

func skiBackground(a *hiring.Applicant) string {
	if years := a.Resume.SkiYears(); years > 0 {
		noun := "seasons"
		if years == 1 {
			noun = "season"
		}
		return fmt.Sprintf("my %d %s on the slopes", years, noun)
	}
	return "my time working outdoors"
}

func companyName(a *hiring.Applicant) string {
	if company := a.Resume.FirstSkiCompany(); company != "" {
		return company
	}
	return "my last job"
}

// Reply pools. Wording is tuned so a reply from a tier lands in that
// tier's grade band no matter which template the simulator draws.
var highReplies = []string{
	"Hi, this is {first_name} — I'm excited and honestly thrilled to hear back! I spent {ski_background} at {company} running chairlift loading and safety checks, and I love everything about mountain work. I can confirm I'm available weekends, holidays, and early morning shifts, and any schedule works for me. Can't wait to talk!",
	"Thank you so much! I would love to interview for the lift operator position. {ski_background} at {company} taught me chairlift safety, guest loading, and daily equipment checks, and I'm eager to get back out on the snow. Weekends, holidays, and 6am early morning shifts are all fine — I can confirm whatever schedule you need. Looking forward to it!",
	"This made my day — I'm thrilled! Working the lift at {company} was the best job I've had, and I'm passionate about ski resort operations and guest safety. I'm available any weekend, every holiday, and I'm happy to confirm early morning shifts too. My schedule is wide open and I'm eager to start. Looking forward to hearing the details!",
}

var midReplies = []string{
	"Hi, thanks for reaching out. I'm interested in the role and available most weekends. I did some resort work at {company} and know the basic safety rules. Let me know what time works for the interview.",
	"Hello, I appreciate the invite. I can do the interview this week. I'm available on weekends and some mornings. My time at {company} gave me a bit of experience around lifts and guests. What schedule did you have in mind?",
	"Hi, thanks for considering me. I'd be glad to interview. I'm available weekday mornings and most weekends. I picked up the safety basics during {ski_background} and I'm comfortable on the mountain. Just send over the schedule.",
}

var lowReplies = []string{
	"ok when is it",
	"sure i guess i can come in. what's the pay though",
	"hey, got your email. might be free next week, not sure yet. this is {first_name} btw",
}
