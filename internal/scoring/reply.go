package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/mountainops/lifthire/internal/hiring"
)

// Reply breakdown categories.
const (
	CategoryEnthusiasm      = "Enthusiasm"
	CategoryRelevantContent = "Relevant Content"
	CategoryAvailabilityAck = "Availability Confirmation"
	CategoryDetail          = "Response Detail"
)

// Reply recommendations.
const (
	ReplyStrong   = "Strong"
	ReplyAdequate = "Adequate"
	ReplyWeak     = "Weak"
)

const maxReplyScore = 50

// enthusiasmWords signal genuine interest in the role.
var enthusiasmWords = []string{
	"excited", "thrilled", "love", "passion", "eager", "can't wait",
	"looking forward", "delighted", "grateful", "awesome",
}

// relevantWords tie the reply back to lift operations and the resort.
var relevantWords = []string{
	"lift", "chairlift", "ski", "snowboard", "resort", "mountain",
	"safety", "guest", "operator", "equipment", "osha", "first aid",
	"certification", "snow",
}

// availabilityWords confirm scheduling for the interview or the shifts.
var availabilityWords = []string{
	"available", "availability", "confirm", "weekend", "holiday",
	"morning", "shift", "schedule", "anytime", "flexible",
}

// ScoreReply evaluates a candidate's free-text reply on keyword density
// across four categories, 0 to 50. The applicant is passed for context
// and future use; the arithmetic depends only on the text.
func ScoreReply(text string, _ *hiring.Applicant) *hiring.ResponseRecord {
	lower := strings.ToLower(text)

	breakdown := hiring.Breakdown{}
	reasons := make([]string, 0, 4)

	matches := countMatches(lower, enthusiasmWords)
	pts := min(15, matches*5)
	breakdown = append(breakdown, hiring.CategoryScore{Category: CategoryEnthusiasm, Points: pts, Max: 15})
	if matches > 0 {
		reasons = append(reasons, fmt.Sprintf("Enthusiastic tone (%d keyword matches)", matches))
	} else {
		reasons = append(reasons, "No enthusiasm indicators in reply")
	}

	matches = countMatches(lower, relevantWords)
	pts = min(15, matches*3)
	breakdown = append(breakdown, hiring.CategoryScore{Category: CategoryRelevantContent, Points: pts, Max: 15})
	if matches > 0 {
		reasons = append(reasons, fmt.Sprintf("Mentions role-relevant topics (%d keyword matches)", matches))
	} else {
		reasons = append(reasons, "Reply does not reference the role")
	}

	matches = countMatches(lower, availabilityWords)
	pts = min(10, matches*4)
	breakdown = append(breakdown, hiring.CategoryScore{Category: CategoryAvailabilityAck, Points: pts, Max: 10})
	if matches > 0 {
		reasons = append(reasons, fmt.Sprintf("Confirms availability (%d keyword matches)", matches))
	} else {
		reasons = append(reasons, "Availability not confirmed")
	}

	words := len(strings.Fields(text))
	pts = min(10, words/5)
	breakdown = append(breakdown, hiring.CategoryScore{Category: CategoryDetail, Points: pts, Max: 10})
	reasons = append(reasons, fmt.Sprintf("Reply length: %d words", words))

	total := min(maxReplyScore, breakdown.Total())

	return &hiring.ResponseRecord{
		Score:          total,
		MaxScore:       maxReplyScore,
		Recommendation: recommendReply(total),
		Breakdown:      breakdown,
		Reasons:        reasons,
		Text:           text,
		ReceivedAt:     time.Now().UTC(),
	}
}

func recommendReply(total int) string {
	switch {
	case total >= 35:
		return ReplyStrong
	case total >= 20:
		return ReplyAdequate
	default:
		return ReplyWeak
	}
}

// countMatches counts how many keywords from the list appear in the
// lower-cased text. Each keyword counts once however often it repeats.
func countMatches(lower string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			count++
		}
	}
	return count
}
