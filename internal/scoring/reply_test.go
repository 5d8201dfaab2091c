package scoring

import (
	"strings"
	"testing"
)

func TestScoreReplyMaxesOut(t *testing.T) {
	t.Parallel()

	// 5+ enthusiasm words, 6+ relevant words, 3+ availability words,
	// padded past 60 words total.
	reply := "I am so excited and thrilled about this, I would love the role and " +
		"I am eager and grateful for the chance. I have chairlift and lift experience " +
		"at a ski resort on the mountain with strong safety habits and my own equipment. " +
		"I am available any weekend or holiday and can confirm every morning shift. " +
		strings.Repeat("Thank you again for considering my application today. ", 3)

	record := ScoreReply(reply, nil)

	if record.Score != 50 {
		t.Fatalf("expected total 50, got %d", record.Score)
	}
	if record.Recommendation != ReplyStrong {
		t.Fatalf("expected Strong, got %q", record.Recommendation)
	}
	if record.MaxScore != 50 {
		t.Fatalf("expected max 50, got %d", record.MaxScore)
	}

	want := map[string]int{
		CategoryEnthusiasm:      15,
		CategoryRelevantContent: 15,
		CategoryAvailabilityAck: 10,
		CategoryDetail:          10,
	}
	for category, points := range want {
		got, ok := record.Breakdown.Get(category)
		if !ok {
			t.Fatalf("missing breakdown category %q", category)
		}
		if got.Points != points {
			t.Errorf("%s: expected %d points, got %d", category, points, got.Points)
		}
	}
}

func TestScoreReplyWeak(t *testing.T) {
	t.Parallel()

	record := ScoreReply("ok", nil)

	if record.Score >= 20 {
		t.Fatalf("expected score below 20, got %d", record.Score)
	}
	if record.Recommendation != ReplyWeak {
		t.Fatalf("expected Weak, got %q", record.Recommendation)
	}
	if record.Text != "ok" {
		t.Fatalf("expected raw text preserved, got %q", record.Text)
	}
}

func TestScoreReplyCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		category string
		expect   int
	}{
		{
			name:     "single enthusiasm word",
			text:     "I am excited.",
			category: CategoryEnthusiasm,
			expect:   5,
		},
		{
			name:     "two relevant words",
			text:     "I worked a chairlift at a resort.",
			category: CategoryRelevantContent,
			expect:   9, // chairlift also matches "lift"
		},
		{
			name:     "availability capped at 10",
			text:     "Available every weekend, holiday, morning and shift, any schedule.",
			category: CategoryAvailabilityAck,
			expect:   10,
		},
		{
			name:     "detail is word count over five",
			text:     "one two three four five six seven eight nine ten",
			category: CategoryDetail,
			expect:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			record := ScoreReply(tt.text, nil)
			got, ok := record.Breakdown.Get(tt.category)
			if !ok {
				t.Fatalf("missing breakdown category %q", tt.category)
			}
			if got.Points != tt.expect {
				t.Fatalf("expected %d points, got %d", tt.expect, got.Points)
			}
		})
	}
}

func TestScoreReplyDeterministicMath(t *testing.T) {
	t.Parallel()

	first := ScoreReply("Excited to confirm my weekend availability for the lift role.", nil)
	second := ScoreReply("Excited to confirm my weekend availability for the lift role.", nil)

	if first.Score != second.Score {
		t.Fatalf("scores differ: %d vs %d", first.Score, second.Score)
	}
	if first.Score != first.Breakdown.Total() {
		t.Fatalf("total %d does not match breakdown sum %d", first.Score, first.Breakdown.Total())
	}
}
