package pipeline

import (
	"fmt"

	"github.com/mountainops/lifthire/internal/hiring"
)

// StageCount is one pipeline stage with its applicant count.
type StageCount struct {
	Status hiring.Status `json:"status"`
	Label  string        `json:"label"`
	Count  int           `json:"count"`
}

// SummaryReport counts the pipeline by stage in fixed stage order.
type SummaryReport struct {
	Total  int          `json:"total"`
	Scored int          `json:"scored"`
	Stages []StageCount `json:"stages"`
}

// Summary reports the pipeline stage counts.
func (e *Engine) Summary() (*SummaryReport, error) {
	applicants, err := e.store.List()
	if err != nil {
		return nil, err
	}

	counts := applicants.CountByStatus()
	report := &SummaryReport{Total: applicants.Len()}
	for _, a := range applicants.Items {
		if a.ScoreData != nil {
			report.Scored++
		}
	}
	for _, status := range hiring.StageOrder {
		report.Stages = append(report.Stages, StageCount{
			Status: status,
			Label:  status.Display(),
			Count:  counts[status],
		})
	}
	return report, nil
}

// DigestReport is the daily operator briefing: stage counts, the
// current top candidates, and suggested next actions.
type DigestReport struct {
	Summary       *SummaryReport `json:"summary"`
	TopCandidates []ScoredResult `json:"top_candidates"`
	NextActions   []string       `json:"next_actions"`
}

const digestTopN = 3

// Digest builds the daily briefing. Suggestions follow the stage the
// pipeline is stuck in: unscored applicants first, then the stages in
// funnel order.
func (e *Engine) Digest() (*DigestReport, error) {
	summary, err := e.Summary()
	if err != nil {
		return nil, err
	}

	applicants, err := e.List()
	if err != nil {
		return nil, err
	}

	report := &DigestReport{Summary: summary}
	for _, a := range applicants.Items {
		if a.ScoreData == nil || len(report.TopCandidates) >= digestTopN {
			break
		}
		report.TopCandidates = append(report.TopCandidates, ScoredResult{
			ID:             a.ID,
			Name:           a.FullName(),
			Score:          a.ScoreData.Score,
			Recommendation: a.ScoreData.Recommendation,
			Status:         a.Status,
		})
	}

	report.NextActions = nextActions(summary, applicants)
	return report, nil
}

func nextActions(summary *SummaryReport, applicants *hiring.Applicants) []string {
	counts := make(map[hiring.Status]int, len(summary.Stages))
	for _, stage := range summary.Stages {
		counts[stage.Status] = stage.Count
	}

	actions := make([]string, 0, 4)
	if unscored := summary.Total - summary.Scored; unscored > 0 {
		actions = append(actions, fmt.Sprintf("Score %d unscored applicants", unscored))
	}
	if n := counts[hiring.StatusReviewing]; n > 0 {
		actions = append(actions, fmt.Sprintf("Review %d applicants and shortlist the strongest", n))
	}
	if n := counts[hiring.StatusShortlisted]; n > 0 {
		actions = append(actions, fmt.Sprintf("Send interview invites to %d shortlisted applicants", n))
	}
	if n := counts[hiring.StatusAwaitingReply]; n > 0 {
		actions = append(actions, fmt.Sprintf("Follow up on %d invites awaiting a reply", n))
	}
	if n := counts[hiring.StatusBooked]; n > 0 {
		actions = append(actions, fmt.Sprintf("Prepare for %d booked interviews", n))
	}
	if len(actions) == 0 && applicants.Len() > 0 {
		actions = append(actions, "Pipeline is quiet; refresh the roster or wait for new applicants")
	}
	return actions
}
