package pipeline

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/mountainops/lifthire/internal/hiring"
	"github.com/mountainops/lifthire/internal/logger"
	"github.com/mountainops/lifthire/internal/scoring"
	"github.com/mountainops/lifthire/internal/utils"
)

// ScoredResult is one row of a score-all report, ranked by score.
type ScoredResult struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Score          int           `json:"score"`
	Recommendation string        `json:"recommendation"`
	Status         hiring.Status `json:"status"`
}

// ScoreAllReport summarizes a full batch scoring run.
type ScoreAllReport struct {
	Scored       int            `json:"scored"`
	AutoPromoted int            `json:"auto_promoted"`
	Threshold    int            `json:"threshold"`
	Results      []ScoredResult `json:"results"`
}

// scorer builds a resume scorer from the current settings, so threshold
// edits apply to the very next scoring call.
func (e *Engine) scorer() *scoring.ResumeScorer {
	cfg := e.settings.Get().Scoring
	return &scoring.ResumeScorer{
		StrongHire: cfg.StrongHireThreshold,
		Consider:   cfg.ConsiderThreshold,
	}
}

// ScoreOne rescores a single applicant, replacing any previous score
// record, and auto-promotes a new applicant that clears the threshold.
func (e *Engine) ScoreOne(id string) (*hiring.Applicant, error) {
	a, err := e.store.Get(id)
	if err != nil {
		return nil, err
	}

	promoted := e.scoreApplicant(a)
	if err := e.store.Put(a); err != nil {
		return nil, err
	}

	e.logger.Info("applicant scored",
		zap.String(logger.FieldApplicant, a.ID),
		zap.Int("score", a.ScoreData.Score),
		zap.String("recommendation", a.ScoreData.Recommendation),
		zap.Bool("auto_promoted", promoted),
	)
	return a, nil
}

// ScoreAll scores every applicant in the store. The batch runs to
// completion; ctx only cuts the optional per-item pacing delay short.
// Results are ranked by score descending regardless of store order.
func (e *Engine) ScoreAll(ctx context.Context) (*ScoreAllReport, error) {
	applicants, err := e.store.List()
	if err != nil {
		return nil, err
	}

	cfg := e.settings.Get().Scoring
	delay := time.Duration(cfg.ScoreDelayMs) * time.Millisecond

	report := &ScoreAllReport{Threshold: cfg.AutoPromoteThreshold}
	for _, a := range applicants.Items {
		if delay > 0 {
			if err := utils.WaitFor(ctx, delay); err != nil {
				return nil, err
			}
		}

		if e.scoreApplicant(a) {
			report.AutoPromoted++
		}
		if err := e.store.Put(a); err != nil {
			return nil, err
		}

		report.Scored++
		report.Results = append(report.Results, ScoredResult{
			ID:             a.ID,
			Name:           a.FullName(),
			Score:          a.ScoreData.Score,
			Recommendation: a.ScoreData.Recommendation,
			Status:         a.Status,
		})
	}

	sort.SliceStable(report.Results, func(i, j int) bool {
		return report.Results[i].Score > report.Results[j].Score
	})

	e.logger.Info("batch scoring complete",
		zap.Int("scored", report.Scored),
		zap.Int("auto_promoted", report.AutoPromoted),
		zap.Int("threshold", report.Threshold),
	)
	return report, nil
}

// scoreApplicant attaches a fresh score record and reports whether the
// applicant was auto-promoted from new to reviewing.
func (e *Engine) scoreApplicant(a *hiring.Applicant) bool {
	a.ScoreData = e.scorer().Score(a)

	threshold := e.settings.Get().Scoring.AutoPromoteThreshold
	if a.Status == hiring.StatusNew && a.ScoreData.Score >= threshold {
		a.Status = hiring.StatusReviewing
		return true
	}
	return false
}
