package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mountainops/lifthire/internal/hiring"
	"github.com/mountainops/lifthire/internal/logger"
	"github.com/mountainops/lifthire/internal/outreach"
	"github.com/mountainops/lifthire/internal/scoring"
	"github.com/mountainops/lifthire/internal/utils"
)

// Bulk actions.
const (
	ActionSendInvite    = "send_invite"
	ActionReject        = "reject"
	ActionBookInterview = "book_interview"
)

const (
	interviewLocation = "Vail Mountain Operations HQ"
	interviewDuration = "30 min"
)

// BulkResult is the per-applicant outcome of a bulk action. Field names
// are part of the wire contract.
type BulkResult struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Email         string                `json:"email,omitempty"`
	Action        string                `json:"action"`
	Message       string                `json:"message"`
	Subject       string                `json:"subject,omitempty"`
	Body          string                `json:"body,omitempty"`
	CalendarEvent *hiring.CalendarEvent `json:"calendar_event,omitempty"`
}

// BulkReport aggregates a best-effort batch: unknown ids are skipped,
// Processed counts only the applicants actually acted on.
type BulkReport struct {
	Action    string       `json:"action"`
	EmailMode string       `json:"email_mode,omitempty"`
	Processed int          `json:"processed"`
	Results   []BulkResult `json:"results"`
}

// ApplyBulkAction runs one action over the given applicant ids.
// Unknown ids are silently skipped; partial success is normal. The
// action itself must be one of the three known actions.
func (e *Engine) ApplyBulkAction(ctx context.Context, ids []string, action string) (*BulkReport, error) {
	switch action {
	case ActionSendInvite, ActionReject, ActionBookInterview:
	default:
		return nil, fmt.Errorf("unknown bulk action %q", action)
	}

	cfg := e.settings.Get()
	report := &BulkReport{Action: action}
	if action == ActionSendInvite {
		report.EmailMode = cfg.Email.Mode
	}

	for _, id := range ids {
		a, err := e.store.Get(id)
		if err != nil {
			e.logger.Debug("bulk action skipping unknown id", logger.CommonFields(id, action)...)
			continue
		}

		var result BulkResult
		switch action {
		case ActionSendInvite:
			result, err = e.sendInvite(ctx, a)
		case ActionReject:
			result = e.rejectApplicant(a)
		case ActionBookInterview:
			result = e.bookInterview(a, len(report.Results))
		}
		if err != nil {
			return nil, err
		}

		if err := e.store.Put(a); err != nil {
			return nil, err
		}
		report.Results = append(report.Results, result)
	}

	report.Processed = len(report.Results)
	e.logger.Info("bulk action complete",
		zap.String(logger.FieldAction, action),
		zap.Int("requested", len(ids)),
		zap.Int("processed", report.Processed),
	)
	return report, nil
}

// sendInvite renders the invite from the current templates, delivers it
// through the sender, stamps the send time, and moves the applicant to
// awaiting_reply.
func (e *Engine) sendInvite(ctx context.Context, a *hiring.Applicant) (BulkResult, error) {
	preview := e.renderEmail(a)

	msg := outreach.Message{
		To:      a.Email,
		ToName:  a.FullName(),
		Subject: preview.Subject,
		Body:    preview.Body,
	}
	if err := e.sender.Send(ctx, msg); err != nil {
		return BulkResult{}, fmt.Errorf("sending invite to %s: %w", a.ID, err)
	}

	a.EmailSentAt = e.now().UTC().Format(time.RFC3339)
	a.Status = hiring.StatusAwaitingReply

	return BulkResult{
		ID:      a.ID,
		Name:    a.FullName(),
		Email:   a.Email,
		Action:  "invite_sent",
		Message: fmt.Sprintf("Interview invite sent to %s", a.Email),
		Subject: preview.Subject,
		Body:    preview.Body,
	}, nil
}

func (e *Engine) rejectApplicant(a *hiring.Applicant) BulkResult {
	a.Status = hiring.StatusRejected
	return BulkResult{
		ID:      a.ID,
		Name:    a.FullName(),
		Action:  "rejected",
		Message: fmt.Sprintf("Rejection email sent to %s", a.Email),
	}
}

// bookInterview synthesizes a calendar event and moves the applicant to
// booked. Slots cycle through eight hours by position within the batch,
// formatted the way the calendar front end expects.
func (e *Engine) bookInterview(a *hiring.Applicant, position int) BulkResult {
	slotHour := 8 + (position % 8)
	event := &hiring.CalendarEvent{
		Title:    fmt.Sprintf("%s Interview — %s", e.job.Title, a.FullName()),
		Date:     e.settings.Get().InterviewDate,
		Time:     fmt.Sprintf("%02d:00 AM", slotHour),
		Location: interviewLocation,
		Duration: interviewDuration,
	}

	a.CalendarEvent = event
	a.Status = hiring.StatusBooked

	return BulkResult{
		ID:            a.ID,
		Name:          a.FullName(),
		Action:        "interview_booked",
		Message:       fmt.Sprintf("Calendar invite created for %s", a.FullName()),
		CalendarEvent: event,
	}
}

// EmailPreview is a rendered invite that has not been sent. Previewing
// performs no mutation at all.
type EmailPreview struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Subject   string   `json:"subject"`
	Body      string   `json:"body"`
	Questions []string `json:"questions"`
}

// PreviewEmail renders the invite for one applicant without sending it
// or touching their status.
func (e *Engine) PreviewEmail(id string) (*EmailPreview, error) {
	a, err := e.store.Get(id)
	if err != nil {
		return nil, err
	}
	preview := e.renderEmail(a)
	return &preview, nil
}

func (e *Engine) renderEmail(a *hiring.Applicant) EmailPreview {
	cfg := e.settings.Get()
	questions := outreach.SelectQuestions(a, cfg.Questions)

	rc := outreach.RenderContext{
		Applicant:        a,
		Job:              e.job,
		Questions:        questions,
		InterviewDetails: cfg.InterviewDetails,
	}

	return EmailPreview{
		ID:        a.ID,
		Name:      a.FullName(),
		Email:     a.Email,
		Subject:   outreach.Render(cfg.Email.Subject, rc),
		Body:      outreach.Render(cfg.Email.Body, rc),
		Questions: questions,
	}
}

// SimulateReply fabricates a candidate reply for the applicant, scores
// it, and attaches the resulting response record.
func (e *Engine) SimulateReply(id string) (*hiring.Applicant, error) {
	a, err := e.store.Get(id)
	if err != nil {
		return nil, err
	}

	text := e.simulator.Reply(a)
	record := scoring.ScoreReply(text, a)
	record.ReceivedAt = e.now().UTC()
	a.ResponseData = record

	if err := e.store.Put(a); err != nil {
		return nil, err
	}

	logger.WithCommonFields(e.logger, a.ID, "simulate_reply").Info("simulated reply scored",
		zap.Int("score", record.Score),
		zap.String("recommendation", record.Recommendation),
		zap.String("reply", utils.TruncateForLog(text, 80)),
	)
	return a, nil
}
