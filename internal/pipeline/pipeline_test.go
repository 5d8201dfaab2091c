package pipeline

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/mountainops/lifthire/internal/hiring"
	"github.com/mountainops/lifthire/internal/outreach"
	"github.com/mountainops/lifthire/internal/scoring"
	"github.com/mountainops/lifthire/internal/settings"
	"github.com/mountainops/lifthire/internal/store"
)

var testTime = time.Date(2026, 2, 27, 9, 30, 0, 0, time.UTC)

func strongApplicant(id string) *hiring.Applicant {
	return &hiring.Applicant{
		ID:            id,
		FirstName:     "Jake",
		LastName:      "Morrison",
		Email:         "jake.morrison@email.com",
		Location:      "Breckenridge, CO",
		DistanceMiles: 4.2,
		Status:        hiring.StatusNew,
		Resume: hiring.Resume{
			Summary: "5 years outdoor recreation experience at a ski resort.",
			Experience: []hiring.ExperienceEntry{
				{Title: "Lift Operator", Company: "Keystone Resort", Years: 3, SkiRelated: true},
			},
			Certifications: []string{"OSHA 10", "First Aid/CPR"},
			Availability:   hiring.Availability{Weekends: true, Holidays: true, EarlyAM: true},
		},
	}
}

func weakApplicant(id string) *hiring.Applicant {
	return &hiring.Applicant{
		ID:            id,
		FirstName:     "Quinn",
		LastName:      "Lee",
		Email:         "quinn.lee@email.com",
		Location:      "Grand Junction, CO",
		DistanceMiles: 112.0,
		Status:        hiring.StatusNew,
		Resume: hiring.Resume{
			Summary: "Retail manager seeking career change.",
			Experience: []hiring.ExperienceEntry{
				{Title: "Store Manager", Company: "Retail Chain", Years: 8, SkiRelated: false},
			},
		},
	}
}

func testEngine(t *testing.T, applicants ...*hiring.Applicant) (*Engine, *outreach.MockSender) {
	t.Helper()

	st := store.NewMemory()
	for _, a := range applicants {
		if err := st.Put(a); err != nil {
			t.Fatalf("seeding store: %v", err)
		}
	}

	sender := outreach.NewMockSender(nil)
	engine := New(Deps{
		Store:     st,
		Settings:  settings.NewHolder(settings.Defaults()),
		Sender:    sender,
		Simulator: outreach.NewSimulator(rand.NewSource(1)),
		Job:       hiring.LiftOperatorProfile,
		Now:       func() time.Time { return testTime },
	})
	return engine, sender
}

func TestScoreOne(t *testing.T) {
	t.Parallel()

	engine, _ := testEngine(t, strongApplicant("PAY-0001"))

	a, err := engine.ScoreOne("PAY-0001")
	if err != nil {
		t.Fatalf("ScoreOne() error: %v", err)
	}
	if a.ScoreData == nil || a.ScoreData.Score != 81 {
		t.Fatalf("ScoreData = %+v, want score 81", a.ScoreData)
	}
	// 81 clears the default auto-promote threshold of 75.
	if a.Status != hiring.StatusReviewing {
		t.Fatalf("status = %q, want %q", a.Status, hiring.StatusReviewing)
	}

	stored, err := engine.Get("PAY-0001")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if stored.ScoreData == nil || stored.Status != hiring.StatusReviewing {
		t.Fatalf("stored record not updated: %+v", stored)
	}
}

func TestScoreOneUnknownID(t *testing.T) {
	t.Parallel()

	engine, _ := testEngine(t)
	if _, err := engine.ScoreOne("PAY-9999"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestScoreAll(t *testing.T) {
	t.Parallel()

	engine, _ := testEngine(t, weakApplicant("PAY-0002"), strongApplicant("PAY-0001"))

	report, err := engine.ScoreAll(context.Background())
	if err != nil {
		t.Fatalf("ScoreAll() error: %v", err)
	}

	if report.Scored != 2 {
		t.Fatalf("Scored = %d, want 2", report.Scored)
	}
	if report.AutoPromoted != 1 {
		t.Fatalf("AutoPromoted = %d, want 1", report.AutoPromoted)
	}
	if report.Threshold != 75 {
		t.Fatalf("Threshold = %d, want 75", report.Threshold)
	}

	// Ranked by score descending, not store order.
	if report.Results[0].ID != "PAY-0001" || report.Results[1].ID != "PAY-0002" {
		t.Fatalf("rank order = %s, %s", report.Results[0].ID, report.Results[1].ID)
	}
	if report.Results[0].Score <= report.Results[1].Score {
		t.Fatalf("scores not descending: %d, %d", report.Results[0].Score, report.Results[1].Score)
	}
}

func TestScoreAllRescoreReplacesRecord(t *testing.T) {
	t.Parallel()

	engine, _ := testEngine(t, strongApplicant("PAY-0001"))

	if _, err := engine.ScoreAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	first, _ := engine.Get("PAY-0001")

	if _, err := engine.ScoreAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	second, _ := engine.Get("PAY-0001")

	if first.ScoreData.Score != second.ScoreData.Score {
		t.Fatalf("rescore changed a deterministic score: %d vs %d",
			first.ScoreData.Score, second.ScoreData.Score)
	}
	// Already reviewing, so no second promotion.
	if second.Status != hiring.StatusReviewing {
		t.Fatalf("status = %q after rescore", second.Status)
	}
}

func TestUpdateStatus(t *testing.T) {
	t.Parallel()

	engine, _ := testEngine(t, strongApplicant("PAY-0001"))

	a, err := engine.UpdateStatus("PAY-0001", "shortlisted")
	if err != nil {
		t.Fatalf("UpdateStatus() error: %v", err)
	}
	if a.Status != hiring.StatusShortlisted {
		t.Fatalf("status = %q", a.Status)
	}
}

func TestUpdateStatusInvalidLeavesRecord(t *testing.T) {
	t.Parallel()

	engine, _ := testEngine(t, strongApplicant("PAY-0001"))

	if _, err := engine.UpdateStatus("PAY-0001", "archived"); !errors.Is(err, hiring.ErrInvalidStatus) {
		t.Fatalf("error = %v, want ErrInvalidStatus", err)
	}

	a, _ := engine.Get("PAY-0001")
	if a.Status != hiring.StatusNew {
		t.Fatalf("status mutated to %q on invalid update", a.Status)
	}
}

func TestUpdateStatusUnknownID(t *testing.T) {
	t.Parallel()

	engine, _ := testEngine(t)
	if _, err := engine.UpdateStatus("PAY-9999", "hired"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestBulkSendInvite(t *testing.T) {
	t.Parallel()

	engine, sender := testEngine(t, strongApplicant("PAY-0001"))

	report, err := engine.ApplyBulkAction(context.Background(), []string{"PAY-0001", "PAY-9999"}, ActionSendInvite)
	if err != nil {
		t.Fatalf("ApplyBulkAction() error: %v", err)
	}

	// Unknown id skipped; exactly one applicant processed.
	if report.Processed != 1 || len(report.Results) != 1 {
		t.Fatalf("Processed = %d, Results = %d", report.Processed, len(report.Results))
	}

	result := report.Results[0]
	if result.Action != "invite_sent" {
		t.Fatalf("Action = %q", result.Action)
	}
	if !strings.Contains(result.Body, "Jake") {
		t.Fatalf("invite body not personalized: %q", result.Body)
	}
	if strings.Contains(result.Subject, "{job_title}") {
		t.Fatalf("subject placeholder unresolved: %q", result.Subject)
	}

	a, _ := engine.Get("PAY-0001")
	if a.Status != hiring.StatusAwaitingReply {
		t.Fatalf("status = %q, want %q", a.Status, hiring.StatusAwaitingReply)
	}
	if a.EmailSentAt != testTime.UTC().Format(time.RFC3339) {
		t.Fatalf("EmailSentAt = %q", a.EmailSentAt)
	}

	if sent := sender.Sent(); len(sent) != 1 || sent[0].To != "jake.morrison@email.com" {
		t.Fatalf("sender recorded %+v", sent)
	}
}

func TestBulkReject(t *testing.T) {
	t.Parallel()

	engine, _ := testEngine(t, strongApplicant("PAY-0001"))

	report, err := engine.ApplyBulkAction(context.Background(), []string{"PAY-0001"}, ActionReject)
	if err != nil {
		t.Fatalf("ApplyBulkAction() error: %v", err)
	}
	if report.Processed != 1 || report.Results[0].Action != "rejected" {
		t.Fatalf("report = %+v", report)
	}

	a, _ := engine.Get("PAY-0001")
	if a.Status != hiring.StatusRejected {
		t.Fatalf("status = %q", a.Status)
	}
}

func TestBulkBookInterviewSlots(t *testing.T) {
	t.Parallel()

	first := strongApplicant("PAY-0001")
	second := weakApplicant("PAY-0002")
	engine, _ := testEngine(t, first, second)

	report, err := engine.ApplyBulkAction(context.Background(),
		[]string{"PAY-0001", "PAY-0002"}, ActionBookInterview)
	if err != nil {
		t.Fatalf("ApplyBulkAction() error: %v", err)
	}

	if report.Processed != 2 {
		t.Fatalf("Processed = %d", report.Processed)
	}

	// Slots cycle by batch position starting at 8.
	if got := report.Results[0].CalendarEvent.Time; got != "08:00 AM" {
		t.Fatalf("slot 0 = %q", got)
	}
	if got := report.Results[1].CalendarEvent.Time; got != "09:00 AM" {
		t.Fatalf("slot 1 = %q", got)
	}

	a, _ := engine.Get("PAY-0001")
	if a.Status != hiring.StatusBooked || a.CalendarEvent == nil {
		t.Fatalf("applicant not booked: %+v", a)
	}
	if a.CalendarEvent.Date != "2026-03-05" || a.CalendarEvent.Duration != "30 min" {
		t.Fatalf("calendar event = %+v", a.CalendarEvent)
	}
	if !strings.Contains(a.CalendarEvent.Title, "Jake Morrison") {
		t.Fatalf("event title = %q", a.CalendarEvent.Title)
	}
}

func TestBulkUnknownAction(t *testing.T) {
	t.Parallel()

	engine, _ := testEngine(t, strongApplicant("PAY-0001"))
	if _, err := engine.ApplyBulkAction(context.Background(), []string{"PAY-0001"}, "promote"); err == nil {
		t.Fatal("unknown action accepted")
	}

	a, _ := engine.Get("PAY-0001")
	if a.Status != hiring.StatusNew {
		t.Fatalf("status mutated by rejected action: %q", a.Status)
	}
}

func TestPreviewEmailDoesNotMutate(t *testing.T) {
	t.Parallel()

	engine, sender := testEngine(t, strongApplicant("PAY-0001"))

	preview, err := engine.PreviewEmail("PAY-0001")
	if err != nil {
		t.Fatalf("PreviewEmail() error: %v", err)
	}

	if !strings.Contains(preview.Body, "Jake") {
		t.Fatalf("body not personalized: %q", preview.Body)
	}
	if len(preview.Questions) == 0 || len(preview.Questions) > 3 {
		t.Fatalf("questions = %q", preview.Questions)
	}

	a, _ := engine.Get("PAY-0001")
	if a.Status != hiring.StatusNew || a.EmailSentAt != "" {
		t.Fatalf("preview mutated the applicant: %+v", a)
	}
	if len(sender.Sent()) != 0 {
		t.Fatal("preview sent an email")
	}
}

func TestSimulateReply(t *testing.T) {
	t.Parallel()

	engine, _ := testEngine(t, strongApplicant("PAY-0001"))

	if _, err := engine.ScoreOne("PAY-0001"); err != nil {
		t.Fatal(err)
	}
	a, err := engine.SimulateReply("PAY-0001")
	if err != nil {
		t.Fatalf("SimulateReply() error: %v", err)
	}

	if a.ResponseData == nil {
		t.Fatal("no response record attached")
	}
	// Strong resume (81) must yield a strong-tier reply.
	if a.ResponseData.Recommendation != scoring.ReplyStrong {
		t.Fatalf("reply graded %q (score %d)", a.ResponseData.Recommendation, a.ResponseData.Score)
	}
	if !a.ResponseData.ReceivedAt.Equal(testTime) {
		t.Fatalf("ReceivedAt = %v", a.ResponseData.ReceivedAt)
	}
}

func TestUploadGeneratesID(t *testing.T) {
	t.Parallel()

	engine, _ := testEngine(t, strongApplicant("PAY-0001"), weakApplicant("PAY-0002"))

	a, err := engine.Upload(UploadRequest{
		FirstName:     "Robin",
		LastName:      "Vance",
		Email:         "robin.vance@email.com",
		DistanceMiles: 6.0,
		ResumeText:    "3 seasons as a chairlift operator. OSHA 10. Weekends and early mornings fine.",
	})
	if err != nil {
		t.Fatalf("Upload() error: %v", err)
	}

	if a.ID != "APP-0003" {
		t.Fatalf("id = %q, want APP-0003", a.ID)
	}
	if a.Status != hiring.StatusNew || a.AppliedDate != "2026-02-27" {
		t.Fatalf("applicant = %+v", a)
	}
	// Extraction wired through.
	if !a.Resume.HasSkiExperience() || a.Resume.SkiYears() != 3 {
		t.Fatalf("extracted resume = %+v", a.Resume)
	}
	if len(a.Resume.Certifications) == 0 || a.Resume.Certifications[0] != "OSHA 10" {
		t.Fatalf("certifications = %q", a.Resume.Certifications)
	}
}

func TestRefreshRestoresSeedRoster(t *testing.T) {
	t.Parallel()

	engine, _ := testEngine(t, strongApplicant("X-1"))

	n, err := engine.Refresh()
	if err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if n != 30 {
		t.Fatalf("Refresh() = %d, want 30", n)
	}

	if _, err := engine.Get("X-1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("pre-refresh record survived: %v", err)
	}
	a, err := engine.Get("PAY-0001")
	if err != nil {
		t.Fatalf("seed applicant missing: %v", err)
	}
	if a.Status != hiring.StatusNew || a.ScoreData != nil {
		t.Fatalf("seed applicant not pristine: %+v", a)
	}
}

func TestSummaryAndDigest(t *testing.T) {
	t.Parallel()

	engine, _ := testEngine(t, strongApplicant("PAY-0001"), weakApplicant("PAY-0002"))
	if _, err := engine.ScoreAll(context.Background()); err != nil {
		t.Fatal(err)
	}

	summary, err := engine.Summary()
	if err != nil {
		t.Fatalf("Summary() error: %v", err)
	}
	if summary.Total != 2 || summary.Scored != 2 {
		t.Fatalf("summary = %+v", summary)
	}

	counts := make(map[hiring.Status]int)
	for _, stage := range summary.Stages {
		counts[stage.Status] = stage.Count
	}
	if counts[hiring.StatusReviewing] != 1 || counts[hiring.StatusNew] != 1 {
		t.Fatalf("stage counts = %+v", counts)
	}

	digest, err := engine.Digest()
	if err != nil {
		t.Fatalf("Digest() error: %v", err)
	}
	if len(digest.TopCandidates) != 2 || digest.TopCandidates[0].ID != "PAY-0001" {
		t.Fatalf("top candidates = %+v", digest.TopCandidates)
	}
	if len(digest.NextActions) == 0 {
		t.Fatal("no next actions suggested")
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	engine, _ := testEngine(t, strongApplicant("PAY-0001"), weakApplicant("PAY-0002"))

	matches, err := engine.Search("morri")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != "PAY-0001" {
		t.Fatalf("matches = %+v", matches)
	}
}

func TestListFiltered(t *testing.T) {
	t.Parallel()

	engine, _ := testEngine(t, strongApplicant("PAY-0001"), weakApplicant("PAY-0002"))
	if _, err := engine.ScoreAll(context.Background()); err != nil {
		t.Fatalf("ScoreAll() error: %v", err)
	}
	if _, err := engine.UpdateStatus("PAY-0002", "rejected"); err != nil {
		t.Fatalf("UpdateStatus() error: %v", err)
	}

	byStatus, err := engine.ListFiltered(ListFilter{Status: "rejected"})
	if err != nil {
		t.Fatalf("ListFiltered() error: %v", err)
	}
	if byStatus.Len() != 1 || byStatus.Items[0].ID != "PAY-0002" {
		t.Fatalf("status filter = %+v", byStatus.Items)
	}

	byScore, err := engine.ListFiltered(ListFilter{MinScore: 75})
	if err != nil {
		t.Fatalf("ListFiltered() error: %v", err)
	}
	if byScore.Len() != 1 || byScore.Items[0].ID != "PAY-0001" {
		t.Fatalf("min-score filter = %+v", byScore.Items)
	}

	top, err := engine.ListFiltered(ListFilter{Top: 1})
	if err != nil {
		t.Fatalf("ListFiltered() error: %v", err)
	}
	// Rank order: the strong applicant outranks the weak one.
	if top.Len() != 1 || top.Items[0].ID != "PAY-0001" {
		t.Fatalf("top filter = %+v", top.Items)
	}

	if _, err := engine.ListFiltered(ListFilter{Status: "archived"}); !errors.Is(err, hiring.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestListFilteredSkipsUnscoredOnMinScore(t *testing.T) {
	t.Parallel()

	engine, _ := testEngine(t, strongApplicant("PAY-0001"))

	applicants, err := engine.ListFiltered(ListFilter{MinScore: 1})
	if err != nil {
		t.Fatalf("ListFiltered() error: %v", err)
	}
	if applicants.Len() != 0 {
		t.Fatalf("expected unscored applicants excluded, got %+v", applicants.Items)
	}
}

func TestSelectIDs(t *testing.T) {
	t.Parallel()

	engine, _ := testEngine(t, weakApplicant("PAY-0002"), strongApplicant("PAY-0001"))
	if _, err := engine.ScoreAll(context.Background()); err != nil {
		t.Fatalf("ScoreAll() error: %v", err)
	}

	ids, err := engine.SelectIDs(ListFilter{Top: 2})
	if err != nil {
		t.Fatalf("SelectIDs() error: %v", err)
	}
	// Ids come back in rank order, not store order.
	if len(ids) != 2 || ids[0] != "PAY-0001" || ids[1] != "PAY-0002" {
		t.Fatalf("ids = %q", ids)
	}
}

func TestResolveByName(t *testing.T) {
	t.Parallel()

	engine, _ := testEngine(t, strongApplicant("PAY-0001"), weakApplicant("PAY-0002"))

	a, err := engine.ResolveByName("jake")
	if err != nil {
		t.Fatalf("ResolveByName() error: %v", err)
	}
	if a.ID != "PAY-0001" {
		t.Fatalf("resolved %s, want PAY-0001", a.ID)
	}

	if _, err := engine.ResolveByName("nobody"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Both seeded names contain an "e"; an ambiguous query must not
	// silently pick one.
	_, err = engine.ResolveByName("e")
	if err == nil || !strings.Contains(err.Error(), "matches 2 applicants") {
		t.Fatalf("expected ambiguity error, got %v", err)
	}
}
