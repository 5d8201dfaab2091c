// Package pipeline implements the applicant evaluation engine: scoring,
// status transitions, bulk outreach actions, and the reporting commands
// built on top of them. All operations run synchronously; shared state
// lives in the applicant store and the settings holder, both mutated by
// whole-record replacement only.
package pipeline

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mountainops/lifthire/internal/hiring"
	"github.com/mountainops/lifthire/internal/intake"
	"github.com/mountainops/lifthire/internal/logger"
	"github.com/mountainops/lifthire/internal/outreach"
	"github.com/mountainops/lifthire/internal/settings"
	"github.com/mountainops/lifthire/internal/store"
)

// Deps are the engine's collaborators. Store and Settings are required;
// the rest default sensibly in New.
type Deps struct {
	Store     store.ApplicantStore
	Settings  *settings.Holder
	Sender    outreach.Sender
	Simulator *outreach.Simulator
	Logger    *zap.Logger
	Job       hiring.JobProfile
	// Now stamps emails and replies; tests pin it.
	Now func() time.Time
}

type Engine struct {
	store     store.ApplicantStore
	settings  *settings.Holder
	sender    outreach.Sender
	simulator *outreach.Simulator
	logger    *zap.Logger
	job       hiring.JobProfile
	now       func() time.Time
}

func New(deps Deps) *Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Sender == nil {
		deps.Sender = outreach.NewMockSender(deps.Logger)
	}
	if deps.Simulator == nil {
		deps.Simulator = outreach.NewSimulator(rand.NewSource(time.Now().UnixNano()))
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Engine{
		store:     deps.Store,
		settings:  deps.Settings,
		sender:    deps.Sender,
		simulator: deps.Simulator,
		logger:    deps.Logger,
		job:       deps.Job,
		now:       deps.Now,
	}
}

// Job returns the fixed job profile applicants are evaluated against.
func (e *Engine) JobProfile() hiring.JobProfile {
	return e.job
}

// Get returns one applicant by id.
func (e *Engine) Get(id string) (*hiring.Applicant, error) {
	return e.store.Get(id)
}

// List returns all applicants ranked by resume score descending,
// unscored applicants last.
func (e *Engine) List() (*hiring.Applicants, error) {
	applicants, err := e.store.List()
	if err != nil {
		return nil, err
	}
	applicants.SortByScore()
	return applicants, nil
}

// Search finds applicants whose full name contains the query,
// case-insensitively.
func (e *Engine) Search(query string) ([]*hiring.Applicant, error) {
	applicants, err := e.store.List()
	if err != nil {
		return nil, err
	}
	return applicants.FindByName(query), nil
}

// ListFilter narrows a ranked listing. Zero values mean no constraint.
type ListFilter struct {
	Status   string
	MinScore int
	Top      int
}

// ListFiltered returns the ranked applicant list narrowed by status,
// minimum resume score, and a top-N cut, in that order. An unknown
// status is rejected before the store is read.
func (e *Engine) ListFiltered(f ListFilter) (*hiring.Applicants, error) {
	var status hiring.Status
	if f.Status != "" {
		parsed, err := hiring.ParseStatus(f.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	applicants, err := e.List()
	if err != nil {
		return nil, err
	}

	filtered := &hiring.Applicants{}
	for _, a := range applicants.Items {
		if status != "" && a.Status != status {
			continue
		}
		if f.MinScore > 0 && (a.ScoreData == nil || a.ScoreData.Score < f.MinScore) {
			continue
		}
		filtered.Items = append(filtered.Items, a)
	}

	if f.Top > 0 && filtered.Len() > f.Top {
		filtered.Items = filtered.Items[:f.Top]
	}
	return filtered, nil
}

// SelectIDs resolves a filter to the matching applicant ids in rank
// order, ready to feed a bulk action.
func (e *Engine) SelectIDs(f ListFilter) ([]string, error) {
	applicants, err := e.ListFiltered(f)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, applicants.Len())
	for _, a := range applicants.Items {
		ids = append(ids, a.ID)
	}
	return ids, nil
}

// ResolveByName finds exactly one applicant whose name contains the
// query. No match surfaces ErrNotFound; several matches are an error
// naming the candidates so the operator can switch to ids.
func (e *Engine) ResolveByName(query string) (*hiring.Applicant, error) {
	matches, err := e.Search(query)
	if err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: no applicant named %q", store.ErrNotFound, query)
	case 1:
		return matches[0], nil
	}

	names := make([]string, 0, len(matches))
	for _, a := range matches {
		names = append(names, fmt.Sprintf("%s (%s)", a.FullName(), a.ID))
	}
	return nil, fmt.Errorf("%q matches %d applicants: %s", query, len(matches), strings.Join(names, ", "))
}

// UpdateStatus sets an applicant's pipeline status. The new status is
// validated against the enum before any mutation, so a bad value leaves
// the record untouched.
func (e *Engine) UpdateStatus(id string, raw string) (*hiring.Applicant, error) {
	status, err := hiring.ParseStatus(raw)
	if err != nil {
		return nil, err
	}

	a, err := e.store.Get(id)
	if err != nil {
		return nil, err
	}

	previous := a.Status
	a.Status = status
	if err := e.store.Put(a); err != nil {
		return nil, err
	}

	e.logger.Info("status updated",
		zap.String(logger.FieldApplicant, id),
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
	)
	return a, nil
}

// Refresh resets the store to the seed roster, dropping scores,
// replies, bookings, and status changes. Settings are not touched.
func (e *Engine) Refresh() (int, error) {
	roster, err := intake.SeedRoster()
	if err != nil {
		return 0, err
	}
	if err := e.store.Reset(roster.Items); err != nil {
		return 0, err
	}

	e.logger.Info("store refreshed from seed roster", zap.Int("applicants", roster.Len()))
	return roster.Len(), nil
}

// UploadRequest carries the contact fields and raw resume text for a
// manually added applicant.
type UploadRequest struct {
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Location      string  `json:"location"`
	DistanceMiles float64 `json:"distance_miles"`
	ResumeText    string  `json:"resume_text"`
}

// Upload extracts a structured resume from freeform text and inserts a
// new applicant in status new. Extraction never fails; an unreadable
// resume just produces an empty one.
func (e *Engine) Upload(req UploadRequest) (*hiring.Applicant, error) {
	if req.FirstName == "" {
		return nil, errors.New("first name is required")
	}

	id, err := e.nextUploadID()
	if err != nil {
		return nil, err
	}

	a := &hiring.Applicant{
		ID:            id,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Location:      req.Location,
		DistanceMiles: req.DistanceMiles,
		AppliedDate:   e.now().Format("2006-01-02"),
		Status:        hiring.StatusNew,
		Resume:        intake.Extract(req.ResumeText),
	}

	if err := e.store.Put(a); err != nil {
		return nil, err
	}

	e.logger.Info("resume uploaded",
		zap.String(logger.FieldApplicant, id),
		zap.String("name", a.FullName()),
	)
	return a, nil
}

// nextUploadID continues the APP-NNNN numbering above the highest id
// already present.
func (e *Engine) nextUploadID() (string, error) {
	applicants, err := e.store.List()
	if err != nil {
		return "", err
	}

	next := applicants.Len() + 1
	for {
		id := fmt.Sprintf("APP-%04d", next)
		if applicants.FindByID(id) == nil {
			return id, nil
		}
		next++
	}
}
