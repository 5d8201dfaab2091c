package settings

import (
	"fmt"
	"sync"

	"github.com/mitchellh/mapstructure"
)

// Email delivery modes. Real delivery is still routed through the mock
// sender; the mode only changes what bulk results report.
const (
	EmailModeMock = "mock"
	EmailModeReal = "real"
)

// Scoring holds the pipeline thresholds.
type Scoring struct {
	AutoPromoteThreshold int `json:"auto_promote_threshold" mapstructure:"auto_promote_threshold"`
	StrongHireThreshold  int `json:"strong_hire_threshold" mapstructure:"strong_hire_threshold"`
	ConsiderThreshold    int `json:"consider_threshold" mapstructure:"consider_threshold"`
	// ScoreDelayMs paces score-all batches to mimic a remote scoring
	// service. Zero disables the delay.
	ScoreDelayMs int `json:"score_delay_ms" mapstructure:"score_delay_ms"`
}

// Email holds outbound mail configuration and templates.
type Email struct {
	Mode    string `json:"mode" mapstructure:"mode"`
	From    string `json:"from" mapstructure:"from"`
	ReplyTo string `json:"reply_to" mapstructure:"reply_to"`
	Subject string `json:"subject" mapstructure:"subject"`
	Body    string `json:"body" mapstructure:"body"`
}

// Settings is the process-wide mutable configuration read by the
// outreach components on every invocation.
type Settings struct {
	Scoring          Scoring  `json:"scoring" mapstructure:"scoring"`
	Email            Email    `json:"email" mapstructure:"email"`
	InterviewDetails string   `json:"interview_details" mapstructure:"interview_details"`
	InterviewDate    string   `json:"interview_date" mapstructure:"interview_date"`
	Questions        []string `json:"questions" mapstructure:"questions"`
}

// Defaults returns the compiled-in configuration.
func Defaults() Settings {
	return Settings{
		Scoring: Scoring{
			AutoPromoteThreshold: 75,
			StrongHireThreshold:  75,
			ConsiderThreshold:    55,
		},
		Email: Email{
			Mode:    EmailModeMock,
			From:    "hr@mountainops.example",
			ReplyTo: "hr@mountainops.example",
			Subject: "Interview Invitation — {job_title} at {location}",
			Body: "Hi {first_name},\n\n" +
				"We reviewed your application for the {job_title} position and are impressed with your background. " +
				"{tailored_note}We'd love to schedule a {interview_details}.\n\n" +
				"To help us prepare, here are a few questions we plan to cover:\n{questions}\n\n" +
				"Please reply to confirm your availability this week.\n\n" +
				"Best,\nMountain Ops HR Team",
		},
		InterviewDetails: "30-minute interview at Vail Mountain Operations HQ",
		InterviewDate:    "2026-03-05",
		Questions: []string{
			"Describe your experience operating or maintaining lift equipment.",
			"What shifts are you available for, including weekends and early mornings?",
			"Which certifications do you currently hold, such as OSHA?",
			"Walk us through how you would handle a safety incident at the loading ramp.",
			"How do you keep guests moving smoothly during peak loading times?",
			"Tell us about working outdoors in severe winter weather.",
			"How do you communicate equipment problems to your supervisor?",
			"What does a pre-opening equipment check look like to you?",
		},
	}
}

// Holder owns the single Settings instance for the process. All reads
// return a copy; writes replace the whole value.
type Holder struct {
	mu      sync.RWMutex
	current Settings
}

// NewHolder builds a holder seeded with the provided settings.
func NewHolder(s Settings) *Holder {
	return &Holder{current: s}
}

// Get returns a copy of the current settings.
func (h *Holder) Get() Settings {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current.clone()
}

// Replace swaps in a whole new settings value.
func (h *Holder) Replace(s Settings) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = s.clone()
}

// Reset restores the compiled-in defaults.
func (h *Holder) Reset() {
	h.Replace(Defaults())
}

// Update applies a partial payload over the current settings. Unknown
// keys are rejected before any mutation, so a malformed payload leaves
// the settings untouched.
func (h *Holder) Update(payload map[string]any) (Settings, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	next := h.current.clone()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &next,
		ErrorUnused: true,
	})
	if err != nil {
		return Settings{}, fmt.Errorf("building settings decoder: %w", err)
	}

	if err := decoder.Decode(payload); err != nil {
		return Settings{}, fmt.Errorf("malformed settings payload: %w", err)
	}

	if err := next.validate(); err != nil {
		return Settings{}, err
	}

	h.current = next
	return next.clone(), nil
}

func (s Settings) validate() error {
	if s.Email.Mode != EmailModeMock && s.Email.Mode != EmailModeReal {
		return fmt.Errorf("email mode must be %q or %q, got %q", EmailModeMock, EmailModeReal, s.Email.Mode)
	}
	if s.Scoring.ScoreDelayMs < 0 {
		return fmt.Errorf("score_delay_ms must not be negative")
	}
	return nil
}

func (s Settings) clone() Settings {
	out := s
	out.Questions = append([]string(nil), s.Questions...)
	return out
}
