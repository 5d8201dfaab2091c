package intake

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mountainops/lifthire/internal/hiring"
	"github.com/mountainops/lifthire/internal/scoring"
)

func TestSeedRoster(t *testing.T) {
	t.Parallel()

	roster, err := SeedRoster()
	if err != nil {
		t.Fatalf("SeedRoster() error: %v", err)
	}

	if roster.Len() != 30 {
		t.Fatalf("roster size = %d, want 30", roster.Len())
	}

	seen := make(map[string]bool)
	for _, a := range roster.Items {
		if seen[a.ID] {
			t.Fatalf("duplicate applicant id %s", a.ID)
		}
		seen[a.ID] = true
		if a.Status != hiring.StatusNew {
			t.Fatalf("%s: status = %q, want %q", a.ID, a.Status, hiring.StatusNew)
		}
		if a.Email == "" || a.FirstName == "" {
			t.Fatalf("%s: incomplete contact fields", a.ID)
		}
	}
}

// The first seeded applicant is the canonical strong-hire profile:
// 3 years lift operation, OSHA 10 plus first aid, full availability,
// 4.2 miles out, outdoor summary.
func TestSeedRosterFirstApplicantScore(t *testing.T) {
	t.Parallel()

	roster, err := SeedRoster()
	if err != nil {
		t.Fatalf("SeedRoster() error: %v", err)
	}

	a := roster.FindByID("PAY-0001")
	if a == nil {
		t.Fatal("PAY-0001 missing from roster")
	}

	rec := scoring.NewResumeScorer().Score(a)
	if rec.Score != 81 || rec.Recommendation != scoring.RecommendStrongHire {
		t.Fatalf("PAY-0001 scored %d %q, want 81 %q", rec.Score, rec.Recommendation, scoring.RecommendStrongHire)
	}
}

func TestSeedRosterReturnsFreshRecords(t *testing.T) {
	t.Parallel()

	first, err := SeedRoster()
	if err != nil {
		t.Fatalf("SeedRoster() error: %v", err)
	}
	first.Items[0].Status = hiring.StatusHired
	first.Items[0].Resume.Certifications[0] = "tampered"

	second, err := SeedRoster()
	if err != nil {
		t.Fatalf("SeedRoster() error: %v", err)
	}
	if second.Items[0].Status != hiring.StatusNew {
		t.Fatal("mutation of a previous roster leaked into a fresh one")
	}
	if second.Items[0].Resume.Certifications[0] == "tampered" {
		t.Fatal("resume mutation leaked into a fresh roster")
	}
}

func TestLoadRoster(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "roster.yaml")
	payload := `applicants:
  - id: X-1
    first_name: Lee
    last_name: Chu
    email: lee.chu@email.com
    distance_miles: 3.0
    resume:
      summary: test
      availability: {weekends: true, holidays: false, early_am: false}
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	roster, err := LoadRoster(path)
	if err != nil {
		t.Fatalf("LoadRoster() error: %v", err)
	}
	if roster.Len() != 1 {
		t.Fatalf("roster size = %d, want 1", roster.Len())
	}
	// Omitted status defaults to new.
	if got := roster.Items[0].Status; got != hiring.StatusNew {
		t.Fatalf("status = %q, want %q", got, hiring.StatusNew)
	}
}

func TestLoadRosterRejectsBadStatus(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "roster.yaml")
	payload := "applicants:\n  - id: X-1\n    status: archived\n"
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadRoster(path); err == nil {
		t.Fatal("LoadRoster() accepted an invalid status")
	}
}
