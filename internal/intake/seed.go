package intake

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mountainops/lifthire/internal/hiring"
)

//go:embed seed.yaml
var seedRoster []byte

type rosterFile struct {
	Applicants []*hiring.Applicant `yaml:"applicants"`
}

// SeedRoster returns the compiled-in applicant roster. Each call
// returns fresh records, so a pipeline reset cannot see mutations from
// an earlier run.
func SeedRoster() (*hiring.Applicants, error) {
	return parseRoster(seedRoster)
}

// LoadRoster reads an applicant roster from a YAML file, for running
// the pipeline against a custom candidate pool.
func LoadRoster(path string) (*hiring.Applicants, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", path, err)
	}
	return parseRoster(data)
}

func parseRoster(data []byte) (*hiring.Applicants, error) {
	var file rosterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing roster: %w", err)
	}

	for i, a := range file.Applicants {
		if a.ID == "" {
			return nil, fmt.Errorf("roster entry %d has no id", i)
		}
		if a.Status == "" {
			a.Status = hiring.StatusNew
		}
		if !a.Status.Valid() {
			return nil, fmt.Errorf("roster entry %s: %w: %q", a.ID, hiring.ErrInvalidStatus, a.Status)
		}
	}

	return &hiring.Applicants{Items: file.Applicants}, nil
}
