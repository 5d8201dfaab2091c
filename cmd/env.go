package cmd

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mountainops/lifthire/internal/hiring"
	"github.com/mountainops/lifthire/internal/intake"
	"github.com/mountainops/lifthire/internal/pipeline"
	"github.com/mountainops/lifthire/internal/settings"
	"github.com/mountainops/lifthire/internal/store"
)

// environment bundles the wired collaborators a command needs.
type environment struct {
	Engine         *pipeline.Engine
	Settings       *settings.Holder
	Store          store.ApplicantStore
	ApplicantCount int
}

// newEnvironment opens the configured store, seeds it if empty, and
// wires the pipeline engine. An in-memory store starts from the roster
// on every invocation; a sqlite store keeps state between runs.
func newEnvironment(zlog *zap.Logger, config *Config) (*environment, error) {
	storePath := viper.GetString("store")
	if storePath == "" {
		storePath = config.Store
	}

	var st store.ApplicantStore
	if storePath != "" {
		sqlite, err := store.NewSQLite(storePath)
		if err != nil {
			return nil, fmt.Errorf("opening store %s: %w", storePath, err)
		}
		st = sqlite
	} else {
		st = store.NewMemory()
	}

	applicants, err := st.List()
	if err != nil {
		return nil, err
	}

	if applicants.Len() == 0 {
		roster, err := loadRoster(config)
		if err != nil {
			return nil, err
		}
		if err := st.Reset(roster.Items); err != nil {
			return nil, err
		}
		applicants = roster
		zlog.Debug("store seeded", zap.Int("applicants", roster.Len()))
	}

	holder := settings.NewHolder(settings.Defaults())
	if config.Settings != nil {
		holder.Replace(*config.Settings)
	}

	engine := pipeline.New(pipeline.Deps{
		Store:    st,
		Settings: holder,
		Logger:   zlog,
		Job:      hiring.LiftOperatorProfile,
	})

	return &environment{
		Engine:         engine,
		Settings:       holder,
		Store:          st,
		ApplicantCount: applicants.Len(),
	}, nil
}

func (e *environment) Close() {
	_ = e.Store.Close()
}

func loadRoster(config *Config) (*hiring.Applicants, error) {
	if config.Roster != "" {
		return intake.LoadRoster(config.Roster)
	}
	return intake.SeedRoster()
}
