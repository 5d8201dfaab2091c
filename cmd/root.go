package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mountainops/lifthire/internal/settings"
)

const (
	app = "lifthire"
)

// Config is the optional yaml configuration. Everything has a working
// default, so the cli runs without any config file at all.
type Config struct {
	// Listen is the serve command's bind address.
	Listen string `mapstructure:"listen"`
	// Store is a path to the sqlite database. Empty means a fresh
	// in-memory store per invocation.
	Store string `mapstructure:"store"`
	// Roster points at a custom applicant roster yaml. Empty uses the
	// compiled-in seed roster.
	Roster string `mapstructure:"roster"`
	// Settings overrides the compiled-in defaults wholesale.
	Settings *settings.Settings `mapstructure:"settings"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "lifthire evaluates ski lift operator applicants and drives their hiring pipeline",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is lifthire.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("store", "", "path to a sqlite store (default is in-memory)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
		viper.SetConfigType("yaml")
	}

	// The config file is optional; a broken one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}
