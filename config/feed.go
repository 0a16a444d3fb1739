package config

import (
	"time"

	"github.com/BurntSushi/toml"
)

type FeedConfigs struct {
	BaseURL      string
	PollInterval time.Duration

	// LeaguesFile optionally points to a TOML file overriding the tracked
	// leagues.
	LeaguesFile string
	Leagues     []LeagueConfigs
}

type LeagueConfigs struct {
	League string `toml:"league"`
	Sport  string `toml:"sport"`
}

type leaguesFile struct {
	Leagues []LeagueConfigs `toml:"leagues"`
}

// LoadLeagues fills in the tracked league table, either from the configured
// TOML file or from the built-in defaults.
func (f *FeedConfigs) LoadLeagues() error {
	if f.LeaguesFile != "" {
		var parsed leaguesFile
		if _, err := toml.DecodeFile(f.LeaguesFile, &parsed); err != nil {
			return err
		}

		f.Leagues = parsed.Leagues
		return nil
	}

	if len(f.Leagues) == 0 {
		f.Leagues = []LeagueConfigs{
			{League: "nfl", Sport: "football"},
			{League: "nba", Sport: "basketball"},
		}
	}

	return nil
}
