package entity

import (
	"time"

	"github.com/squareblocks/backend/pkg/enum"
)

type SportsEventStatus string

var (
	SportsEventScheduled = enum.New(SportsEventStatus("scheduled"))
	SportsEventLive      = enum.New(SportsEventStatus("live"))
	SportsEventFinal     = enum.New(SportsEventStatus("final"))
)

// SportsEvent mirrors one tracked game of the external feed. Score, quarter,
// clock, and status fields are overwritten on every poll; everything else is
// immutable after creation.
type SportsEvent struct {
	Base

	ExternalID string `gorm:"uniqueIndex"`
	Sport      string
	League     string
	Name       string

	HomeTeamName   string
	HomeTeamAbbr   string
	HomeTeamRecord string
	HomeTeamColor  string
	HomeTeamLogo   string

	AwayTeamName   string
	AwayTeamAbbr   string
	AwayTeamRecord string
	AwayTeamColor  string
	AwayTeamLogo   string

	HomeScore   int
	AwayScore   int
	HomeScoreQ1 int
	HomeScoreQ2 int
	HomeScoreQ3 int
	HomeScoreQ4 int
	AwayScoreQ1 int
	AwayScoreQ2 int
	AwayScoreQ3 int
	AwayScoreQ4 int

	Quarter  int
	Clock    string
	Status   SportsEventStatus
	StartsAt time.Time
}
