package model

import "time"

type SportsEvent struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	Sport      string `json:"sport"`
	League     string `json:"league"`
	Name       string `json:"name"`

	HomeTeamName string `json:"home_team_name"`
	HomeTeamAbbr string `json:"home_team_abbr"`
	AwayTeamName string `json:"away_team_name"`
	AwayTeamAbbr string `json:"away_team_abbr"`

	HomeScore int `json:"home_score"`
	AwayScore int `json:"away_score"`

	HomeScoreByQuarter []int `json:"home_score_by_quarter"`
	AwayScoreByQuarter []int `json:"away_score_by_quarter"`

	Quarter int    `json:"quarter"`
	Clock   string `json:"clock"`
	Status  string `json:"status"`

	StartsAt time.Time `json:"starts_at"`
}

type GetSportsEventRequest struct {
	ID string `json:"id"`
}

type GetSportsEventResponse struct {
	Event SportsEvent `json:"event"`
}

type GetListSportsEventRequest struct {
	League string `json:"league"`
	Status string `json:"status"`
}

type GetListSportsEventResponse struct {
	Events []SportsEvent `json:"events"`
}
