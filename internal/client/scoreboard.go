package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/squareblocks/backend/pkg/xcontext"
)

// FeedEvent is one game as reported by the scoreboard feed, already reduced
// to the fields the poller cares about.
type FeedEvent struct {
	ExternalID string
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

	HomeScore int
	AwayScore int

	// Cumulative score per period, index 0 is Q1. Periods beyond the fourth
	// (overtime) fold into the last slot.
	HomeScoreByQuarter [4]int
	AwayScoreByQuarter [4]int

	Quarter int
	Clock   string

	// Status is pre, in, or post.
	Status string

	StartsAt time.Time
}

const (
	FeedStatusPre  = "pre"
	FeedStatusIn   = "in"
	FeedStatusPost = "post"
)

type ScoreboardClient interface {
	GetScoreboard(ctx context.Context, sport, league string) ([]FeedEvent, error)
}

type scoreboardClient struct {
	httpClient *http.Client
}

func NewScoreboardClient() *scoreboardClient {
	return &scoreboardClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

const scoreboardRetries = 3

func (c *scoreboardClient) GetScoreboard(
	ctx context.Context, sport, league string,
) ([]FeedEvent, error) {
	url := fmt.Sprintf("%s/%s/%s/scoreboard",
		xcontext.Configs(ctx).Feed.BaseURL, sport, league)

	var lastErr error
	for attempt := 0; attempt < scoreboardRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * time.Second
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		events, err := c.fetch(ctx, url)
		if err == nil {
			return events, nil
		}

		lastErr = err
		xcontext.Logger(ctx).Warnf("Scoreboard fetch of %s failed: %v", url, err)
	}

	return nil, lastErr
}

func (c *scoreboardClient) fetch(ctx context.Context, url string) ([]FeedEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var board scoreboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&board); err != nil {
		return nil, err
	}

	events := make([]FeedEvent, 0, len(board.Events))
	for _, raw := range board.Events {
		event, err := convertFeedEvent(raw)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Skip malformed feed event %s: %v", raw.ID, err)
			continue
		}

		events = append(events, event)
	}

	return events, nil
}

type scoreboardResponse struct {
	Events []rawEvent `json:"events"`
}

type rawEvent struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Date         string           `json:"date"`
	Competitions []rawCompetition `json:"competitions"`
}

type rawCompetition struct {
	Competitors []rawCompetitor `json:"competitors"`
	Status      rawStatus       `json:"status"`
}

type rawCompetitor struct {
	HomeAway   string         `json:"homeAway"`
	Score      string         `json:"score"`
	Team       rawTeam        `json:"team"`
	Linescores []rawLinescore `json:"linescores"`
	Records    []rawRecord    `json:"records"`
}

type rawTeam struct {
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
	Color        string `json:"color"`
	Logo         string `json:"logo"`
}

type rawRecord struct {
	Summary string `json:"summary"`
}

type rawLinescore struct {
	Value float64 `json:"value"`
}

type rawStatus struct {
	Period       int    `json:"period"`
	DisplayClock string `json:"displayClock"`
	Type         struct {
		State string `json:"state"`
	} `json:"type"`
}

func convertFeedEvent(raw rawEvent) (FeedEvent, error) {
	if len(raw.Competitions) == 0 {
		return FeedEvent{}, fmt.Errorf("no competitions")
	}

	competition := raw.Competitions[0]
	home, away, err := splitCompetitors(competition.Competitors)
	if err != nil {
		return FeedEvent{}, err
	}

	event := FeedEvent{
		ExternalID:    raw.ID,
		Name:          raw.Name,
		HomeTeamName:  home.Team.DisplayName,
		HomeTeamAbbr:  home.Team.Abbreviation,
		HomeTeamColor: home.Team.Color,
		HomeTeamLogo:  home.Team.Logo,
		AwayTeamName:  away.Team.DisplayName,
		AwayTeamAbbr:  away.Team.Abbreviation,
		AwayTeamColor: away.Team.Color,
		AwayTeamLogo:  away.Team.Logo,
		Quarter:       competition.Status.Period,
		Clock:         competition.Status.DisplayClock,
		Status:        competition.Status.Type.State,
	}

	if len(home.Records) > 0 {
		event.HomeTeamRecord = home.Records[0].Summary
	}

	if len(away.Records) > 0 {
		event.AwayTeamRecord = away.Records[0].Summary
	}

	if event.HomeScore, err = parseScore(home.Score); err != nil {
		return FeedEvent{}, err
	}

	if event.AwayScore, err = parseScore(away.Score); err != nil {
		return FeedEvent{}, err
	}

	event.HomeScoreByQuarter = cumulativeByQuarter(home.Linescores)
	event.AwayScoreByQuarter = cumulativeByQuarter(away.Linescores)

	if event.StartsAt, err = parseFeedTime(raw.Date); err != nil {
		return FeedEvent{}, err
	}

	return event, nil
}

func splitCompetitors(competitors []rawCompetitor) (home, away rawCompetitor, err error) {
	if len(competitors) != 2 {
		return home, away, fmt.Errorf("expected 2 competitors, got %d", len(competitors))
	}

	for _, competitor := range competitors {
		switch competitor.HomeAway {
		case "home":
			home = competitor
		case "away":
			away = competitor
		}
	}

	if home.Team.DisplayName == "" || away.Team.DisplayName == "" {
		return home, away, fmt.Errorf("cannot identify home and away competitors")
	}

	return home, away, nil
}

func parseScore(s string) (int, error) {
	if s == "" {
		return 0, nil
	}

	return strconv.Atoi(s)
}

// cumulativeByQuarter converts per-period linescores to running totals,
// folding overtime periods into the fourth slot.
func cumulativeByQuarter(linescores []rawLinescore) [4]int {
	var result [4]int
	total := 0
	for i, linescore := range linescores {
		total += int(linescore.Value)
		slot := i
		if slot > 3 {
			slot = 3
		}

		result[slot] = total
	}

	// Earlier slots never reported stay at the last known total.
	for i := 1; i < 4; i++ {
		if result[i] < result[i-1] {
			result[i] = result[i-1]
		}
	}

	return result
}

func parseFeedTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	return time.Parse("2006-01-02T15:04Z", s)
}
