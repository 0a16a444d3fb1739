package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/squareblocks/backend/config"
	"github.com/squareblocks/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

const scoreboardFixture = `{
	"events": [
		{
			"id": "401547417",
			"name": "Away Owls at Home Hawks",
			"date": "2026-01-11T18:00Z",
			"competitions": [
				{
					"competitors": [
						{
							"homeAway": "away",
							"score": "17",
							"team": {"displayName": "Away Owls", "abbreviation": "AO"},
							"linescores": [{"value": 7}, {"value": 10}],
							"records": [{"summary": "10-7"}]
						},
						{
							"homeAway": "home",
							"score": "23",
							"team": {"displayName": "Home Hawks", "abbreviation": "HH"},
							"linescores": [{"value": 13}, {"value": 10}],
							"records": [{"summary": "12-5"}]
						}
					],
					"status": {
						"period": 3,
						"displayClock": "8:24",
						"type": {"state": "in"}
					}
				}
			]
		},
		{
			"id": "broken",
			"name": "No competitions",
			"date": "2026-01-11T18:00Z",
			"competitions": []
		}
	]
}`

func Test_scoreboardClient_GetScoreboard(t *testing.T) {
	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Write([]byte(scoreboardFixture))
	}))
	defer server.Close()

	ctx := xcontext.WithConfigs(context.Background(), config.Configs{
		Feed: config.FeedConfigs{BaseURL: server.URL},
	})

	events, err := NewScoreboardClient().GetScoreboard(ctx, "football", "nfl")
	require.NoError(t, err)
	require.Equal(t, "/football/nfl/scoreboard", requestedPath)

	// The malformed event is skipped, not fatal.
	require.Len(t, events, 1)

	event := events[0]
	require.Equal(t, "401547417", event.ExternalID)
	require.Equal(t, "Home Hawks", event.HomeTeamName)
	require.Equal(t, "HH", event.HomeTeamAbbr)
	require.Equal(t, "12-5", event.HomeTeamRecord)
	require.Equal(t, "Away Owls", event.AwayTeamName)
	require.Equal(t, 23, event.HomeScore)
	require.Equal(t, 17, event.AwayScore)
	require.Equal(t, 3, event.Quarter)
	require.Equal(t, "8:24", event.Clock)
	require.Equal(t, FeedStatusIn, event.Status)

	// Linescores become running totals, padded forward for unplayed
	// quarters.
	require.Equal(t, [4]int{13, 23, 23, 23}, event.HomeScoreByQuarter)
	require.Equal(t, [4]int{7, 17, 17, 17}, event.AwayScoreByQuarter)

	require.Equal(t, 2026, event.StartsAt.Year())
}

func Test_scoreboardClient_ServerError(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	ctx := xcontext.WithConfigs(context.Background(), config.Configs{
		Feed: config.FeedConfigs{BaseURL: server.URL},
	})

	_, err := NewScoreboardClient().GetScoreboard(ctx, "football", "nfl")
	require.Error(t, err)
	require.Equal(t, scoreboardRetries, hits)
}
