package testutil

import (
	"context"
	"testing"

	"github.com/squareblocks/backend/internal/entity"
	"github.com/squareblocks/backend/internal/repository"
	"github.com/stretchr/testify/require"
)

const (
	User1ID = "user1"
	User2ID = "user2"
	AdminID = "admin"

	Event1ID = "event1"
)

// InsertFixtures loads the standard test data: two funded users, an admin,
// and one scheduled sports event.
func InsertFixtures(t *testing.T, ctx context.Context) {
	userRepo := repository.NewUserRepository()
	require.NoError(t, userRepo.Create(ctx, &entity.User{
		Base:     entity.Base{ID: User1ID},
		Name:     "User One",
		Email:    "user1@example.com",
		Role:     entity.RoleUser,
		IsActive: true,
		Balance:  1000,
	}))
	require.NoError(t, userRepo.Create(ctx, &entity.User{
		Base:     entity.Base{ID: User2ID},
		Name:     "User Two",
		Email:    "user2@example.com",
		Role:     entity.RoleUser,
		IsActive: true,
		Balance:  1000,
	}))
	require.NoError(t, userRepo.Create(ctx, &entity.User{
		Base:     entity.Base{ID: AdminID},
		Name:     "Admin",
		Email:    "admin@example.com",
		Role:     entity.RoleAdmin,
		IsActive: true,
	}))

	eventRepo := repository.NewSportsEventRepository()
	require.NoError(t, eventRepo.Create(ctx, &entity.SportsEvent{
		Base:         entity.Base{ID: Event1ID},
		ExternalID:   "401547417",
		Sport:        "football",
		League:       "nfl",
		Name:         "Home Hawks at Away Owls",
		HomeTeamName: "Home Hawks",
		HomeTeamAbbr: "HH",
		AwayTeamName: "Away Owls",
		AwayTeamAbbr: "AO",
		Status:       entity.SportsEventScheduled,
	}))
}
