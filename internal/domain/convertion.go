package domain

import (
	"github.com/squareblocks/backend/internal/entity"
	"github.com/squareblocks/backend/internal/model"
)

func convertSportsEvent(e *entity.SportsEvent) model.SportsEvent {
	return model.SportsEvent{
		ID:           e.ID,
		ExternalID:   e.ExternalID,
		Sport:        e.Sport,
		League:       e.League,
		Name:         e.Name,
		HomeTeamName: e.HomeTeamName,
		HomeTeamAbbr: e.HomeTeamAbbr,
		AwayTeamName: e.AwayTeamName,
		AwayTeamAbbr: e.AwayTeamAbbr,
		HomeScore:    e.HomeScore,
		AwayScore:    e.AwayScore,
		HomeScoreByQuarter: []int{
			e.HomeScoreQ1, e.HomeScoreQ2, e.HomeScoreQ3, e.HomeScoreQ4,
		},
		AwayScoreByQuarter: []int{
			e.AwayScoreQ1, e.AwayScoreQ2, e.AwayScoreQ3, e.AwayScoreQ4,
		},
		Quarter:  e.Quarter,
		Clock:    e.Clock,
		Status:   string(e.Status),
		StartsAt: e.StartsAt,
	}
}

func convertBlocksGame(g *entity.BlocksGame) model.BlocksGame {
	return model.BlocksGame{
		ID:                 g.ID,
		SportsEventID:      g.SportsEventID,
		GridWidth:          g.GridWidth,
		GridHeight:         g.GridHeight,
		PricePerBlock:      g.PricePerBlock,
		PrizeTotal:         g.PrizeTotal,
		PrizeQ1:            g.PrizeQ1,
		PrizeQ2:            g.PrizeQ2,
		PrizeQ3:            g.PrizeQ3,
		PrizeQ4:            g.PrizeQ4,
		AllowsTouches:      g.AllowsTouches,
		IsPrivate:          g.IsPrivate,
		IsActive:           g.IsActive,
		CreatedBy:          g.CreatedBy,
		BlocksSold:         g.BlocksSold,
		State:              string(g.State),
		LastSettledQuarter: g.LastSettledQuarter,
		RandomizeAxes:      g.RandomizeAxes,
		HomeDigits:         g.HomeDigits,
		AwayDigits:         g.AwayDigits,
	}
}

func convertBlock(b *entity.Block) model.Block {
	converted := model.Block{
		X:              b.X,
		Y:              b.Y,
		State:          string(b.State),
		PurchaseAmount: b.PurchaseAmount,
	}

	if b.UserID.Valid {
		converted.UserID = b.UserID.String
	}

	if b.PromoCodeApplied.Valid {
		converted.PromoCodeApplied = b.PromoCodeApplied.String
	}

	return converted
}

func convertWinner(w *entity.Winner) model.Winner {
	return model.Winner{
		ID:           w.ID,
		BlocksGameID: w.BlocksGameID,
		Quarter:      w.Quarter,
		UserID:       w.UserID,
		X:            w.X,
		Y:            w.Y,
		Amount:       w.Amount,
		TouchCount:   w.TouchCount,
	}
}

func convertTransaction(t *entity.Transaction) model.Transaction {
	converted := model.Transaction{
		ID:         t.ID,
		Type:       string(t.Type),
		Status:     string(t.Status),
		Amount:     t.Amount,
		PaymentRef: t.PaymentRef,
		CreatedAt:  t.CreatedAt,
	}

	if t.BlocksGameID.Valid {
		converted.BlocksGameID = t.BlocksGameID.String
	}

	if t.BlockID.Valid {
		converted.BlockID = t.BlockID.String
	}

	if t.CompletedAt.Valid {
		completedAt := t.CompletedAt.Time
		converted.CompletedAt = &completedAt
	}

	return converted
}
