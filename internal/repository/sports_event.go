package repository

import (
	"context"
	"time"

	"github.com/squareblocks/backend/internal/entity"
	"github.com/squareblocks/backend/pkg/xcontext"
)

type SportsEventFilter struct {
	League   string
	Statuses []entity.SportsEventStatus
}

type ScoreUpdate struct {
	HomeScore   int
	AwayScore   int
	HomeQuarter [4]int
	AwayQuarter [4]int
	Quarter     int
	Clock       string
	Status      entity.SportsEventStatus
}

type SportsEventRepository interface {
	Create(ctx context.Context, event *entity.SportsEvent) error
	GetByID(ctx context.Context, id string) (*entity.SportsEvent, error)
	GetByExternalID(ctx context.Context, externalID string) (*entity.SportsEvent, error)
	GetList(ctx context.Context, filter SportsEventFilter) ([]entity.SportsEvent, error)
	UpdateScore(ctx context.Context, id string, update ScoreUpdate) error
}

type sportsEventRepository struct{}

func NewSportsEventRepository() *sportsEventRepository {
	return &sportsEventRepository{}
}

func (r *sportsEventRepository) Create(ctx context.Context, event *entity.SportsEvent) error {
	return xcontext.DB(ctx).Create(event).Error
}

func (r *sportsEventRepository) GetByID(ctx context.Context, id string) (*entity.SportsEvent, error) {
	var result entity.SportsEvent
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *sportsEventRepository) GetByExternalID(ctx context.Context, externalID string) (*entity.SportsEvent, error) {
	var result entity.SportsEvent
	if err := xcontext.DB(ctx).Take(&result, "external_id=?", externalID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *sportsEventRepository) GetList(
	ctx context.Context, filter SportsEventFilter,
) ([]entity.SportsEvent, error) {
	db := xcontext.DB(ctx).Order("starts_at ASC")
	if filter.League != "" {
		db = db.Where("league=?", filter.League)
	}

	if len(filter.Statuses) > 0 {
		db = db.Where("status IN (?)", filter.Statuses)
	}

	var result []entity.SportsEvent
	if err := db.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *sportsEventRepository) UpdateScore(ctx context.Context, id string, update ScoreUpdate) error {
	return xcontext.DB(ctx).Model(&entity.SportsEvent{}).
		Where("id=?", id).
		Updates(map[string]any{
			"home_score":    update.HomeScore,
			"away_score":    update.AwayScore,
			"home_score_q1": update.HomeQuarter[0],
			"home_score_q2": update.HomeQuarter[1],
			"home_score_q3": update.HomeQuarter[2],
			"home_score_q4": update.HomeQuarter[3],
			"away_score_q1": update.AwayQuarter[0],
			"away_score_q2": update.AwayQuarter[1],
			"away_score_q3": update.AwayQuarter[2],
			"away_score_q4": update.AwayQuarter[3],
			"quarter":       update.Quarter,
			"clock":         update.Clock,
			"status":        update.Status,
			"updated_at":    time.Now(),
		}).Error
}
