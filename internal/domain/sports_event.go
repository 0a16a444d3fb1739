package domain

import (
	"context"
	"errors"

	"github.com/squareblocks/backend/internal/entity"
	"github.com/squareblocks/backend/internal/model"
	"github.com/squareblocks/backend/internal/repository"
	"github.com/squareblocks/backend/pkg/enum"
	"github.com/squareblocks/backend/pkg/errorx"
	"github.com/squareblocks/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type SportsEventDomain interface {
	Get(context.Context, *model.GetSportsEventRequest) (*model.GetSportsEventResponse, error)
	GetList(context.Context, *model.GetListSportsEventRequest) (*model.GetListSportsEventResponse, error)
}

type sportsEventDomain struct {
	sportsEventRepo repository.SportsEventRepository
}

func NewSportsEventDomain(sportsEventRepo repository.SportsEventRepository) *sportsEventDomain {
	return &sportsEventDomain{sportsEventRepo: sportsEventRepo}
}

func (d *sportsEventDomain) Get(
	ctx context.Context, req *model.GetSportsEventRequest,
) (*model.GetSportsEventResponse, error) {
	event, err := d.sportsEventRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found sports event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get sports event: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetSportsEventResponse{Event: convertSportsEvent(event)}, nil
}

func (d *sportsEventDomain) GetList(
	ctx context.Context, req *model.GetListSportsEventRequest,
) (*model.GetListSportsEventResponse, error) {
	filter := repository.SportsEventFilter{League: req.League}
	if req.Status != "" {
		status, err := enum.ToEnum[entity.SportsEventStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status filter")
		}

		filter.Statuses = []entity.SportsEventStatus{status}
	}

	events, err := d.sportsEventRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get sports events: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetListSportsEventResponse{Events: []model.SportsEvent{}}
	for i := range events {
		resp.Events = append(resp.Events, convertSportsEvent(&events[i]))
	}

	return resp, nil
}
