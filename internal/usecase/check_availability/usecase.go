package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueService/internal/service/availability"
)

// UseCase use case проверки доступности интервала площадки
// Ответ консультативный: авторитетная проверка повторяется внутри
// транзакции создания или подтверждения бронирования
type UseCase struct {
	venueRepo    VenueRepository
	availability AvailabilityChecker
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(venueRepository VenueRepository, checker AvailabilityChecker, logger Logger) *UseCase {
	return &UseCase{
		venueRepo:    venueRepository,
		availability: checker,
		logger:       logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: venue=%d, interval=[%s, %s)",
		req.VenueID, req.Start.Format(domain.TimeFormat), req.End.Format(domain.TimeFormat))

	if req.VenueID <= 0 {
		return nil, fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}
	if !domain.NewInterval(req.Start, req.End).IsValid() {
		return nil, fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}

	venue, err := uc.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("CheckAvailability: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	resp := &Response{
		VenueID: req.VenueID,
		Start:   req.Start,
		End:     req.End,
	}

	checkErr := uc.availability.Check(ctx, venue, domain.NewInterval(req.Start, req.End), nil)
	switch {
	case checkErr == nil:
		resp.Available = true
	case errors.Is(checkErr, availability.ErrInternal):
		uc.logger.Error("CheckAvailability: check failed for venue id=%d: %v", req.VenueID, checkErr)
		return nil, fmt.Errorf("%w: %v", ErrInternal, checkErr)
	default:
		reason := availability.Reason(checkErr)
		resp.Reason = &reason
	}

	return resp, nil
}
