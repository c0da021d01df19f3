package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.GuestID <= 0 {
		return fmt.Errorf("%w: guestID must be positive", ErrInvalidInput)
	}
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}
	if req.EventName == "" {
		return fmt.Errorf("%w: eventName is required", ErrInvalidInput)
	}
	if req.AttendeeCount <= 0 {
		return fmt.Errorf("%w: attendeeCount must be positive", ErrInvalidInput)
	}

	interval := domain.NewInterval(req.StartTime, req.EndTime)
	if !interval.IsValid() {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}
	if !req.StartTime.After(now) {
		return fmt.Errorf("%w: startTime must be in the future", ErrInvalidInput)
	}

	for _, li := range req.Services {
		if err := validateLineItem(li); err != nil {
			return err
		}
	}
	for _, li := range req.Equipment {
		if err := validateLineItem(li); err != nil {
			return err
		}
	}
	if req.Catering != nil && (req.Catering.PerHeadRate < 0 || req.Catering.HeadCount <= 0) {
		return fmt.Errorf("%w: catering rate must not be negative and head count must be positive", ErrInvalidInput)
	}
	for _, d := range req.Discounts {
		kind := domain.DiscountKind(d.Kind)
		if kind != domain.DiscountFlat && kind != domain.DiscountPercent {
			return fmt.Errorf("%w: discount %q has unknown kind %q", ErrInvalidInput, d.Label, d.Kind)
		}
		if d.Value < 0 {
			return fmt.Errorf("%w: discount %q must not be negative", ErrInvalidInput, d.Label)
		}
	}
	for _, c := range req.AdditionalCosts {
		if c.Amount < 0 {
			return fmt.Errorf("%w: additional cost %q must not be negative", ErrInvalidInput, c.Label)
		}
	}

	return nil
}

func validateLineItem(li LineItemRequest) error {
	if li.Name == "" {
		return fmt.Errorf("%w: line item name is required", ErrInvalidInput)
	}
	if li.UnitPrice < 0 || li.Quantity <= 0 {
		return fmt.Errorf("%w: line item %q has invalid price or quantity", ErrInvalidInput, li.Name)
	}
	return nil
}

// resolveInitialStatus возвращает начальный статус бронирования
// Создание допускается только в inquiry или pending
func resolveInitialStatus(req *Request) (domain.BookingStatus, error) {
	if req.InitialStatus == nil {
		return domain.StatusPending, nil
	}

	status := domain.BookingStatus(*req.InitialStatus)
	if status != domain.StatusInquiry && status != domain.StatusPending {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, *req.InitialStatus)
	}
	return status, nil
}
