package venues

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	hotelClient "github.com/m04kA/SMC-VenueService/internal/integrations/hotelservice"
	"github.com/m04kA/SMC-VenueService/internal/service/venues/models"
)

// Service сервис управления площадками отеля
// Чтение открыто всем, изменения доступны только персоналу отеля
type Service struct {
	venueRepo   VenueRepository
	hotelClient HotelServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса площадок
func NewService(venueRepository VenueRepository, hotelClient HotelServiceClient, logger Logger) *Service {
	return &Service{
		venueRepo:   venueRepository,
		hotelClient: hotelClient,
		logger:      logger,
	}
}

// Create создает новую площадку
// Доступно только персоналу отеля
func (s *Service) Create(ctx context.Context, req *models.CreateVenueRequest) (*models.VenueResponse, error) {
	s.logger.Info("Create: creating venue %q for hotel=%d by user=%d", req.Name, req.HotelID, req.UserID)

	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}
	if err := s.checkStaffAccess(ctx, req.HotelID, req.UserID); err != nil {
		return nil, err
	}

	hours, err := req.OperatingHours.ToDomainSchedule()
	if err != nil {
		s.logger.Warn("Create: invalid operating hours: %v", err)
		return nil, fmt.Errorf("%w: operating hours: %v", ErrInvalidInput, err)
	}

	venue := &domain.Venue{
		HotelID:              req.HotelID,
		Name:                 req.Name,
		Description:          req.Description,
		CapacityMin:          req.CapacityMin,
		CapacityMax:          req.CapacityMax,
		BasePrice:            req.BasePrice,
		PricePerHour:         req.PricePerHour,
		SetupBufferMinutes:   req.SetupBufferMinutes,
		CleanupBufferMinutes: req.CleanupBufferMinutes,
		MinBookingHours:      req.MinBookingHours,
		Status:               domain.VenueStatusActive,
		OperatingHours:       hours,
		CancellationTier:     domain.CancellationTier(req.CancellationTier),
		Active:               true,
	}

	created, err := s.venueRepo.Create(ctx, venue)
	if err != nil {
		s.logger.Error("Create: failed to create venue: %v", err)
		return nil, fmt.Errorf("%w: failed to create venue: %v", ErrInternal, err)
	}

	s.logger.Info("Create: venue id=%d created for hotel=%d", created.ID, created.HotelID)
	return models.FromDomainVenue(created), nil
}

// GetByID возвращает площадку по ID
func (s *Service) GetByID(ctx context.Context, venueID int64) (*models.VenueResponse, error) {
	venue, err := s.getVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainVenue(venue), nil
}

// ListByHotel возвращает площадки отеля
// Неактивные площадки видны только персоналу
func (s *Service) ListByHotel(ctx context.Context, hotelID, userID int64) (*models.VenueListResponse, error) {
	includeInactive := s.checkStaffAccess(ctx, hotelID, userID) == nil

	venues, err := s.venueRepo.ListByHotel(ctx, hotelID, includeInactive)
	if err != nil {
		s.logger.Error("ListByHotel: failed to list venues for hotel=%d: %v", hotelID, err)
		return nil, fmt.Errorf("%w: failed to list venues: %v", ErrInternal, err)
	}
	return models.FromDomainVenueList(venues), nil
}

// Update частично обновляет площадку
// Доступно только персоналу отеля
func (s *Service) Update(ctx context.Context, req *models.UpdateVenueRequest) (*models.VenueResponse, error) {
	s.logger.Info("Update: updating venue=%d by user=%d", req.VenueID, req.UserID)

	venue, err := s.getVenue(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}
	if err := s.checkStaffAccess(ctx, venue.HotelID, req.UserID); err != nil {
		return nil, err
	}
	if err := applyUpdate(venue, req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.venueRepo.Update(ctx, venue)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		s.logger.Error("Update: failed to update venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to update venue: %v", ErrInternal, err)
	}

	s.logger.Info("Update: venue id=%d updated", updated.ID)
	return models.FromDomainVenue(updated), nil
}

// AddMaintenanceWindow добавляет окно обслуживания площадки
// Доступно только персоналу отеля
func (s *Service) AddMaintenanceWindow(ctx context.Context, req *models.AddMaintenanceWindowRequest) (*models.MaintenanceWindowResponse, error) {
	s.logger.Info("AddMaintenanceWindow: venue=%d, interval=[%s, %s) by user=%d",
		req.VenueID, req.Start.Format(domain.DateFormat), req.End.Format(domain.DateFormat), req.UserID)

	span := domain.NewInterval(req.Start, req.End)
	if !span.IsValid() {
		return nil, fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}

	venue, err := s.getVenue(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}
	if err := s.checkStaffAccess(ctx, venue.HotelID, req.UserID); err != nil {
		return nil, err
	}

	window, err := s.venueRepo.AddMaintenanceWindow(ctx, req.VenueID, &domain.MaintenanceWindow{
		Span:   span,
		Reason: req.Reason,
	})
	if err != nil {
		s.logger.Error("AddMaintenanceWindow: failed for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to add maintenance window: %v", ErrInternal, err)
	}

	return &models.MaintenanceWindowResponse{
		ID:     window.ID,
		Start:  window.Span.Start,
		End:    window.Span.End,
		Reason: window.Reason,
	}, nil
}

// RemoveMaintenanceWindow удаляет окно обслуживания площадки
// Доступно только персоналу отеля
func (s *Service) RemoveMaintenanceWindow(ctx context.Context, venueID, windowID, userID int64) error {
	s.logger.Info("RemoveMaintenanceWindow: venue=%d, window=%d by user=%d", venueID, windowID, userID)

	venue, err := s.getVenue(ctx, venueID)
	if err != nil {
		return err
	}
	if err := s.checkStaffAccess(ctx, venue.HotelID, userID); err != nil {
		return err
	}

	if err := s.venueRepo.RemoveMaintenanceWindow(ctx, venueID, windowID); err != nil {
		if errors.Is(err, venueRepo.ErrWindowNotFound) {
			return ErrWindowNotFound
		}
		s.logger.Error("RemoveMaintenanceWindow: failed for venue=%d window=%d: %v", venueID, windowID, err)
		return fmt.Errorf("%w: failed to remove maintenance window: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) getVenue(ctx context.Context, venueID int64) (*domain.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("getVenue: venue id=%d not found", venueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("getVenue: failed to get venue id=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}
	return venue, nil
}

// checkStaffAccess проверяет, входит ли пользователь в персонал отеля
func (s *Service) checkStaffAccess(ctx context.Context, hotelID, userID int64) error {
	hotel, err := s.hotelClient.GetHotel(ctx, hotelID)
	if err != nil {
		if errors.Is(err, hotelClient.ErrHotelNotFound) {
			s.logger.Warn("checkStaffAccess: hotel id=%d not found", hotelID)
			return ErrHotelNotFound
		}
		s.logger.Error("checkStaffAccess: failed to get hotel id=%d: %v", hotelID, err)
		return fmt.Errorf("%w: failed to get hotel: %v", ErrInternal, err)
	}

	for _, staffID := range hotel.StaffIDs {
		if staffID == userID {
			return nil
		}
	}
	return ErrAccessDenied
}

func validateCreate(req *models.CreateVenueRequest) error {
	if req.HotelID <= 0 || req.UserID <= 0 {
		return fmt.Errorf("%w: hotelID and userID must be positive", ErrInvalidInput)
	}
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.CapacityMin < 0 || req.CapacityMax < req.CapacityMin {
		return fmt.Errorf("%w: capacityMin must not exceed capacityMax", ErrInvalidInput)
	}
	if req.BasePrice < 0 || req.PricePerHour < 0 {
		return fmt.Errorf("%w: prices must not be negative", ErrInvalidInput)
	}
	if req.SetupBufferMinutes < 0 || req.CleanupBufferMinutes < 0 || req.MinBookingHours < 0 {
		return fmt.Errorf("%w: buffers and minimum duration must not be negative", ErrInvalidInput)
	}
	if !domain.CancellationTier(req.CancellationTier).IsValid() {
		return fmt.Errorf("%w: unknown cancellation tier %q", ErrInvalidInput, req.CancellationTier)
	}
	return nil
}

func applyUpdate(venue *domain.Venue, req *models.UpdateVenueRequest) error {
	if req.Name != nil {
		if *req.Name == "" {
			return fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		venue.Name = *req.Name
	}
	if req.Description != nil {
		venue.Description = req.Description
	}
	if req.CapacityMin != nil {
		venue.CapacityMin = *req.CapacityMin
	}
	if req.CapacityMax != nil {
		venue.CapacityMax = *req.CapacityMax
	}
	if venue.CapacityMin < 0 || venue.CapacityMax < venue.CapacityMin {
		return fmt.Errorf("%w: capacityMin must not exceed capacityMax", ErrInvalidInput)
	}
	if req.BasePrice != nil {
		if *req.BasePrice < 0 {
			return fmt.Errorf("%w: basePrice must not be negative", ErrInvalidInput)
		}
		venue.BasePrice = *req.BasePrice
	}
	if req.PricePerHour != nil {
		if *req.PricePerHour < 0 {
			return fmt.Errorf("%w: pricePerHour must not be negative", ErrInvalidInput)
		}
		venue.PricePerHour = *req.PricePerHour
	}
	if req.SetupBufferMinutes != nil {
		venue.SetupBufferMinutes = *req.SetupBufferMinutes
	}
	if req.CleanupBufferMinutes != nil {
		venue.CleanupBufferMinutes = *req.CleanupBufferMinutes
	}
	if req.MinBookingHours != nil {
		venue.MinBookingHours = *req.MinBookingHours
	}
	if req.Status != nil {
		status := domain.VenueStatus(*req.Status)
		if status != domain.VenueStatusActive && status != domain.VenueStatusInactive && status != domain.VenueStatusMaintenance {
			return fmt.Errorf("%w: unknown venue status %q", ErrInvalidInput, *req.Status)
		}
		venue.Status = status
	}
	if req.OperatingHours != nil {
		hours, err := req.OperatingHours.ToDomainSchedule()
		if err != nil {
			return fmt.Errorf("%w: operating hours: %v", ErrInvalidInput, err)
		}
		venue.OperatingHours = hours
	}
	if req.CancellationTier != nil {
		tier := domain.CancellationTier(*req.CancellationTier)
		if !tier.IsValid() {
			return fmt.Errorf("%w: unknown cancellation tier %q", ErrInvalidInput, *req.CancellationTier)
		}
		venue.CancellationTier = tier
	}
	return nil
}
