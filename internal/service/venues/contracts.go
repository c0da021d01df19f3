package venues

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/integrations/hotelservice"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	Create(ctx context.Context, venue *domain.Venue) (*domain.Venue, error)
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	ListByHotel(ctx context.Context, hotelID int64, includeInactive bool) ([]*domain.Venue, error)
	Update(ctx context.Context, venue *domain.Venue) (*domain.Venue, error)
	AddMaintenanceWindow(ctx context.Context, venueID int64, window *domain.MaintenanceWindow) (*domain.MaintenanceWindow, error)
	RemoveMaintenanceWindow(ctx context.Context, venueID, windowID int64) error
}

// HotelServiceClient интерфейс для работы с HotelService API
type HotelServiceClient interface {
	GetHotel(ctx context.Context, hotelID int64) (*hotelservice.Hotel, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
