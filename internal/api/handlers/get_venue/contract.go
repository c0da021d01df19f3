package get_venue

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/service/venues/models"
)

type VenueService interface {
	GetByID(ctx context.Context, venueID int64) (*models.VenueResponse, error)
	ListByHotel(ctx context.Context, hotelID, userID int64) (*models.VenueListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
