package venue_maintenance

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/service/venues/models"
)

type VenueService interface {
	AddMaintenanceWindow(ctx context.Context, req *models.AddMaintenanceWindowRequest) (*models.MaintenanceWindowResponse, error)
	RemoveMaintenanceWindow(ctx context.Context, venueID, windowID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
